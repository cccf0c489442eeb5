package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

type GamePlayService interface {
	CreateGame(ctx context.Context, mode string, difficulty tictactoe.Difficulty) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error

	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	ResetGame(ctx context.Context, gameID string) (*entity.Game, error)
	ChangeMode(ctx context.Context, gameID, mode string, difficulty tictactoe.Difficulty) (*entity.Game, error)
	ResetScores(ctx context.Context, gameID string) (*entity.Game, error)
}

type gamePlayService struct {
	logger *slog.Logger

	gameService GameService
	botService  BotService

	locks *keyedMutex
}

func NewGamePlayService(logger *slog.Logger, gameService GameService, botService BotService) GamePlayService {
	return &gamePlayService{
		logger:      logger.With("component", "gameplay"),
		gameService: gameService,
		botService:  botService,
		locks:       newKeyedMutex(),
	}
}

func (that *gamePlayService) CreateGame(ctx context.Context, mode string, difficulty tictactoe.Difficulty) (*entity.Game, error) {
	game, err := that.gameService.CreateGame(ctx, mode, difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID, "mode", mode, "difficulty", difficulty)

	return game, nil
}

func (that *gamePlayService) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return game, nil
}

func (that *gamePlayService) DeleteGame(ctx context.Context, gameID string) error {
	unlock := that.locks.lock(gameID)
	defer unlock()

	if err := that.gameService.DeleteGame(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", gameID)

	return nil
}

// MakeTurn plays cell for the side to move. Against the computer the human
// always plays X and the computer answers within the same call.
func (that *gamePlayService) MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", gameID)

	unlock := that.locks.lock(gameID)
	defer unlock()

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	playerMark := game.Turn
	if game.IsVsComputer() {
		playerMark = entity.PlayerX
	}

	if err = game.MakeTurn(playerMark, cell); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsComputerTurn() {
		if err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		log.Info("game finished", "winner", game.Winner, "line", game.WinningLine)
	}

	return game, nil
}

func (that *gamePlayService) ResetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	return that.update(ctx, gameID, func(game *entity.Game) error {
		game.Reset()
		return nil
	})
}

func (that *gamePlayService) ChangeMode(ctx context.Context, gameID, mode string, difficulty tictactoe.Difficulty) (*entity.Game, error) {
	return that.update(ctx, gameID, func(game *entity.Game) error {
		return game.ChangeMode(mode, difficulty)
	})
}

func (that *gamePlayService) ResetScores(ctx context.Context, gameID string) (*entity.Game, error) {
	return that.update(ctx, gameID, func(game *entity.Game) error {
		game.ResetScores()
		return nil
	})
}

// update loads the game, applies change and stores the result under the
// game's lock.
func (that *gamePlayService) update(ctx context.Context, gameID string, change func(game *entity.Game) error) (*entity.Game, error) {
	unlock := that.locks.lock(gameID)
	defer unlock()

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = change(game); err != nil {
		return nil, err
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}
