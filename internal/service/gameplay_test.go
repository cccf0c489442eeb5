package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

func newTestGamePlay(t *testing.T, bot BotService) GamePlayService {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	gameService := NewGameService(repository.NewMemoryGameRepository(0))

	return NewGamePlayService(logger, gameService, bot)
}

func TestGamePlayService_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Alternates marks in two-player mode", func(t *testing.T) {
		// Given: a two-player game
		bot := &mockBotService{}
		gamePlay := newTestGamePlay(t, bot)
		game, err := gamePlay.CreateGame(ctx, entity.ModeTwoPlayer, tictactoe.DifficultyLow)
		require.NoError(t, err)

		// When: two turns are played
		_, err = gamePlay.MakeTurn(ctx, game.ID, 0)
		require.NoError(t, err)
		game, err = gamePlay.MakeTurn(ctx, game.ID, 4)
		require.NoError(t, err)

		// Then: X and O took a cell each and the bot never played
		assert.Equal(t, tictactoe.Board{0: tictactoe.X, 4: tictactoe.O}, game.Board)
		assert.Equal(t, tictactoe.X, game.Turn)
		bot.AssertNotCalled(t, "MakeTurn", mock.Anything)
	})

	t.Run("Computer answers in vs-computer mode", func(t *testing.T) {
		// Given: a game against the high tier computer
		gamePlay := newTestGamePlay(t, NewBotService(rand.NewSource(3)))
		game, err := gamePlay.CreateGame(ctx, entity.ModeVsComputer, tictactoe.DifficultyHigh)
		require.NoError(t, err)

		// When: the human takes the center
		game, err = gamePlay.MakeTurn(ctx, game.ID, 4)
		require.NoError(t, err)

		// Then: the computer replied with a corner and it is X's turn again
		assert.Len(t, game.Board.EmptyCells(), 7)
		assert.Equal(t, tictactoe.X, game.Turn)
		assert.Contains(t, []int{0, 2, 6, 8}, cellOf(game.Board, tictactoe.O))

		// And: the stored game matches
		stored, err := gamePlay.GetGame(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, game.Board, stored.Board)
	})

	t.Run("Computer does not move after the human wins", func(t *testing.T) {
		// Given: a low tier game where X holds cells 0 and 1 and O's marks are scattered
		bot := &mockBotService{}
		gamePlay := newTestGamePlay(t, bot)
		game, err := gamePlay.CreateGame(ctx, entity.ModeVsComputer, tictactoe.DifficultyLow)
		require.NoError(t, err)

		bot.On("MakeTurn", mock.AnythingOfType("*entity.Game")).
			Run(func(args mock.Arguments) {
				played := args.Get(0).(*entity.Game) //nolint: forcetypeassert // test double
				for _, cell := range []int{8, 6} {
					if played.Board[cell] == tictactoe.Empty {
						require.NoError(t, played.MakeTurn(tictactoe.O, cell))
						return
					}
				}
			}).
			Return(nil).
			Twice()

		_, err = gamePlay.MakeTurn(ctx, game.ID, 0)
		require.NoError(t, err)
		_, err = gamePlay.MakeTurn(ctx, game.ID, 1)
		require.NoError(t, err)

		// When: X completes the top row
		game, err = gamePlay.MakeTurn(ctx, game.ID, 2)

		// Then: X wins, the score is recorded and the bot was asked only twice
		require.NoError(t, err)
		assert.True(t, game.IsFinished())
		assert.Equal(t, "X", game.Winner)
		assert.Equal(t, []int{0, 1, 2}, game.WinningLine)
		assert.Equal(t, entity.Score{Player1: 1}, game.Score)
		bot.AssertExpectations(t)
	})

	t.Run("Returns ErrGameFinished after the game ended", func(t *testing.T) {
		gamePlay := newTestGamePlay(t, &mockBotService{})
		game, err := gamePlay.CreateGame(ctx, entity.ModeTwoPlayer, tictactoe.DifficultyLow)
		require.NoError(t, err)
		for _, cell := range []int{0, 3, 1, 4, 2} {
			_, err = gamePlay.MakeTurn(ctx, game.ID, cell)
			require.NoError(t, err)
		}

		_, err = gamePlay.MakeTurn(ctx, game.ID, 8)

		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Returns ErrCellOccupied for a taken cell", func(t *testing.T) {
		gamePlay := newTestGamePlay(t, &mockBotService{})
		game, err := gamePlay.CreateGame(ctx, entity.ModeTwoPlayer, tictactoe.DifficultyLow)
		require.NoError(t, err)
		_, err = gamePlay.MakeTurn(ctx, game.ID, 0)
		require.NoError(t, err)

		_, err = gamePlay.MakeTurn(ctx, game.ID, 0)

		require.ErrorIs(t, err, apperror.ErrCellOccupied)
	})

	t.Run("Returns ErrGameNotFound for unknown games", func(t *testing.T) {
		gamePlay := newTestGamePlay(t, &mockBotService{})

		_, err := gamePlay.MakeTurn(ctx, "missing", 0)

		require.ErrorIs(t, err, repository.ErrGameNotFound)
	})

	t.Run("Propagates bot errors", func(t *testing.T) {
		errBot := errors.New("bot crashed")
		bot := &mockBotService{}
		bot.On("MakeTurn", mock.Anything).Return(errBot).Once()
		gamePlay := newTestGamePlay(t, bot)
		game, err := gamePlay.CreateGame(ctx, entity.ModeVsComputer, tictactoe.DifficultyLow)
		require.NoError(t, err)

		_, err = gamePlay.MakeTurn(ctx, game.ID, 4)

		require.ErrorIs(t, err, errBot)
	})

	t.Run("Serialises concurrent turns on one game", func(t *testing.T) {
		// Given: a two-player game
		gamePlay := newTestGamePlay(t, &mockBotService{})
		game, err := gamePlay.CreateGame(ctx, entity.ModeTwoPlayer, tictactoe.DifficultyLow)
		require.NoError(t, err)

		// When: many clients try to take the same cell at once
		var wg sync.WaitGroup
		results := make(chan error, 8)
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, turnErr := gamePlay.MakeTurn(ctx, game.ID, 4)
				results <- turnErr
			}()
		}
		wg.Wait()
		close(results)

		// Then: exactly one turn succeeded
		succeeded := 0
		for turnErr := range results {
			if turnErr == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, turnErr, apperror.ErrCellOccupied)
		}
		assert.Equal(t, 1, succeeded)
	})
}

func TestGamePlayService_SessionControls(t *testing.T) {
	ctx := context.Background()

	playRound := func(t *testing.T, gamePlay GamePlayService, gameID string) {
		t.Helper()
		for _, cell := range []int{0, 3, 1, 4, 2} {
			_, err := gamePlay.MakeTurn(ctx, gameID, cell)
			require.NoError(t, err)
		}
	}

	t.Run("ResetGame starts a new round and keeps the score", func(t *testing.T) {
		gamePlay := newTestGamePlay(t, &mockBotService{})
		game, err := gamePlay.CreateGame(ctx, entity.ModeTwoPlayer, tictactoe.DifficultyLow)
		require.NoError(t, err)
		playRound(t, gamePlay, game.ID)

		game, err = gamePlay.ResetGame(ctx, game.ID)

		require.NoError(t, err)
		assert.True(t, game.IsOngoing())
		assert.Equal(t, tictactoe.Board{}, game.Board)
		assert.Equal(t, 1, game.Score.Player1)
		assert.Len(t, game.History, 1)
	})

	t.Run("ChangeMode resets the board", func(t *testing.T) {
		gamePlay := newTestGamePlay(t, &mockBotService{})
		game, err := gamePlay.CreateGame(ctx, entity.ModeTwoPlayer, tictactoe.DifficultyLow)
		require.NoError(t, err)
		_, err = gamePlay.MakeTurn(ctx, game.ID, 4)
		require.NoError(t, err)

		game, err = gamePlay.ChangeMode(ctx, game.ID, entity.ModeVsComputer, tictactoe.DifficultyMedium)

		require.NoError(t, err)
		assert.Equal(t, entity.ModeVsComputer, game.Mode)
		assert.Equal(t, tictactoe.DifficultyMedium, game.Difficulty)
		assert.Equal(t, tictactoe.Board{}, game.Board)
	})

	t.Run("ChangeMode rejects unknown modes", func(t *testing.T) {
		gamePlay := newTestGamePlay(t, &mockBotService{})
		game, err := gamePlay.CreateGame(ctx, entity.ModeTwoPlayer, tictactoe.DifficultyLow)
		require.NoError(t, err)

		_, err = gamePlay.ChangeMode(ctx, game.ID, "online", tictactoe.DifficultyLow)

		require.ErrorIs(t, err, entity.ErrUnknownMode)
	})

	t.Run("ResetScores clears score and history", func(t *testing.T) {
		gamePlay := newTestGamePlay(t, &mockBotService{})
		game, err := gamePlay.CreateGame(ctx, entity.ModeTwoPlayer, tictactoe.DifficultyLow)
		require.NoError(t, err)
		playRound(t, gamePlay, game.ID)

		game, err = gamePlay.ResetScores(ctx, game.ID)

		require.NoError(t, err)
		assert.Equal(t, entity.Score{}, game.Score)
		assert.Empty(t, game.History)
	})

	t.Run("DeleteGame removes the game", func(t *testing.T) {
		gamePlay := newTestGamePlay(t, &mockBotService{})
		game, err := gamePlay.CreateGame(ctx, entity.ModeTwoPlayer, tictactoe.DifficultyLow)
		require.NoError(t, err)

		require.NoError(t, gamePlay.DeleteGame(ctx, game.ID))

		_, err = gamePlay.GetGame(ctx, game.ID)
		require.ErrorIs(t, err, repository.ErrGameNotFound)
	})
}

func cellOf(board tictactoe.Board, mark tictactoe.Mark) int {
	for i, cell := range board {
		if cell == mark {
			return i
		}
	}

	return tictactoe.NoMove
}
