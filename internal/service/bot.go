package service

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

var ErrNoAvailableMoves = errors.New("no available moves")

type BotService interface {
	MakeTurn(game *entity.Game) error
	SelectMove(board tictactoe.Board, mark tictactoe.Mark, difficulty tictactoe.Difficulty) int
}

type botService struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewBotService plays the computer's turns. The source is shared by all
// games and guarded by a mutex.
func NewBotService(source rand.Source) BotService {
	return &botService{
		rnd: rand.New(source), //nolint: gosec // game randomness
	}
}

func (that *botService) SelectMove(board tictactoe.Board, mark tictactoe.Mark, difficulty tictactoe.Difficulty) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return tictactoe.SelectMove(board, mark, difficulty, that.rnd)
}

func (that *botService) MakeTurn(game *entity.Game) error {
	chosenCell := that.SelectMove(game.Board, entity.ComputerMark, game.Difficulty)

	if chosenCell == tictactoe.NoMove {
		return ErrNoAvailableMoves
	}

	if err := game.MakeTurn(entity.ComputerMark, chosenCell); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}
