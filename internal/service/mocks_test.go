package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

type mockBotService struct {
	mock.Mock
}

func (that *mockBotService) MakeTurn(game *entity.Game) error {
	args := that.Called(game)
	return args.Error(0)
}

func (that *mockBotService) SelectMove(board tictactoe.Board, mark tictactoe.Mark, difficulty tictactoe.Difficulty) int {
	args := that.Called(board, mark, difficulty)
	return args.Int(0)
}
