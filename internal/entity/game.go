package entity

import (
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerX   = tictactoe.X
	PlayerO   = tictactoe.O
	PlayerTie = "-"

	EmptyCell = tictactoe.Empty
)

const (
	ModeTwoPlayer  = "two-player"
	ModeVsComputer = "vs-computer"

	// ComputerMark is the mark the computer plays; the human always opens with X.
	ComputerMark = PlayerO
)

var (
	ErrInvalidCell       = errors.New("invalid cell index")
	ErrUnknownGameStatus = errors.New("unknown game status")
	ErrUnknownMode       = errors.New("unknown game mode")
)

type Game struct {
	ID          string               `json:"id"`
	Board       tictactoe.Board      `json:"board"`
	Turn        tictactoe.Mark       `json:"player_turn"`
	Winner      string               `json:"winner"`
	WinningLine []int                `json:"winning_line,omitempty"`
	Status      string               `json:"status"`
	Mode        string               `json:"mode"`
	Difficulty  tictactoe.Difficulty `json:"difficulty"`
	Score       Score                `json:"score"`
	History     []HistoryEntry       `json:"history"`
}

func NewGame(id, mode string, difficulty tictactoe.Difficulty) *Game {
	return &Game{
		ID:         id,
		Turn:       PlayerX,
		Status:     StatusOngoing,
		Mode:       mode,
		Difficulty: difficulty,
		History:    []HistoryEntry{},
	}
}

func ValidateMode(mode string) error {
	if mode != ModeTwoPlayer && mode != ModeVsComputer {
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	return nil
}

// UpdateGameState re-evaluates the board and, when the game has just ended,
// records the result in the score and history.
func (that *Game) UpdateGameState() {
	result := tictactoe.Evaluate(that.Board)

	switch result.State {
	// one player wins
	case tictactoe.StateWon:
		that.Winner = string(result.Winner)
		that.WinningLine = result.Line[:]
	// tie
	case tictactoe.StateDraw:
		that.Winner = PlayerTie
		that.WinningLine = nil
	// game continue
	default:
		that.Status = StatusOngoing
		return
	}

	that.Status = StatusFinished
	that.Turn = EmptyCell
	that.recordResult(time.Now().UTC())
}

func (that *Game) MakeTurn(playerMark tictactoe.Mark, cell int) error {
	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	if that.Board[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that.Board = that.Board.Place(cell, playerMark)
	that.Turn = playerMark.Opponent()

	that.UpdateGameState()

	return nil
}

// Reset clears the board for a new round. Score and history are kept.
func (that *Game) Reset() {
	that.Board = tictactoe.Board{}
	that.Turn = PlayerX
	that.Winner = ""
	that.WinningLine = nil
	that.Status = StatusOngoing
}

// ChangeMode switches mode and difficulty and starts a new round.
func (that *Game) ChangeMode(mode string, difficulty tictactoe.Difficulty) error {
	if err := ValidateMode(mode); err != nil {
		return err
	}

	if err := difficulty.Validate(); err != nil {
		return err
	}

	that.Mode = mode
	that.Difficulty = difficulty
	that.Reset()

	return nil
}

func (that *Game) ResetScores() {
	that.Score = Score{}
	that.History = []HistoryEntry{}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) IsVsComputer() bool {
	return that.Mode == ModeVsComputer
}

func (that *Game) IsComputerTurn() bool {
	return that.IsVsComputer() && that.IsOngoing() && that.Turn == ComputerMark
}
