package tictactoe

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Mark is the symbol held by a cell.
type Mark string

const (
	Empty Mark = ""
	X     Mark = "X"
	O     Mark = "O"
)

// BoardSize is the number of cells on the board.
const BoardSize = 9

var ErrInvalidBoard = errors.New("invalid board")

// Board is a 3x3 grid stored row-major. It is a value type, so every
// assignment is a copy.
type Board [BoardSize]Mark

// Opponent returns the other player's mark. Empty has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (that Mark) IsPlayer() bool {
	return that == X || that == O
}

// EmptyCells returns the indices of free cells in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == Empty {
			cells = append(cells, i)
		}
	}

	return cells
}

// Place returns a copy of the board with mark set at cell.
func (that Board) Place(cell int, mark Mark) Board {
	that[cell] = mark
	return that
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == Empty {
			return false
		}
	}

	return true
}

// Validate checks that every cell holds a known symbol and that X has
// either as many marks as O or exactly one more.
func (that Board) Validate() error {
	var xs, os int
	for i, cell := range that {
		switch cell {
		case X:
			xs++
		case O:
			os++
		case Empty:
		default:
			return fmt.Errorf("%w: unknown mark %q at cell %d", ErrInvalidBoard, cell, i)
		}
	}

	if xs != os && xs != os+1 {
		return fmt.Errorf("%w: %d X marks against %d O marks", ErrInvalidBoard, xs, os)
	}

	return nil
}

// UnmarshalJSON decodes a board from a JSON array and rejects arrays that
// do not hold exactly BoardSize cells.
func (that *Board) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var cells []Mark
	if err := json.Unmarshal(data, &cells); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBoard, err)
	}

	if len(cells) != BoardSize {
		return fmt.Errorf("%w: expected %d cells, got %d", ErrInvalidBoard, BoardSize, len(cells))
	}

	copy(that[:], cells)

	return nil
}
