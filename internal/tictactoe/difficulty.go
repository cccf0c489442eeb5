package tictactoe

import (
	"errors"
	"fmt"
	"strings"
)

// Difficulty controls how much randomness the computer mixes into its play.
type Difficulty string

const (
	DifficultyLow    Difficulty = "low"
	DifficultyMedium Difficulty = "medium"
	DifficultyHigh   Difficulty = "high"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

// ParseDifficulty accepts the tier names as well as the easy/hard/impossible
// labels shown to players.
func ParseDifficulty(value string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "low", "easy":
		return DifficultyLow, nil
	case "medium", "hard":
		return DifficultyMedium, nil
	case "high", "impossible":
		return DifficultyHigh, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, value)
	}
}

func (that Difficulty) String() string {
	return string(that)
}

// Validate reports whether the difficulty is one of the known tiers.
func (that Difficulty) Validate() error {
	switch that {
	case DifficultyLow, DifficultyMedium, DifficultyHigh:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDifficulty, string(that))
	}
}

// Label returns the name shown to players for the tier.
func (that Difficulty) Label() string {
	switch that {
	case DifficultyLow:
		return "easy"
	case DifficultyMedium:
		return "hard"
	case DifficultyHigh:
		return "impossible"
	default:
		return string(that)
	}
}
