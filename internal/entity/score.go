package entity

import (
	"fmt"
	"math"
	"time"

	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

const (
	ResultWin  = "win"
	ResultLoss = "loss"
	ResultDraw = "draw"
)

// Score counts finished rounds of a session.
type Score struct {
	Player1  int `json:"player1"`
	Player2  int `json:"player2"`
	Computer int `json:"computer"`
	Draws    int `json:"draws"`
}

// Stats are the score totals with rounded percentages.
type Stats struct {
	TotalGames         int `json:"total_games"`
	Player1Percentage  int `json:"player1_percentage"`
	Player2Percentage  int `json:"player2_percentage"`
	ComputerPercentage int `json:"computer_percentage"`
	DrawPercentage     int `json:"draw_percentage"`
}

// HistoryEntry describes one finished round. Difficulty is only set for
// rounds against the computer.
type HistoryEntry struct {
	Date       time.Time            `json:"date"`
	Mode       string               `json:"mode"`
	Difficulty tictactoe.Difficulty `json:"difficulty,omitempty"`
	Result     string               `json:"result"`
	Winner     string               `json:"winner"`
}

func (that Score) Total() int {
	return that.Player1 + that.Player2 + that.Computer + that.Draws
}

func (that Score) Stats() Stats {
	total := that.Total()

	return Stats{
		TotalGames:         total,
		Player1Percentage:  percentage(that.Player1, total),
		Player2Percentage:  percentage(that.Player2, total),
		ComputerPercentage: percentage(that.Computer, total),
		DrawPercentage:     percentage(that.Draws, total),
	}
}

func percentage(part, total int) int {
	if total == 0 {
		return 0
	}

	return int(math.Round(float64(part) / float64(total) * 100))
}

// recordResult adds the finished round to the score and history. It must be
// called once per round, right after the game finished.
func (that *Game) recordResult(date time.Time) {
	entry := HistoryEntry{
		Date: date,
		Mode: that.Mode,
	}
	if that.IsVsComputer() {
		entry.Difficulty = that.Difficulty
	}

	switch {
	case that.Winner == string(PlayerX):
		that.Score.Player1++
		entry.Result = ResultWin
		entry.Winner = "Player 1"
	case that.Winner == string(PlayerO) && !that.IsVsComputer():
		that.Score.Player2++
		entry.Result = ResultWin
		entry.Winner = "Player 2"
	case that.Winner == string(PlayerO):
		that.Score.Computer++
		entry.Result = ResultLoss
		entry.Winner = fmt.Sprintf("Computer (%s)", that.Difficulty.Label())
	default:
		that.Score.Draws++
		entry.Result = ResultDraw
		entry.Winner = "None (Draw)"
	}

	that.History = append(that.History, entry)
}
