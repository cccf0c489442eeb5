package rest

import (
	"net/http"

	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

type evaluateRequest struct {
	Board tictactoe.Board `json:"board"`
}

type evaluateResponse struct {
	State  tictactoe.State `json:"state"`
	Winner tictactoe.Mark  `json:"winner,omitempty"`
	Line   []int           `json:"line,omitempty"`
}

type moveRequest struct {
	Board      tictactoe.Board `json:"board"`
	Mark       tictactoe.Mark  `json:"mark"`
	Difficulty string          `json:"difficulty"`
}

type moveResponse struct {
	Cell int `json:"cell"`
}

func (that *handlers) evaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, that.logger, err)
		return
	}

	if err := req.Board.Validate(); err != nil {
		writeError(w, that.logger, err)
		return
	}

	result := tictactoe.Evaluate(req.Board)

	resp := evaluateResponse{State: result.State}
	if result.State == tictactoe.StateWon {
		resp.Winner = result.Winner
		resp.Line = result.Line[:]
	}

	writeJSON(w, http.StatusOK, resp)
}

func (that *handlers) selectMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, that.logger, err)
		return
	}

	if err := req.Board.Validate(); err != nil {
		writeError(w, that.logger, err)
		return
	}

	if !req.Mark.IsPlayer() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "mark must be X or O"})
		return
	}

	difficulty, err := parseDifficulty(req.Difficulty)
	if err != nil {
		writeError(w, that.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, moveResponse{Cell: that.bot.SelectMove(req.Board, req.Mark, difficulty)})
}
