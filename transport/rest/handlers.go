package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

type gamePlayService interface {
	CreateGame(ctx context.Context, mode string, difficulty tictactoe.Difficulty) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error

	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	ResetGame(ctx context.Context, gameID string) (*entity.Game, error)
	ChangeMode(ctx context.Context, gameID, mode string, difficulty tictactoe.Difficulty) (*entity.Game, error)
	ResetScores(ctx context.Context, gameID string) (*entity.Game, error)
}

type moveSelector interface {
	SelectMove(board tictactoe.Board, mark tictactoe.Mark, difficulty tictactoe.Difficulty) int
}

type handlers struct {
	logger   *slog.Logger
	gamePlay gamePlayService
	bot      moveSelector
}

type modeRequest struct {
	Mode       string `json:"mode"`
	Difficulty string `json:"difficulty,omitempty"`
}

type turnRequest struct {
	Cell *int `json:"cell"`
}

type scoreResponse struct {
	Score   entity.Score          `json:"score"`
	Stats   entity.Stats          `json:"stats"`
	History []entity.HistoryEntry `json:"history"`
}

// parseDifficulty falls back to the low tier when the client sends none.
func parseDifficulty(value string) (tictactoe.Difficulty, error) {
	if value == "" {
		return tictactoe.DifficultyLow, nil
	}

	return tictactoe.ParseDifficulty(value)
}

func (that *handlers) createGame(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, that.logger, err)
		return
	}

	difficulty, err := parseDifficulty(req.Difficulty)
	if err != nil {
		writeError(w, that.logger, err)
		return
	}

	game, err := that.gamePlay.CreateGame(r.Context(), req.Mode, difficulty)
	if err != nil {
		writeError(w, that.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gamePlay.GetGame(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		writeError(w, that.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *handlers) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gamePlay.DeleteGame(r.Context(), chi.URLParam(r, "gameID")); err != nil {
		writeError(w, that.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) makeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, that.logger, err)
		return
	}

	if req.Cell == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cell is required"})
		return
	}

	game, err := that.gamePlay.MakeTurn(r.Context(), chi.URLParam(r, "gameID"), *req.Cell)
	if err != nil {
		writeError(w, that.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *handlers) resetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gamePlay.ResetGame(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		writeError(w, that.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *handlers) changeMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, that.logger, err)
		return
	}

	difficulty, err := parseDifficulty(req.Difficulty)
	if err != nil {
		writeError(w, that.logger, err)
		return
	}

	game, err := that.gamePlay.ChangeMode(r.Context(), chi.URLParam(r, "gameID"), req.Mode, difficulty)
	if err != nil {
		writeError(w, that.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *handlers) getScore(w http.ResponseWriter, r *http.Request) {
	game, err := that.gamePlay.GetGame(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		writeError(w, that.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, scoreResponse{
		Score:   game.Score,
		Stats:   game.Score.Stats(),
		History: game.History,
	})
}

func (that *handlers) resetScores(w http.ResponseWriter, r *http.Request) {
	game, err := that.gamePlay.ResetScores(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		writeError(w, that.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}
