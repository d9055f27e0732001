package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/entity"
)

const (
	defaultListLimit = 100
	maxListLimit     = 100
)

type createGameRequest struct {
	Difficulty string `json:"difficulty"`
}

type makeMoveRequest struct {
	Position *int `json:"position"`
}

func (that *Server) handleCreateGame(w http.ResponseWriter, r *http.Request, userID string) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Difficulty == "" {
		req.Difficulty = entity.DifficultyMedium
	}

	if !entity.IsValidDifficulty(req.Difficulty) {
		writeJSONError(w, http.StatusBadRequest, "difficulty must be easy, medium or hard")
		return
	}

	game, err := that.gameplay.CreateGame(r.Context(), userID, req.Difficulty)
	if err != nil {
		that.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, game)
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request, userID string) {
	game, err := that.gameplay.GetGame(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		that.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *Server) handleListGames(w http.ResponseWriter, r *http.Request, userID string) {
	status := r.URL.Query().Get("status")

	offset := parseQueryInt(r, "offset", 0)
	limit := parseQueryInt(r, "limit", defaultListLimit)
	if limit < 1 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	games, err := that.gameplay.ListGames(r.Context(), userID, status, offset, limit)
	if err != nil {
		that.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  games,
		"count": len(games),
	})
}

func (that *Server) handleListMoves(w http.ResponseWriter, r *http.Request, userID string) {
	moves, err := that.gameplay.ListMoves(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		that.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  moves,
		"count": len(moves),
	})
}

func (that *Server) handleMakeMove(w http.ResponseWriter, r *http.Request, userID string) {
	var req makeMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Position == nil {
		writeJSONError(w, http.StatusBadRequest, "position is required")
		return
	}

	result, err := that.gameplay.ApplyMove(r.Context(), userID, r.PathValue("id"), *req.Position)
	if err != nil {
		that.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// writeServiceError - translates error kinds into transport-level statuses.
func (that *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "game not found")
	case errors.Is(err, apperror.ErrInvalidMove):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperror.ErrGameOver):
		writeJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, apperror.ErrOracle):
		writeJSONError(w, http.StatusServiceUnavailable, "opponent is unavailable, try again")
	default:
		that.logger.Error("unhandled service error", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func parseQueryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}

	return value
}
