package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/apperror"
)

const minPasswordLength = 8

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (that *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	user, err := that.users.Register(r.Context(), req.Email, req.Password)
	if errors.Is(err, apperror.ErrUserAlreadyExists) {
		writeJSONError(w, http.StatusConflict, "user already exists")
		return
	}
	if err != nil {
		that.logger.Error("failed to register user", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	token, err := that.auth.GenerateToken(user.ID)
	if err != nil {
		that.logger.Error("failed to generate token", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (that *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	user, err := that.users.Authenticate(r.Context(), req.Email, req.Password)
	if errors.Is(err, apperror.ErrWrongCredentials) {
		writeJSONError(w, http.StatusUnauthorized, "wrong email or password")
		return
	}
	if err != nil {
		that.logger.Error("failed to authenticate user", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	token, err := that.auth.GenerateToken(user.ID)
	if err != nil {
		that.logger.Error("failed to generate token", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeJSONError(w, http.StatusBadRequest, "valid email is required")
		return req, false
	}

	if len(req.Password) < minPasswordLength {
		writeJSONError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return req, false
	}

	return req, true
}
