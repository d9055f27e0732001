package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/service"
)

type gameplayService interface {
	CreateGame(ctx context.Context, ownerID, difficulty string) (*entity.Game, error)
	GetGame(ctx context.Context, ownerID, gameID string) (*entity.Game, error)
	ListGames(ctx context.Context, ownerID, status string, offset, limit int) ([]*entity.Game, error)
	ListMoves(ctx context.Context, ownerID, gameID string) ([]*entity.Move, error)
	ApplyMove(ctx context.Context, ownerID, gameID string, position int) (*service.MoveResult, error)
}

type userService interface {
	Register(ctx context.Context, email, password string) (*entity.User, error)
	Authenticate(ctx context.Context, email, password string) (*entity.User, error)
}

type authService interface {
	GenerateToken(userID string) (string, error)
	ParseToken(tokenString string) (string, error)
}

type Server struct {
	logger *slog.Logger

	gameplay gameplayService
	users    userService
	auth     authService
}

func New(logger *slog.Logger, gameplay gameplayService, users userService, auth authService) *Server {
	return &Server{
		logger:   logger.With("component", "rest"),
		gameplay: gameplay,
		users:    users,
		auth:     auth,
	}
}

func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", that.handlePing)

	mux.HandleFunc("POST /api/v1/auth/register", that.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", that.handleLogin)

	mux.HandleFunc("POST /api/v1/games", that.requireAuth(that.handleCreateGame))
	mux.HandleFunc("GET /api/v1/games", that.requireAuth(that.handleListGames))
	mux.HandleFunc("GET /api/v1/games/{id}", that.requireAuth(that.handleGetGame))
	mux.HandleFunc("GET /api/v1/games/{id}/moves", that.requireAuth(that.handleListMoves))
	mux.HandleFunc("POST /api/v1/games/{id}/moves", that.requireAuth(that.handleMakeMove))

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// requireAuth - resolves the bearer token into a user ID and hands it to
// the wrapped handler.
func (that *Server) requireAuth(next func(w http.ResponseWriter, r *http.Request, userID string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			writeJSONError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		userID, err := that.auth.ParseToken(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, "invalid auth token")
			return
		}

		next(w, r, userID)
	}
}

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}
