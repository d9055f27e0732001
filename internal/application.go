package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/config"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/oracle"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/repository"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/repository/storage/sqlite"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai-backend/transport/rest"
)

var (
	ErrAddrNotFound = errors.New("redis address string is empty")
	ErrNoOracleKeys = errors.New("no oracle api keys configured")
	ErrNoJWTSecret  = errors.New("jwt secret key is empty")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	if len(conf.Oracle.APIKeys) == 0 {
		return ErrNoOracleKeys
	}

	if conf.JWTSecretKey == "" {
		return ErrNoJWTSecret
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := sqlite.New(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	gameRepo := repository.NewGameRepository(redisStorage.Connection)
	userRepo := repository.NewUserRepository(sqliteStorage.Connection)

	transport := oracle.NewChatClient(conf.Oracle.BaseURL, conf.Oracle.Model, conf.Oracle.Timeout())
	keyRing := oracle.NewKeyRing(conf.Oracle.APIKeys)
	moveOracle := oracle.New(logger, transport, keyRing, conf.Oracle.MaxAttempts)

	gameplayService := service.NewGameplayService(logger, gameRepo, moveOracle)
	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(conf.JWTSecretKey)

	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		server := rest.New(logger, gameplayService, userService, authService)
		if httpErr := server.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
