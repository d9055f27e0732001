package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/tictactoe"
)

// MoveResult is what a completed (or half-completed) turn looks like to the
// transport layer.
type MoveResult struct {
	Position       int          `json:"position"`
	Player         entity.Cell  `json:"player"`
	Board          entity.Board `json:"board"`
	Status         string       `json:"status"`
	Winner         entity.Cell  `json:"winner,omitempty"`
	OraclePosition *int         `json:"oracle_position,omitempty"`
}

type GameplayService interface {
	CreateGame(ctx context.Context, ownerID, difficulty string) (*entity.Game, error)
	GetGame(ctx context.Context, ownerID, gameID string) (*entity.Game, error)
	ListGames(ctx context.Context, ownerID, status string, offset, limit int) ([]*entity.Game, error)
	ListMoves(ctx context.Context, ownerID, gameID string) ([]*entity.Move, error)
	ApplyMove(ctx context.Context, ownerID, gameID string, position int) (*MoveResult, error)
}

type gameRepo interface {
	Save(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, gameID, ownerID string) (*entity.Game, error)
	AppendMove(ctx context.Context, move *entity.Move) error
	ListMoves(ctx context.Context, gameID string) ([]*entity.Move, error)
	ListByOwner(ctx context.Context, ownerID, status string, offset, limit int) ([]*entity.Game, error)
}

type moveOracle interface {
	GetMove(ctx context.Context, board entity.Board, mark entity.Cell, difficulty string) (int, error)
}

type gameplayService struct {
	logger   *slog.Logger
	gameRepo gameRepo
	oracle   moveOracle
}

func NewGameplayService(logger *slog.Logger, gameRepo gameRepo, oracle moveOracle) GameplayService {
	return &gameplayService{
		logger:   logger.With("component", "gameplay"),
		gameRepo: gameRepo,
		oracle:   oracle,
	}
}

func (that *gameplayService) CreateGame(ctx context.Context, ownerID, difficulty string) (*entity.Game, error) {
	game := entity.NewGame(uuid.NewString(), ownerID, difficulty)

	if err := that.gameRepo.Save(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "game_id", game.ID, "difficulty", difficulty)

	return game, nil
}

func (that *gameplayService) GetGame(ctx context.Context, ownerID, gameID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *gameplayService) ListGames(ctx context.Context, ownerID, status string, offset, limit int) ([]*entity.Game, error) {
	games, err := that.gameRepo.ListByOwner(ctx, ownerID, status, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	return games, nil
}

func (that *gameplayService) ListMoves(ctx context.Context, ownerID, gameID string) ([]*entity.Move, error) {
	// the ownership check rides on GetByID
	if _, err := that.gameRepo.GetByID(ctx, gameID, ownerID); err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	moves, err := that.gameRepo.ListMoves(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list moves: %w", err)
	}

	return moves, nil
}

// ApplyMove - applies the human's move and, if the game is still open,
// drives the oracle through its half of the turn. The human always plays X,
// the oracle always plays O.
//
// If the oracle fails, the human's move stays committed and the game stays
// in progress. The asymmetry is deliberate: the player loses nothing, the
// next attempt only has to fetch the opponent's move.
func (that *gameplayService) ApplyMove(ctx context.Context, ownerID, gameID string, position int) (*MoveResult, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if !game.IsInProgress() {
		return nil, &apperror.GameOverError{Status: game.Status, Winner: game.Winner}
	}

	// a previous turn may have committed the human's half and then failed
	// to fetch the oracle's move; finish that half-turn before accepting a
	// new position
	if game.CurrentPlayer == entity.PlayerO {
		if _, err = that.commitOracleMove(ctx, game); err != nil {
			return nil, err
		}

		if !game.IsInProgress() {
			return nil, &apperror.GameOverError{Status: game.Status, Winner: game.Winner}
		}
	}

	if !tictactoe.Validate(game.Board, position) {
		return nil, &apperror.InvalidMoveError{Position: position, Board: game.Board}
	}

	if err = that.commitMove(ctx, game, position, entity.PlayerX); err != nil {
		return nil, err
	}

	result := &MoveResult{
		Position: position,
		Player:   entity.PlayerX,
		Board:    game.Board,
		Status:   game.Status,
		Winner:   game.Winner,
	}

	// the human's move ended the game: no oracle call is made
	if !game.IsInProgress() {
		return result, nil
	}

	oraclePos, err := that.commitOracleMove(ctx, game)
	if err != nil {
		return nil, err
	}

	result.Board = game.Board
	result.Status = game.Status
	result.Winner = game.Winner
	result.OraclePosition = &oraclePos

	return result, nil
}

// commitOracleMove - fetches the oracle's move for O and commits it. On
// oracle failure nothing is rolled back: the moves committed so far stay
// persisted (intentional partial commit) and the game stays in progress.
func (that *gameplayService) commitOracleMove(ctx context.Context, game *entity.Game) (int, error) {
	oraclePos, err := that.oracle.GetMove(ctx, game.Board, entity.PlayerO, game.Difficulty)
	if err != nil {
		that.logger.Error("oracle move failed", "game_id", game.ID, "error", err)
		return 0, fmt.Errorf("failed to get oracle move: %w", err)
	}

	if err = that.commitMove(ctx, game, oraclePos, entity.PlayerO); err != nil {
		return 0, err
	}

	return oraclePos, nil
}

// commitMove - applies one half-turn: mark the board, advance the turn,
// recompute terminal status, record the move and persist the game.
func (that *gameplayService) commitMove(ctx context.Context, game *entity.Game, position int, mark entity.Cell) error {
	game.Board = tictactoe.Apply(game.Board, position, mark)
	game.CurrentPlayer = entity.Opponent(mark)
	game.UpdatedAt = time.Now().UTC()

	if winner, ok := tictactoe.Winner(game.Board); ok {
		game.Status = entity.StatusFinished
		game.Winner = winner
		game.CurrentPlayer = entity.CellEmpty
	} else if tictactoe.IsFull(game.Board) {
		game.Status = entity.StatusDraw
		game.CurrentPlayer = entity.CellEmpty
	}

	move := &entity.Move{
		GameID:    game.ID,
		Position:  position,
		Player:    mark,
		CreatedAt: game.UpdatedAt,
	}

	if err := that.gameRepo.AppendMove(ctx, move); err != nil {
		return fmt.Errorf("failed to append move: %w", err)
	}

	if err := that.gameRepo.Save(ctx, game); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}
