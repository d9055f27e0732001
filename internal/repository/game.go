package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/entity"
)

type GameRepository interface {
	Save(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, gameID, ownerID string) (*entity.Game, error)
	AppendMove(ctx context.Context, move *entity.Move) error
	ListMoves(ctx context.Context, gameID string) ([]*entity.Move, error)
	ListByOwner(ctx context.Context, ownerID, status string, offset, limit int) ([]*entity.Game, error)
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func gameKey(gameID string) string   { return "game:" + gameID }
func movesKey(gameID string) string  { return "moves:" + gameID }
func ownerKey(ownerID string) string { return "games:" + ownerID }

// Save - stores the game and scores it by update time in the owner's index,
// so listings come back most-recently-updated first.
func (that *dbGame) Save(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	pipe := that.client.TxPipeline()
	pipe.Set(ctx, gameKey(game.ID), gameJSON, 0)
	pipe.ZAdd(ctx, ownerKey(game.OwnerID), redis.Z{
		Score:  float64(game.UpdatedAt.UnixNano()),
		Member: game.ID,
	})

	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, gameID, ownerID string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, gameKey(gameID)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: game %s", apperror.ErrNotFound, gameID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	var game entity.Game
	if err = json.Unmarshal([]byte(response), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	// an owner mismatch looks the same as a missing game to the caller
	if game.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: game %s", apperror.ErrNotFound, gameID)
	}

	return &game, nil
}

// AppendMove - appends to the game's immutable move log.
func (that *dbGame) AppendMove(ctx context.Context, move *entity.Move) error {
	moveJSON, err := json.Marshal(move)
	if err != nil {
		return fmt.Errorf("could not marshal move: %w", err)
	}

	if err = that.client.RPush(ctx, movesKey(move.GameID), moveJSON).Err(); err != nil {
		return fmt.Errorf("failed to append move: %w", err)
	}

	return nil
}

func (that *dbGame) ListMoves(ctx context.Context, gameID string) ([]*entity.Move, error) {
	raw, err := that.client.LRange(ctx, movesKey(gameID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list moves: %w", err)
	}

	moves := make([]*entity.Move, 0, len(raw))
	for _, item := range raw {
		var move entity.Move
		if err = json.Unmarshal([]byte(item), &move); err != nil {
			return nil, fmt.Errorf("failed to unmarshal move: %w", err)
		}
		moves = append(moves, &move)
	}

	return moves, nil
}

// ListByOwner - returns the owner's games ordered most-recently-updated
// first, optionally filtered by status.
func (that *dbGame) ListByOwner(ctx context.Context, ownerID, status string, offset, limit int) ([]*entity.Game, error) {
	ids, err := that.client.ZRevRange(ctx, ownerKey(ownerID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	games := make([]*entity.Game, 0, len(ids))
	for _, id := range ids {
		game, err := that.GetByID(ctx, id, ownerID)
		if errors.Is(err, apperror.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		if status != "" && game.Status != status {
			continue
		}

		games = append(games, game)
	}

	if offset >= len(games) {
		return []*entity.Game{}, nil
	}

	games = games[offset:]
	if limit > 0 && limit < len(games) {
		games = games[:limit]
	}

	return games, nil
}
