package oracle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/tictactoe"
)

// outcome tags the result of one transport attempt.
type outcome int

const (
	outcomeValid outcome = iota
	outcomeInvalid
	outcomeTransportFailure
	outcomeParseFailure
)

// Oracle produces the automated player's move. An immediately winning move
// is taken without any external call; everything else is asked of a
// chat-completion model, with validation and a bounded retry budget.
type Oracle struct {
	logger      *slog.Logger
	transport   Transport
	keys        *KeyRing
	maxAttempts int
}

func New(logger *slog.Logger, transport Transport, keys *KeyRing, maxAttempts int) *Oracle {
	return &Oracle{
		logger:      logger.With("component", "oracle"),
		transport:   transport,
		keys:        keys,
		maxAttempts: maxAttempts,
	}
}

// GetMove - returns a legal position for mark on the given board.
// Fails with an *apperror.OracleError once the attempt budget is exhausted.
func (that *Oracle) GetMove(ctx context.Context, board entity.Board, mark entity.Cell, difficulty string) (int, error) {
	// fast path: never miss an immediately winning move, regardless of
	// difficulty, and consume no attempts
	if pos, ok := tictactoe.WinningMove(board, mark); ok {
		that.logger.Debug("taking winning move", "position", pos)
		return pos, nil
	}

	var (
		invalid          []int
		lastTransportErr error
	)

	for attempt := 1; attempt <= that.maxAttempts; attempt++ {
		pos, kind, err := that.attempt(ctx, board, mark, difficulty, invalid)

		switch kind {
		case outcomeValid:
			return pos, nil
		case outcomeInvalid:
			that.logger.Warn("oracle proposed invalid position", "position", pos, "attempt", attempt)
			if !containsPosition(invalid, pos) {
				invalid = append(invalid, pos)
			}
		case outcomeTransportFailure:
			that.logger.Warn("oracle transport failed", "attempt", attempt, "error", err)
			lastTransportErr = err
		case outcomeParseFailure:
			that.logger.Warn("oracle response unparseable", "attempt", attempt, "error", err)
		}
	}

	return 0, &apperror.OracleError{
		Attempts:         that.maxAttempts,
		InvalidPositions: invalid,
		LastTransportErr: lastTransportErr,
	}
}

// attempt - performs one credential selection, transport call, parse and
// validation round.
func (that *Oracle) attempt(ctx context.Context, board entity.Board, mark entity.Cell, difficulty string, excluded []int) (int, outcome, error) {
	prompt := buildPrompt(board, mark, difficulty, excluded)
	apiKey := that.keys.Next()

	content, err := that.transport.Complete(ctx, apiKey, prompt)
	if err != nil {
		if errors.Is(err, apperror.ErrParse) {
			return 0, outcomeParseFailure, err
		}
		return 0, outcomeTransportFailure, err
	}

	pos, err := parseMove(content)
	if err != nil {
		return 0, outcomeParseFailure, err
	}

	if !tictactoe.Validate(board, pos) {
		return pos, outcomeInvalid, nil
	}

	return pos, outcomeValid, nil
}

// parseMove - extracts the first digit character from the model output.
func parseMove(content string) (int, error) {
	for _, r := range content {
		if r >= '0' && r <= '9' {
			return int(r - '0'), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", apperror.ErrParse, content)
}

func containsPosition(positions []int, pos int) bool {
	for _, p := range positions {
		if p == pos {
			return true
		}
	}

	return false
}
