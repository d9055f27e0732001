package oracle

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/entity"
)

type mockTransport struct {
	calls   int
	keys    []string
	prompts []string

	respond func(call int) (string, error)
}

func (that *mockTransport) Complete(_ context.Context, apiKey, prompt string) (string, error) {
	that.calls++
	that.keys = append(that.keys, apiKey)
	that.prompts = append(that.prompts, prompt)

	return that.respond(that.calls)
}

func newTestOracle(transport Transport, keys []string, maxAttempts int) *Oracle {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	return New(logger, transport, NewKeyRing(keys), maxAttempts)
}

func TestOracle_GetMove_FastPath(t *testing.T) {
	t.Run("Takes the winning move without any transport call", func(t *testing.T) {
		// Given: X holds 0 and 1 with 2 open
		board := entity.Board{}
		board[0] = entity.PlayerX
		board[1] = entity.PlayerX

		transport := &mockTransport{respond: func(int) (string, error) {
			t.Fatal("transport must not be called")
			return "", nil
		}}
		oracle := newTestOracle(transport, []string{"key"}, 3)

		// When: asking for X's move
		pos, err := oracle.GetMove(context.Background(), board, entity.PlayerX, entity.DifficultyHard)

		// Then: the winning position comes back with zero external calls
		require.NoError(t, err)
		assert.Equal(t, 2, pos)
		assert.Zero(t, transport.calls)
	})
}

func TestOracle_GetMove_Transport(t *testing.T) {
	t.Run("Returns the first valid parsed position", func(t *testing.T) {
		// Given: a model that answers with surrounding text
		transport := &mockTransport{respond: func(int) (string, error) {
			return "I choose 4.", nil
		}}
		oracle := newTestOracle(transport, []string{"key"}, 3)

		// When: asking for a move on an empty board
		pos, err := oracle.GetMove(context.Background(), entity.Board{}, entity.PlayerO, entity.DifficultyMedium)

		// Then: the first digit in the response wins
		require.NoError(t, err)
		assert.Equal(t, 4, pos)
		assert.Equal(t, 1, transport.calls)
	})

	t.Run("Retries transport failures up to the attempt budget", func(t *testing.T) {
		// Given: a transport that always fails
		transportErr := errors.New("status 503")
		transport := &mockTransport{respond: func(int) (string, error) {
			return "", transportErr
		}}
		oracle := newTestOracle(transport, []string{"key"}, 3)

		// When: asking for a move
		_, err := oracle.GetMove(context.Background(), entity.Board{}, entity.PlayerO, entity.DifficultyEasy)

		// Then: an OracleError carrying the last transport error, after
		// exactly the configured number of attempts
		require.ErrorIs(t, err, apperror.ErrOracle)
		assert.Equal(t, 3, transport.calls)

		var oracleErr *apperror.OracleError
		require.ErrorAs(t, err, &oracleErr)
		assert.Equal(t, 3, oracleErr.Attempts)
		assert.ErrorIs(t, oracleErr.LastTransportErr, transportErr)
	})

	t.Run("Rotates credentials on every attempt", func(t *testing.T) {
		// Given: three credentials and a transport that fails twice
		transport := &mockTransport{respond: func(call int) (string, error) {
			if call < 3 {
				return "", errors.New("status 429")
			}
			return "7", nil
		}}
		oracle := newTestOracle(transport, []string{"a", "b", "c"}, 3)

		// When: asking for a move
		pos, err := oracle.GetMove(context.Background(), entity.Board{}, entity.PlayerO, entity.DifficultyMedium)

		// Then: each attempt used the next key in the ring
		require.NoError(t, err)
		assert.Equal(t, 7, pos)
		assert.Equal(t, []string{"a", "b", "c"}, transport.keys)
	})

	t.Run("Rejected positions are excluded from the next prompt", func(t *testing.T) {
		// Given: position 0 is occupied and the model proposes it anyway
		board := entity.Board{}
		board[0] = entity.PlayerX

		transport := &mockTransport{respond: func(call int) (string, error) {
			if call == 1 {
				return "0", nil
			}
			return "5", nil
		}}
		oracle := newTestOracle(transport, []string{"key"}, 3)

		// When: asking for a move
		pos, err := oracle.GetMove(context.Background(), board, entity.PlayerO, entity.DifficultyMedium)

		// Then: the retry succeeds and its prompt names the rejected position
		require.NoError(t, err)
		assert.Equal(t, 5, pos)
		require.Len(t, transport.prompts, 2)
		assert.NotContains(t, transport.prompts[0], "INVALID positions")
		assert.Contains(t, transport.prompts[1], "INVALID positions: 0")
	})

	t.Run("Exhausting attempts on invalid positions reports them all", func(t *testing.T) {
		// Given: the model insists on the occupied position 4
		board := entity.Board{}
		board[4] = entity.PlayerX

		transport := &mockTransport{respond: func(int) (string, error) {
			return "4", nil
		}}
		oracle := newTestOracle(transport, []string{"key"}, 3)

		// When: asking for a move
		_, err := oracle.GetMove(context.Background(), board, entity.PlayerO, entity.DifficultyHard)

		// Then: the OracleError lists the invalid position once
		var oracleErr *apperror.OracleError
		require.ErrorAs(t, err, &oracleErr)
		assert.Equal(t, []int{4}, oracleErr.InvalidPositions)
		assert.NoError(t, oracleErr.LastTransportErr)
		assert.Equal(t, 3, transport.calls)
	})

	t.Run("Unparseable responses consume attempts and retry", func(t *testing.T) {
		// Given: the first response has no digit
		transport := &mockTransport{respond: func(call int) (string, error) {
			if call == 1 {
				return "the center looks strong", nil
			}
			return "4", nil
		}}
		oracle := newTestOracle(transport, []string{"key"}, 3)

		// When: asking for a move
		pos, err := oracle.GetMove(context.Background(), entity.Board{}, entity.PlayerO, entity.DifficultyMedium)

		// Then: the retry returns the parsed position
		require.NoError(t, err)
		assert.Equal(t, 4, pos)
		assert.Equal(t, 2, transport.calls)
	})

	t.Run("Prompt carries a must-block hint when the opponent threatens", func(t *testing.T) {
		// Given: X threatens to win at 2; O has no winning move
		board := entity.Board{}
		board[0] = entity.PlayerX
		board[1] = entity.PlayerX
		board[4] = entity.PlayerO

		transport := &mockTransport{respond: func(int) (string, error) {
			return "2", nil
		}}
		oracle := newTestOracle(transport, []string{"key"}, 3)

		// When: asking for O's move
		pos, err := oracle.GetMove(context.Background(), board, entity.PlayerO, entity.DifficultyMedium)

		// Then: the prompt warns about position 2
		require.NoError(t, err)
		assert.Equal(t, 2, pos)
		require.Len(t, transport.prompts, 1)
		assert.Contains(t, transport.prompts[0], "MUST play 2 to block")
	})
}

func TestParseMove(t *testing.T) {
	t.Run("Extracts the first digit", func(t *testing.T) {
		pos, err := parseMove("position 8 is best, not 4")

		require.NoError(t, err)
		assert.Equal(t, 8, pos)
	})

	t.Run("Fails without a digit", func(t *testing.T) {
		_, err := parseMove("center")

		assert.ErrorIs(t, err, apperror.ErrParse)
	})
}
