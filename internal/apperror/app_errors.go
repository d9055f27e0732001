package apperror

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/entity"
)

var (
	ErrInvalidMove = errors.New("invalid move")
	ErrGameOver    = errors.New("game is already finished")
	ErrNotFound    = errors.New("not found")
	ErrOracle      = errors.New("failed to acquire opponent move")
	ErrParse       = errors.New("no digit found in oracle response")

	ErrUserAlreadyExists = errors.New("user already exists")
	ErrWrongCredentials  = errors.New("wrong email or password")
)

// InvalidMoveError - the requested position is out of range or occupied.
// Detected before any mutation, so the game is left untouched.
type InvalidMoveError struct {
	Position int
	Board    entity.Board
}

func (that *InvalidMoveError) Error() string {
	return fmt.Sprintf("position %d is not available", that.Position)
}

func (that *InvalidMoveError) Unwrap() error { return ErrInvalidMove }

// GameOverError - a move was attempted on a terminal game.
type GameOverError struct {
	Status string
	Winner entity.Cell
}

func (that *GameOverError) Error() string {
	if that.Winner != entity.CellEmpty {
		return fmt.Sprintf("game is over: %s, winner %s", that.Status, that.Winner)
	}
	return fmt.Sprintf("game is over: %s", that.Status)
}

func (that *GameOverError) Unwrap() error { return ErrGameOver }

// OracleError - the oracle exhausted its attempt budget. It carries every
// invalid position the oracle proposed and the last transport error, if any.
type OracleError struct {
	Attempts         int
	InvalidPositions []int
	LastTransportErr error
}

func (that *OracleError) Error() string {
	msg := fmt.Sprintf("oracle gave no valid move after %d attempts", that.Attempts)
	if len(that.InvalidPositions) > 0 {
		msg = fmt.Sprintf("%s, invalid positions %v", msg, that.InvalidPositions)
	}
	if that.LastTransportErr != nil {
		msg = fmt.Sprintf("%s, last transport error: %v", msg, that.LastTransportErr)
	}
	return msg
}

func (that *OracleError) Unwrap() error { return ErrOracle }
