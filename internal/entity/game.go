package entity

import "time"

const (
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
	StatusDraw       = "draw"

	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Cell is one square of the board: empty, or marked by one of the players.
type Cell string

const (
	CellEmpty Cell = ""

	PlayerX Cell = "X"
	PlayerO Cell = "O"
)

// Board holds the 9 cells in row-major order:
// rows are [0 1 2], [3 4 5], [6 7 8].
type Board [9]Cell

type Game struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"owner_id"`
	Board         Board     `json:"board"`
	Status        string    `json:"status"`
	CurrentPlayer Cell      `json:"current_player"`
	Winner        Cell      `json:"winner,omitempty"`
	Difficulty    string    `json:"difficulty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewGame - creates a fresh game: empty board, human (X) to move.
func NewGame(id, ownerID, difficulty string) *Game {
	now := time.Now().UTC()

	return &Game{
		ID:            id,
		OwnerID:       ownerID,
		Board:         Board{},
		Status:        StatusInProgress,
		CurrentPlayer: PlayerX,
		Difficulty:    difficulty,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (that *Game) IsInProgress() bool {
	return that.Status == StatusInProgress
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsDraw() bool {
	return that.Status == StatusDraw
}

// Opponent - returns the opposing mark.
func Opponent(mark Cell) Cell {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func IsValidDifficulty(difficulty string) bool {
	switch difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}
