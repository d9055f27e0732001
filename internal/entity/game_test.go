package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGame(t *testing.T) {
	t.Run("Starts empty with the human to move", func(t *testing.T) {
		// Given/When: a new game
		game := NewGame("game-1", "owner-1", DifficultyHard)

		// Then: empty board, in progress, X first, no winner
		assert.Equal(t, Board{}, game.Board)
		assert.Equal(t, StatusInProgress, game.Status)
		assert.Equal(t, PlayerX, game.CurrentPlayer)
		assert.Equal(t, CellEmpty, game.Winner)
		assert.True(t, game.IsInProgress())
		assert.False(t, game.IsFinished())
		assert.False(t, game.IsDraw())
	})
}

func TestOpponent(t *testing.T) {
	assert.Equal(t, PlayerO, Opponent(PlayerX))
	assert.Equal(t, PlayerX, Opponent(PlayerO))
}

func TestIsValidDifficulty(t *testing.T) {
	assert.True(t, IsValidDifficulty(DifficultyEasy))
	assert.True(t, IsValidDifficulty(DifficultyMedium))
	assert.True(t, IsValidDifficulty(DifficultyHard))
	assert.False(t, IsValidDifficulty("nightmare"))
	assert.False(t, IsValidDifficulty(""))
}
