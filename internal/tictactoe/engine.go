package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/entity"
)

// Lines are the 8 winning triples, checked in this fixed order:
// rows, then columns, then diagonals.
var Lines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Validate - reports whether placing a mark at pos is legal.
func Validate(board entity.Board, pos int) bool {
	if pos < 0 || pos >= len(board) {
		return false
	}

	return board[pos] == entity.CellEmpty
}

// Apply - returns a copy of the board with pos set to mark.
// The input board is never mutated.
func Apply(board entity.Board, pos int, mark entity.Cell) entity.Board {
	board[pos] = mark
	return board
}

// Winner - returns the mark holding a complete line, if any.
func Winner(board entity.Board) (entity.Cell, bool) {
	for _, line := range Lines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != entity.CellEmpty && a == b && b == c {
			return a, true
		}
	}

	return entity.CellEmpty, false
}

// IsFull - reports whether no empty cell remains.
func IsFull(board entity.Board) bool {
	for _, cell := range board {
		if cell == entity.CellEmpty {
			return false
		}
	}

	return true
}

// AvailablePositions - returns the empty cell indices in ascending order.
func AvailablePositions(board entity.Board) []int {
	available := make([]int, 0, len(board))
	for i, cell := range board {
		if cell == entity.CellEmpty {
			available = append(available, i)
		}
	}

	return available
}
