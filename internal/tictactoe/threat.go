package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/entity"
)

// WinningMove - scans the lines for one where mark already holds two cells
// and the third is empty, and returns that empty position. Lines are checked
// in the same fixed order as Winner, so the result is reproducible.
func WinningMove(board entity.Board, mark entity.Cell) (int, bool) {
	for _, line := range Lines {
		marked := 0
		empty := -1

		for _, pos := range line {
			switch board[pos] {
			case mark:
				marked++
			case entity.CellEmpty:
				empty = pos
			}
		}

		if marked == 2 && empty >= 0 {
			return empty, true
		}
	}

	return -1, false
}
