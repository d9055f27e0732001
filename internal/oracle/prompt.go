package oracle

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai-backend/internal/tictactoe"
)

// Difficulty only changes the wording sent to the model, never the logic.
var difficultyInstructions = map[string]string{
	entity.DifficultyEasy:   "Play casually. Prioritize random moves over strategy. Only block obvious wins occasionally.",
	entity.DifficultyMedium: "Play strategically. Block opponent wins and take your own winning moves when available, but don't plan ahead more than one move.",
	entity.DifficultyHard:   "Play optimally using perfect strategy. Never lose. Always think several moves ahead.",
}

// buildPrompt - renders the board and the rules of engagement for the model.
// excluded holds positions the model already proposed and that were rejected;
// each retry repeats them so the model stops suggesting them.
func buildPrompt(board entity.Board, mark entity.Cell, difficulty string, excluded []int) string {
	opponent := entity.Opponent(mark)

	available := tictactoe.AvailablePositions(board)
	availableStr := joinPositions(available)

	instruction, ok := difficultyInstructions[difficulty]
	if !ok {
		instruction = difficultyInstructions[entity.DifficultyMedium]
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "You are an expert Tic-Tac-Toe player. You are '%s'.\n\n", mark)
	fmt.Fprintf(&sb, "CURRENT BOARD:\n%s\n\n", renderBoard(board))
	fmt.Fprintf(&sb, "AVAILABLE POSITIONS: %s\n", availableStr)
	sb.WriteString("(You can ONLY choose from these empty positions)\n\n")

	sb.WriteString("POSITION REFERENCE:\n0 | 1 | 2\n---------\n3 | 4 | 5\n---------\n6 | 7 | 8\n\n")
	sb.WriteString("WINNING COMBINATIONS:\n")
	sb.WriteString("Rows: [0,1,2], [3,4,5], [6,7,8]\n")
	sb.WriteString("Columns: [0,3,6], [1,4,7], [2,5,8]\n")
	sb.WriteString("Diagonals: [0,4,8], [2,4,6]\n\n")

	sb.WriteString("STRATEGY RULES (Priority Order):\n")
	sb.WriteString("1. WIN: If you have 2 in a row, take the winning position\n")
	fmt.Fprintf(&sb, "2. BLOCK: If opponent '%s' has 2 in a row, block them\n", opponent)
	sb.WriteString("3. FORK: Create two winning threats at once\n")
	sb.WriteString("4. BLOCK FORK: Prevent opponent from creating a fork\n")
	sb.WriteString("5. CENTER: Take center (4) if available - strongest position\n")
	sb.WriteString("6. OPPOSITE CORNER: If opponent is in a corner, take opposite corner\n")
	sb.WriteString("7. EMPTY CORNER: Take any corner (0,2,6,8)\n")
	sb.WriteString("8. EMPTY SIDE: Take any side (1,3,5,7)\n\n")

	// advisory only: the model is told where it must block, the validation
	// loop does not enforce it
	if block, ok := tictactoe.WinningMove(board, opponent); ok {
		fmt.Fprintf(&sb, "WARNING: opponent '%s' wins at position %d on their next move. You MUST play %d to block.\n\n", opponent, block, block)
	}

	if len(excluded) > 0 {
		fmt.Fprintf(&sb, "You already suggested these INVALID positions: %s. Do NOT suggest them again.\n", joinPositions(excluded))
		fmt.Fprintf(&sb, "Choose ONLY from: %s\n\n", availableStr)
	}

	fmt.Fprintf(&sb, "DIFFICULTY: %s\n", difficulty)
	fmt.Fprintf(&sb, "INSTRUCTIONS: %s\n\n", instruction)

	sb.WriteString("Respond with ONLY ONE NUMBER (0-8) - no text, no explanation.\n\n")
	sb.WriteString("Your move:")

	return sb.String()
}

func renderBoard(board entity.Board) string {
	cells := make([]string, len(board))
	for i, cell := range board {
		if cell == entity.CellEmpty {
			cells[i] = " "
		} else {
			cells[i] = string(cell)
		}
	}

	return fmt.Sprintf("%s | %s | %s\n---------\n%s | %s | %s\n---------\n%s | %s | %s",
		cells[0], cells[1], cells[2],
		cells[3], cells[4], cells[5],
		cells[6], cells[7], cells[8])
}

func joinPositions(positions []int) string {
	parts := make([]string, len(positions))
	for i, pos := range positions {
		parts[i] = fmt.Sprintf("%d", pos)
	}

	return strings.Join(parts, ", ")
}
