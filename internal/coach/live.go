package coach

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"

	"chesscoach/internal/game"
)

// LiveCoach produces instant rule-based tips during play. No LLM is
// involved so tips never slow the game down.
type LiveCoach struct{}

var pieceValues = map[chess.PieceType]int{
	chess.Pawn:   1,
	chess.Knight: 3,
	chess.Bishop: 3,
	chess.Rook:   5,
	chess.Queen:  9,
}

// Tip returns a short hint for the player to move. moves is the history
// so far; pos the current position.
func (LiveCoach) Tip(pos *chess.Position, moves []game.MoveRecord, playerColor chess.Color) string {
	// A check outranks everything else
	if len(moves) > 0 && strings.HasSuffix(moves[len(moves)-1].SAN, "+") {
		return "You are in check. Look at every way to deal with it: capture the checker, block, or move the king."
	}

	balance := materialBalance(pos, playerColor)
	if balance <= -3 {
		return fmt.Sprintf("You are down about %d points of material. Look for tactics and keep pieces on the board.", -balance)
	}

	switch game.PhaseOf(pos) {
	case game.Opening:
		return "Develop your knights and bishops toward the center, and castle early."
	case game.Endgame:
		if balance >= 3 {
			return "You are ahead. Trade pieces, activate your king, and push your passed pawns."
		}
		return "In the endgame the king is a fighting piece. Bring it toward the action."
	default:
		if balance >= 3 {
			return fmt.Sprintf("You are up about %d points of material. Simplify by trading pieces, not pawns.", balance)
		}
		return "Before you move, check your opponent's checks, captures, and threats."
	}
}

// materialBalance is the player's material minus the opponent's, in
// pawn units.
func materialBalance(pos *chess.Position, playerColor chess.Color) int {
	balance := 0
	for _, p := range pos.Board().SquareMap() {
		v := pieceValues[p.Type()]
		if p.Color() == playerColor {
			balance += v
		} else {
			balance -= v
		}
	}
	return balance
}
