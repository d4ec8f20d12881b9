package game

import "github.com/notnil/chess"

// Phase is a coarse game-phase label used in coaching prompts and live
// tips.
type Phase string

const (
	Opening    Phase = "opening"
	Middlegame Phase = "middlegame"
	Endgame    Phase = "endgame"
)

// PhaseOf infers the phase from material on the board: 28 or more pieces
// is still the opening, 12 or fewer pieces or no queens is the endgame,
// anything in between is the middlegame.
func PhaseOf(pos *chess.Position) Phase {
	pieces := 0
	queens := 0
	for _, p := range pos.Board().SquareMap() {
		pieces++
		if p.Type() == chess.Queen {
			queens++
		}
	}

	switch {
	case pieces >= 28:
		return Opening
	case pieces <= 12 || queens == 0:
		return Endgame
	default:
		return Middlegame
	}
}

// PhaseOfFEN infers the phase from a FEN string. Unparseable FENs report
// the middlegame.
func PhaseOfFEN(fen string) Phase {
	fn, err := chess.FEN(fen)
	if err != nil {
		return Middlegame
	}
	return PhaseOf(chess.NewGame(fn).Position())
}
