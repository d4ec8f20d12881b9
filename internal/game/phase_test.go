package game

import (
	"testing"

	"github.com/notnil/chess"
)

func TestPhaseOf(t *testing.T) {
	// Starting position: 32 pieces
	if got := PhaseOf(chess.NewGame().Position()); got != Opening {
		t.Errorf("start position = %v, want opening", got)
	}
}

func TestPhaseOfFEN(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		want Phase
	}{
		{
			"start",
			"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			Opening,
		},
		{
			// 26 pieces with both queens on
			"middlegame",
			"r1bq1rk1/pp3ppp/2n2n2/3p4/3P4/2N2N2/PP3PPP/R1BQ1RK1 w - - 0 10",
			Middlegame,
		},
		{
			// King and pawn ending
			"few pieces",
			"8/5k2/8/8/4K3/4P3/8/8 w - - 0 50",
			Endgame,
		},
		{
			// 14 pieces but the queens are gone
			"queenless",
			"r4rk1/ppp2ppp/8/8/8/8/PPP2PPP/R4RK1 w - - 0 20",
			Endgame,
		},
	}
	for _, c := range cases {
		if got := PhaseOfFEN(c.fen); got != c.want {
			t.Errorf("%s: PhaseOfFEN = %v, want %v", c.name, got, c.want)
		}
	}

	if got := PhaseOfFEN("not a fen"); got != Middlegame {
		t.Errorf("bad fen should default to middlegame, got %v", got)
	}
}
