package analysis

import (
	"context"
	"fmt"
	"testing"

	"github.com/notnil/chess"

	"chesscoach/internal/engine"
	"chesscoach/internal/game"
)

// seqEvaluator returns canned scores in call order. The analyzer visits
// positions in a fixed order, so a sequence is enough.
type seqEvaluator struct {
	scores []int
	calls  int
	err    error
}

func (e *seqEvaluator) Analyse(_ context.Context, pos *chess.Position, _ int) (engine.SearchResult, error) {
	if e.err != nil {
		return engine.SearchResult{}, e.err
	}
	if e.calls >= len(e.scores) {
		return engine.SearchResult{}, fmt.Errorf("unexpected engine call %d", e.calls)
	}
	score := e.scores[e.calls]
	e.calls++

	// Any legal move works as the "best" move for grading purposes
	var best *chess.Move
	if moves := pos.ValidMoves(); len(moves) > 0 {
		best = moves[0]
	}
	return engine.SearchResult{
		BestMove: best,
		Score:    engine.Score{CP: score},
		Depth:    18,
	}, nil
}

// makeRecords plays the given UCI moves from the start position and
// returns their records, matching what a live session produces.
func makeRecords(t *testing.T, uciMoves ...string) []game.MoveRecord {
	t.Helper()

	g := chess.NewGame()
	recs := make([]game.MoveRecord, 0, len(uciMoves))
	for i, u := range uciMoves {
		pos := g.Position()
		m, err := chess.UCINotation{}.Decode(pos, u)
		if err != nil {
			t.Fatalf("bad move %q: %v", u, err)
		}
		san := chess.AlgebraicNotation{}.Encode(pos, m)
		fenBefore := pos.String()
		if err := g.Move(m); err != nil {
			t.Fatalf("move %q rejected: %v", u, err)
		}
		recs = append(recs, game.MoveRecord{
			Ply:        i + 1,
			MoveNumber: (i + 2) / 2,
			Color:      game.ColorName(pos.Turn()),
			SAN:        san,
			UCI:        u,
			FENBefore:  fenBefore,
			FENAfter:   g.Position().String(),
		})
	}
	return recs
}
