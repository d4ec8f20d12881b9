package play

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/notnil/chess"
	"go.uber.org/goleak"

	"chesscoach/internal/engine"
	"chesscoach/internal/game"
)

// fixedEvaluator answers every search with a flat score.
type fixedEvaluator struct{}

func (fixedEvaluator) Analyse(ctx context.Context, pos *chess.Position, depth int) (engine.SearchResult, error) {
	return engine.SearchResult{Score: engine.Score{CP: 10}, Depth: depth}, nil
}

// playedMoves builds move records by replaying UCI moves from the
// start position.
func playedMoves(t *testing.T, ucis ...string) []game.MoveRecord {
	t.Helper()
	g := chess.NewGame()
	var recs []game.MoveRecord
	for i, u := range ucis {
		pos := g.Position()
		mv, err := (chess.UCINotation{}).Decode(pos, u)
		if err != nil {
			t.Fatalf("decode %s: %v", u, err)
		}
		san := chess.AlgebraicNotation{}.Encode(pos, mv)
		fenBefore := pos.String()
		if err := g.Move(mv); err != nil {
			t.Fatalf("move %s: %v", u, err)
		}
		recs = append(recs, game.MoveRecord{
			Ply:        i + 1,
			MoveNumber: i/2 + 1,
			Color:      game.ColorName(pos.Turn()),
			SAN:        san,
			UCI:        u,
			FENBefore:  fenBefore,
			FENAfter:   g.Position().String(),
		})
	}
	return recs
}

// The relay chain must terminate with the done message; a relay left
// blocked on the channel after the run is a goroutine leak.
func TestAnalysisRelayTerminates(t *testing.T) {
	// go.opencensus.io starts a background worker in package init
	// (pulled in transitively); it is not created by the relay.
	defer goleak.VerifyNone(t,
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))

	ch := make(chan tea.Msg, 8)
	moves := playedMoves(t, "e2e4", "e7e5")
	cmd := analyzeCmd(fixedEvaluator{}, 2, moves, "white", ch)

	cmdDone := make(chan tea.Msg, 1)
	go func() { cmdDone <- cmd() }()

	// Drain the way Update does: re-arm on progress, stop on done
	var done analysisDoneMsg
	sawProgress := false
	for {
		msg := waitForProgress(ch)()
		if p, ok := msg.(analysisProgressMsg); ok {
			sawProgress = true
			if p.total != len(moves)+1 {
				t.Errorf("progress total = %d, want %d", p.total, len(moves)+1)
			}
			continue
		}
		done = msg.(analysisDoneMsg)
		break
	}

	if msg := <-cmdDone; msg != nil {
		t.Errorf("analyzeCmd returned %v, want nil; results flow through the channel", msg)
	}
	if done.err != nil {
		t.Fatalf("analysis error: %v", done.err)
	}
	if !sawProgress {
		t.Error("no progress messages relayed")
	}
	if got := len(done.report.Moves); got != len(moves) {
		t.Errorf("report has %d moves, want %d", got, len(moves))
	}
}
