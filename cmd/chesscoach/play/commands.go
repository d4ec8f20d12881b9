package play

import (
	"context"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/notnil/chess"

	"chesscoach/internal/analysis"
	"chesscoach/internal/coach"
	"chesscoach/internal/config"
	"chesscoach/internal/engine"
	"chesscoach/internal/game"
)

// Messages delivered to Update by background work.
type (
	engineMovedMsg struct {
		move *chess.Move
		err  error
	}

	evalMsg struct {
		cp  int
		err error
	}

	analysisProgressMsg struct {
		done  int
		total int
	}

	analysisDoneMsg struct {
		report *analysis.Report
		err    error
	}

	coachReportMsg struct {
		moments []coach.MomentExplanation
		summary string
	}

	configReloadedMsg struct {
		cfg *config.Config
	}
)

// Humanizing delay bounds before the engine's reply appears. The search
// itself is near-instant at play move times.
const (
	engineDelayMin = 2000 * time.Millisecond
	engineDelayJit = 500 * time.Millisecond
)

// engineMoveCmd searches the position and returns the engine's choice
// after a short humanizing delay. The move is applied in Update, not
// here, so the session stays single-threaded.
func engineMoveCmd(eng *engine.Engine, pos *chess.Position) tea.Cmd {
	return func() tea.Msg {
		delay := engineDelayMin + time.Duration(rand.Int63n(int64(engineDelayJit)))
		start := time.Now()
		move, err := eng.BestMove(context.Background(), pos)
		if remaining := delay - time.Since(start); remaining > 0 {
			time.Sleep(remaining)
		}
		return engineMovedMsg{move: move, err: err}
	}
}

// evalBarDepth keeps background evaluations fast enough to not delay
// the next engine reply.
const evalBarDepth = 10

// evalCmd evaluates the position for the eval bar.
func evalCmd(eng *engine.Engine, pos *chess.Position) tea.Cmd {
	return func() tea.Msg {
		score, err := eng.Evaluate(context.Background(), pos, evalBarDepth)
		return evalMsg{cp: score.CP, err: err}
	}
}

// analyzeCmd runs the post-game analysis, feeding progress and the
// final result through ch. Everything arrives via waitForProgress so
// exactly one relay is in flight at a time and none is left blocked
// after the run.
func analyzeCmd(eval analysis.Evaluator, depth int, moves []game.MoveRecord, playerColor string, ch chan<- tea.Msg) tea.Cmd {
	return func() tea.Msg {
		analyzer := analysis.New(eval, depth)
		report, err := analyzer.Analyze(context.Background(), moves, playerColor, func(done, total int) {
			select {
			case ch <- analysisProgressMsg{done: done, total: total}:
			default:
			}
		})
		ch <- analysisDoneMsg{report: report, err: err}
		return nil
	}
}

// waitForProgress relays the next analysis update. Re-armed on each
// progress message; the done message ends the relay chain.
func waitForProgress(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// coachReportCmd gathers the coaching commentary for a finished
// analysis. The coach degrades to rule-based text on its own, so this
// never fails.
func coachReportCmd(ch *coach.Coach, report *analysis.Report, outcome string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		moments := ch.ExplainCriticalMoments(ctx, report.CriticalMoments(3))
		summary := ch.Summarize(ctx, report, outcome)
		return coachReportMsg{moments: moments, summary: summary}
	}
}
