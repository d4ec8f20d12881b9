// Package analysis replays a finished game through the engine and grades
// every move by centipawn loss.
package analysis

import (
	"context"
	"fmt"

	"github.com/notnil/chess"

	"chesscoach/internal/engine"
	"chesscoach/internal/game"
	"chesscoach/internal/logging"
)

// Evaluator is the slice of the engine the analyzer needs: one
// fixed-depth search returning score and best move.
type Evaluator interface {
	Analyse(ctx context.Context, pos *chess.Position, depth int) (engine.SearchResult, error)
}

// Progress reports analysis progress to the UI as plies complete.
type Progress func(done, total int)

// Analyzer grades games move by move.
type Analyzer struct {
	eval  Evaluator
	depth int
}

// New creates an analyzer searching each position to the given depth.
func New(eval Evaluator, depth int) *Analyzer {
	return &Analyzer{eval: eval, depth: depth}
}

// Analyze replays the move list and builds a graded report for the side
// named by playerColor ("white" or "black"). progress may be nil.
//
// Each position is searched once: the search of a move's starting
// position yields both its pre-move evaluation and the engine's
// preferred move, and doubles as the previous move's post-move
// evaluation.
func (a *Analyzer) Analyze(ctx context.Context, moves []game.MoveRecord, playerColor string, progress Progress) (*Report, error) {
	if len(moves) == 0 {
		return nil, fmt.Errorf("no moves to analyze")
	}

	total := len(moves) + 1
	timer := logging.StartTimer(logging.CategoryAnalysis, fmt.Sprintf("analyze %d plies", len(moves)))
	defer timer.StopWithInfo()

	scores := make([]int, len(moves)+1)
	bestSAN := make([]string, len(moves))

	for i, rec := range moves {
		pos, err := positionFromFEN(rec.FENBefore)
		if err != nil {
			return nil, fmt.Errorf("ply %d: %w", rec.Ply, err)
		}

		res, err := a.eval.Analyse(ctx, pos, a.depth)
		if err != nil {
			return nil, fmt.Errorf("ply %d: %w", rec.Ply, err)
		}
		scores[i] = res.Score.CP
		if res.BestMove != nil {
			bestSAN[i] = chess.AlgebraicNotation{}.Encode(pos, res.BestMove)
		}

		if progress != nil {
			progress(i+1, total)
		}
	}

	// Final position: terminal positions are graded without the engine,
	// which cannot search them.
	lastFEN := moves[len(moves)-1].FENAfter
	finalScore, terminal, err := terminalScore(lastFEN)
	if err != nil {
		return nil, fmt.Errorf("final position: %w", err)
	}
	if !terminal {
		pos, err := positionFromFEN(lastFEN)
		if err != nil {
			return nil, fmt.Errorf("final position: %w", err)
		}
		res, err := a.eval.Analyse(ctx, pos, a.depth)
		if err != nil {
			return nil, fmt.Errorf("final position: %w", err)
		}
		finalScore = res.Score.CP
	}
	scores[len(moves)] = finalScore
	if progress != nil {
		progress(total, total)
	}

	evals := make([]MoveEvaluation, len(moves))
	for i, rec := range moves {
		evals[i] = gradeMove(rec, scores[i], scores[i+1], bestSAN[i])
	}

	report := buildReport(evals, playerColor, a.depth)
	logging.Analysis("report: accuracy=%.1f blunders=%d mistakes=%d inaccuracies=%d",
		report.Accuracy, report.Blunders, report.Mistakes, report.Inaccuracies)
	return report, nil
}

// gradeMove computes the mover-perspective delta and classification for
// one move.
func gradeMove(rec game.MoveRecord, before, after int, bestSAN string) MoveEvaluation {
	delta := after - before
	if rec.Color == "black" {
		delta = before - after
	}

	loss := 0
	if delta < 0 {
		loss = -delta
	}

	return MoveEvaluation{
		Ply:            rec.Ply,
		MoveNumber:     rec.MoveNumber,
		Color:          rec.Color,
		SAN:            rec.SAN,
		UCI:            rec.UCI,
		EvalBefore:     before,
		EvalAfter:      after,
		BestMoveSAN:    bestSAN,
		Delta:          delta,
		Loss:           loss,
		Classification: Classify(loss),
		Phase:          game.PhaseOfFEN(rec.FENBefore),
	}
}

// positionFromFEN parses a FEN into a position.
func positionFromFEN(fen string) (*chess.Position, error) {
	fn, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("bad fen %q: %w", fen, err)
	}
	return chess.NewGame(fn).Position(), nil
}

// terminalScore grades positions with no legal moves: checkmate is the
// mate sentinel against the side to move, stalemate is dead equal.
func terminalScore(fen string) (score int, terminal bool, err error) {
	pos, err := positionFromFEN(fen)
	if err != nil {
		return 0, false, err
	}

	switch pos.Status() {
	case chess.Checkmate:
		if pos.Turn() == chess.White {
			return -engine.MateScore, true, nil
		}
		return engine.MateScore, true, nil
	case chess.Stalemate:
		return 0, true, nil
	default:
		return 0, false, nil
	}
}
