package analysis

import (
	"math"
	"sort"

	"chesscoach/internal/game"
)

// Classification buckets a move by its centipawn loss.
type Classification string

const (
	Best       Classification = "best"
	Good       Classification = "good"
	Inaccuracy Classification = "inaccuracy"
	Mistake    Classification = "mistake"
	Blunder    Classification = "blunder"
)

// Centipawn-loss thresholds for each bucket.
const (
	bestThreshold       = 10
	goodThreshold       = 50
	inaccuracyThreshold = 100
	mistakeThreshold    = 200
)

// Classify buckets a centipawn loss.
func Classify(loss int) Classification {
	switch {
	case loss < bestThreshold:
		return Best
	case loss < goodThreshold:
		return Good
	case loss < inaccuracyThreshold:
		return Inaccuracy
	case loss < mistakeThreshold:
		return Mistake
	default:
		return Blunder
	}
}

// MoveEvaluation is one graded move.
type MoveEvaluation struct {
	Ply        int    `json:"ply"`
	MoveNumber int    `json:"move_number"`
	Color      string `json:"color"`
	SAN        string `json:"san"`
	UCI        string `json:"uci"`

	// Evaluations in centipawns from White's perspective
	EvalBefore int `json:"eval_before"`
	EvalAfter  int `json:"eval_after"`

	// Engine's preferred move in the starting position
	BestMoveSAN string `json:"best_move_san"`

	// Delta is the evaluation change from the mover's perspective;
	// Loss is max(0, -Delta).
	Delta int `json:"delta"`
	Loss  int `json:"loss"`

	Classification Classification `json:"classification"`
	Phase          game.Phase     `json:"phase"`
}

// Report is the graded summary of one game for one player.
type Report struct {
	PlayerColor string           `json:"player_color"`
	Depth       int              `json:"depth"`
	Moves       []MoveEvaluation `json:"moves"`

	// Aggregates over the player's moves only
	Accuracy     float64 `json:"accuracy"`
	BestCount    int     `json:"best_count"`
	GoodCount    int     `json:"good_count"`
	Inaccuracies int     `json:"inaccuracies"`
	Mistakes     int     `json:"mistakes"`
	Blunders     int     `json:"blunders"`
}

// buildReport aggregates the player's side of the graded moves.
func buildReport(moves []MoveEvaluation, playerColor string, depth int) *Report {
	r := &Report{
		PlayerColor: playerColor,
		Depth:       depth,
		Moves:       moves,
	}

	player := 0
	for _, m := range moves {
		if m.Color != playerColor {
			continue
		}
		player++
		switch m.Classification {
		case Best:
			r.BestCount++
		case Good:
			r.GoodCount++
		case Inaccuracy:
			r.Inaccuracies++
		case Mistake:
			r.Mistakes++
		case Blunder:
			r.Blunders++
		}
	}

	if player > 0 {
		share := float64(r.BestCount+r.GoodCount) / float64(player) * 100
		r.Accuracy = math.Round(share*10) / 10
	}
	return r
}

// PlayerMoves returns the evaluations of the player's moves only.
func (r *Report) PlayerMoves() []MoveEvaluation {
	var out []MoveEvaluation
	for _, m := range r.Moves {
		if m.Color == r.PlayerColor {
			out = append(out, m)
		}
	}
	return out
}

// CriticalMoments returns the player's worst mistakes and blunders,
// largest loss first, at most n of them.
func (r *Report) CriticalMoments(n int) []MoveEvaluation {
	var moments []MoveEvaluation
	for _, m := range r.PlayerMoves() {
		if m.Classification == Mistake || m.Classification == Blunder {
			moments = append(moments, m)
		}
	}

	sort.SliceStable(moments, func(i, j int) bool {
		return moments[i].Loss > moments[j].Loss
	})

	if n >= 0 && len(moments) > n {
		moments = moments[:n]
	}
	return moments
}
