package coach

import (
	"fmt"
	"strings"

	"chesscoach/internal/analysis"
	"chesscoach/internal/engine"
)

// BuildMovePrompt renders the facts of one graded move for the LLM.
func BuildMovePrompt(eval analysis.MoveEvaluation, playerElo int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "A player rated around %d played %s (move %d, %s) in the %s.\n",
		playerElo, eval.SAN, eval.MoveNumber, eval.Color, eval.Phase)
	fmt.Fprintf(&b, "The move was classified as a %s.\n", eval.Classification)
	if eval.BestMoveSAN != "" && eval.BestMoveSAN != eval.SAN {
		fmt.Fprintf(&b, "The engine preferred %s.\n", eval.BestMoveSAN)
	}
	fmt.Fprintf(&b, "Evaluation went from %s to %s (a loss of %d centipawns for the player).\n",
		formatEval(eval.EvalBefore), formatEval(eval.EvalAfter), eval.Loss)
	b.WriteString("Explain in 2-3 sentences what the played move missed and what idea the better move pursues.")

	return b.String()
}

// BuildSummaryPrompt renders the whole-game picture for the LLM.
func BuildSummaryPrompt(report *analysis.Report, outcome string, playerElo int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "A player rated around %d just finished a game as %s. Result: %s.\n",
		playerElo, report.PlayerColor, outcome)
	fmt.Fprintf(&b, "Accuracy: %.1f%% over %d moves.\n", report.Accuracy, len(report.PlayerMoves()))
	fmt.Fprintf(&b, "Move quality: %d best, %d good, %d inaccuracies, %d mistakes, %d blunders.\n",
		report.BestCount, report.GoodCount, report.Inaccuracies, report.Mistakes, report.Blunders)

	moments := report.CriticalMoments(3)
	if len(moments) > 0 {
		b.WriteString("Key moments:\n")
		for _, m := range moments {
			fmt.Fprintf(&b, "- move %d (%s): played %s, engine preferred %s, lost %d centipawns\n",
				m.MoveNumber, m.Phase, m.SAN, m.BestMoveSAN, m.Loss)
		}
	}
	b.WriteString("Write a short game summary for the player: what went well, the main lesson, and one thing to practice.")

	return b.String()
}

// formatEval renders a white-perspective centipawn score, showing mate
// sentinels as "mate".
func formatEval(cp int) string {
	switch {
	case cp >= engine.MateScore:
		return "mate for White"
	case cp <= -engine.MateScore:
		return "mate for Black"
	default:
		return fmt.Sprintf("%+.2f", float64(cp)/100)
	}
}
