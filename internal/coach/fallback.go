package coach

import (
	"fmt"
	"strings"

	"chesscoach/internal/analysis"
)

// fallbackMove produces rule-based move feedback used whenever the LLM
// is unavailable or fails.
func fallbackMove(eval analysis.MoveEvaluation) string {
	better := ""
	if eval.BestMoveSAN != "" && eval.BestMoveSAN != eval.SAN {
		better = fmt.Sprintf(" The engine preferred %s here.", eval.BestMoveSAN)
	}

	switch eval.Classification {
	case analysis.Best:
		return fmt.Sprintf("%s was the best move in the position. Well played.", eval.SAN)
	case analysis.Good:
		return fmt.Sprintf("%s was a solid choice.%s", eval.SAN, better)
	case analysis.Inaccuracy:
		return fmt.Sprintf("%s was slightly imprecise and gave up %d centipawns.%s "+
			"Small slips like this add up, so look for a more active option next time.",
			eval.SAN, eval.Loss, better)
	case analysis.Mistake:
		return fmt.Sprintf("%s was a mistake costing about %d centipawns.%s "+
			"Before committing, check your opponent's forcing replies.",
			eval.SAN, eval.Loss, better)
	default:
		return fmt.Sprintf("%s was a blunder losing %d centipawns.%s "+
			"Take a moment on critical moves: scan for checks, captures, and threats first.",
			eval.SAN, eval.Loss, better)
	}
}

// fallbackSummary produces a rule-based game summary from the report's
// aggregates.
func fallbackSummary(report *analysis.Report, outcome string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s. You played at %.1f%% accuracy", outcome, report.Accuracy)
	player := len(report.PlayerMoves())
	if player > 0 {
		fmt.Fprintf(&b, " over %d moves", player)
	}
	b.WriteString(".\n")

	if report.Blunders == 0 && report.Mistakes == 0 {
		b.WriteString("A clean game with no serious errors. ")
	} else {
		fmt.Fprintf(&b, "You made %d blunder(s), %d mistake(s), and %d inaccuracy(s). ",
			report.Blunders, report.Mistakes, report.Inaccuracies)
	}

	if moments := report.CriticalMoments(1); len(moments) > 0 {
		m := moments[0]
		fmt.Fprintf(&b, "The turning point was move %d, where %s lost %d centipawns",
			m.MoveNumber, m.SAN, m.Loss)
		if m.BestMoveSAN != "" {
			fmt.Fprintf(&b, " (%s was stronger)", m.BestMoveSAN)
		}
		b.WriteString(". ")
	}

	switch {
	case report.Accuracy >= 80:
		b.WriteString("Keep up the precise play.")
	case report.Accuracy >= 60:
		b.WriteString("Focus on double-checking moves in sharp positions.")
	default:
		b.WriteString("Slow down on each move and ask what your opponent is threatening.")
	}

	return b.String()
}
