package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// evalBarClamp caps the displayed advantage so the bar stays readable
// in decided positions.
const evalBarClamp = 500

// WhiteShare converts a white-perspective centipawn score into the
// fraction of the bar that shows as white, clamped to [0, 1].
func WhiteShare(cp int) float64 {
	if cp > evalBarClamp {
		cp = evalBarClamp
	} else if cp < -evalBarClamp {
		cp = -evalBarClamp
	}
	return 0.5 + float64(cp)/1000
}

// EvalLabel formats a centipawn score as pawns, e.g. "+0.35".
func EvalLabel(cp int) string {
	return fmt.Sprintf("%+.2f", float64(cp)/100)
}

// RenderEvalBar draws a vertical advantage gauge of the given height.
// White's share fills from the bottom.
func RenderEvalBar(cp, height int) string {
	if height < 1 {
		height = 1
	}
	whiteCells := int(math.Round(WhiteShare(cp) * float64(height)))
	if whiteCells > height {
		whiteCells = height
	}

	white := lipgloss.NewStyle().Foreground(PieceWhite)
	black := lipgloss.NewStyle().Foreground(lipgloss.Color("#3a3a3a"))

	var b strings.Builder
	for i := 0; i < height; i++ {
		if i < height-whiteCells {
			b.WriteString(black.Render("█"))
		} else {
			b.WriteString(white.Render("█"))
		}
		if i < height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
