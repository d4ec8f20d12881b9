package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"chesscoach/internal/game"
)

// RenderMoveList formats the move history as numbered SAN pairs,
// showing at most maxRows full moves (the most recent ones) with the
// latest half-move emphasized.
func RenderMoveList(moves []game.MoveRecord, maxRows int) string {
	if len(moves) == 0 {
		return ""
	}

	bold := lipgloss.NewStyle().Bold(true)

	type row struct {
		number int
		white  string
		black  string
	}
	var rows []row
	for _, m := range moves {
		if m.Color == "white" {
			rows = append(rows, row{number: m.MoveNumber, white: m.SAN})
		} else if len(rows) > 0 && rows[len(rows)-1].number == m.MoveNumber {
			rows[len(rows)-1].black = m.SAN
		} else {
			rows = append(rows, row{number: m.MoveNumber, black: m.SAN})
		}
	}

	if maxRows > 0 && len(rows) > maxRows {
		rows = rows[len(rows)-maxRows:]
	}

	last := moves[len(moves)-1]
	var b strings.Builder
	for i, r := range rows {
		white := r.white
		if white == "" {
			white = "..."
		}
		black := r.black

		if r.number == last.MoveNumber {
			if last.Color == "white" && r.white != "" {
				white = bold.Render(white)
			} else if last.Color == "black" && r.black != "" {
				black = bold.Render(black)
			}
		}

		b.WriteString(fmt.Sprintf("%d. %s", r.number, white))
		if black != "" {
			b.WriteString(" " + black)
		}
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
