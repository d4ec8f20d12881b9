package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/notnil/chess"
)

// pieceGlyphs maps piece types to the filled chess glyphs. Both sides
// use the filled set; side is conveyed by foreground color.
var pieceGlyphs = map[chess.PieceType]string{
	chess.King:   "♚",
	chess.Queen:  "♛",
	chess.Rook:   "♜",
	chess.Bishop: "♝",
	chess.Knight: "♞",
	chess.Pawn:   "♟",
}

// BoardOptions controls highlighting and orientation of a rendered
// board.
type BoardOptions struct {
	// Flipped renders the board from Black's point of view.
	Flipped bool

	// Selected is the square the player has picked up a piece from.
	Selected chess.Square

	// Targets are the legal destinations of the selected piece.
	Targets []chess.Square

	// LastFrom/LastTo highlight the most recent move.
	LastFrom chess.Square
	LastTo   chess.Square

	// Check highlights a king in check.
	Check chess.Square
}

// DefaultBoardOptions returns options with no highlights.
func DefaultBoardOptions() BoardOptions {
	return BoardOptions{
		Selected: chess.NoSquare,
		LastFrom: chess.NoSquare,
		LastTo:   chess.NoSquare,
		Check:    chess.NoSquare,
	}
}

// RenderBoard draws the position as a colored 8x8 grid with rank and
// file coordinates.
func RenderBoard(pos *chess.Position, opts BoardOptions) string {
	board := pos.Board()
	coord := lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7a89"))

	var b strings.Builder
	for row := 0; row < 8; row++ {
		rank := 7 - row
		if opts.Flipped {
			rank = row
		}
		b.WriteString(coord.Render(string(rune('1'+rank)) + " "))

		for col := 0; col < 8; col++ {
			file := col
			if opts.Flipped {
				file = 7 - col
			}
			sq := chess.Square(rank*8 + file)
			b.WriteString(renderSquare(board.Piece(sq), sq, opts))
		}
		b.WriteString("\n")
	}

	b.WriteString("  ")
	for col := 0; col < 8; col++ {
		file := col
		if opts.Flipped {
			file = 7 - col
		}
		b.WriteString(coord.Render(" " + string(rune('a'+file)) + " "))
	}
	return b.String()
}

// renderSquare draws one 3-cell square with its highlight and piece.
func renderSquare(piece chess.Piece, sq chess.Square, opts BoardOptions) string {
	style := lipgloss.NewStyle().Background(squareBg(sq, opts))

	content := " · "
	if piece != chess.NoPiece {
		content = " " + pieceGlyphs[piece.Type()] + " "
		if piece.Color() == chess.White {
			style = style.Foreground(PieceWhite)
		} else {
			style = style.Foreground(PieceBlack)
		}
	} else if !containsSquare(opts.Targets, sq) {
		content = "   "
	}
	return style.Render(content)
}

// squareBg picks the background color by highlight priority: check,
// selection, legal target, last move, then the plain square color.
func squareBg(sq chess.Square, opts BoardOptions) lipgloss.Color {
	switch {
	case sq == opts.Check:
		return CheckBg
	case sq == opts.Selected:
		return SelectedBg
	case containsSquare(opts.Targets, sq):
		return TargetBg
	case sq == opts.LastFrom || sq == opts.LastTo:
		return LastMoveBg
	case isLightSquare(sq):
		return LightSquare
	default:
		return DarkSquare
	}
}

func isLightSquare(sq chess.Square) bool {
	return (int(sq.File())+int(sq.Rank()))%2 == 1
}

func containsSquare(squares []chess.Square, sq chess.Square) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}

// KingSquare locates the king of the given color, NoSquare if absent.
func KingSquare(pos *chess.Position, color chess.Color) chess.Square {
	for sq, piece := range pos.Board().SquareMap() {
		if piece.Type() == chess.King && piece.Color() == color {
			return sq
		}
	}
	return chess.NoSquare
}

// SquareAt maps a display row/column back to a board square, honoring
// orientation. Used for cursor movement over the rendered board.
func SquareAt(row, col int, flipped bool) chess.Square {
	rank := 7 - row
	file := col
	if flipped {
		rank = row
		file = 7 - col
	}
	return chess.Square(rank*8 + file)
}
