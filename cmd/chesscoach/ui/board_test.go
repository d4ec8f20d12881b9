package ui

import (
	"strings"
	"testing"

	"github.com/notnil/chess"
)

func TestRenderBoardStartPosition(t *testing.T) {
	out := RenderBoard(chess.StartingPosition(), DefaultBoardOptions())

	lines := strings.Split(out, "\n")
	if len(lines) != 9 {
		t.Fatalf("expected 8 rank lines plus file labels, got %d lines", len(lines))
	}
	if !strings.Contains(lines[0], "8") {
		t.Errorf("top line should carry rank 8 label: %q", lines[0])
	}
	if !strings.Contains(lines[7], "1") {
		t.Errorf("bottom rank line should carry rank 1 label: %q", lines[7])
	}

	for _, glyph := range []string{"♚", "♛", "♜", "♝", "♞", "♟"} {
		if !strings.Contains(out, glyph) {
			t.Errorf("board missing piece glyph %s", glyph)
		}
	}

	// Black's back rank renders before White's.
	kingLines := []int{}
	for i, line := range lines {
		if strings.Contains(line, "♚") {
			kingLines = append(kingLines, i)
		}
	}
	if len(kingLines) != 2 {
		t.Fatalf("expected two king lines, got %v", kingLines)
	}
	if kingLines[0] != 0 || kingLines[1] != 7 {
		t.Errorf("kings on lines %v, want 0 and 7", kingLines)
	}
}

func TestRenderBoardFlipped(t *testing.T) {
	opts := DefaultBoardOptions()
	opts.Flipped = true
	out := RenderBoard(chess.StartingPosition(), opts)

	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[0], "1") {
		t.Errorf("flipped top line should carry rank 1 label: %q", lines[0])
	}
	if !strings.Contains(lines[7], "8") {
		t.Errorf("flipped bottom rank line should carry rank 8 label: %q", lines[7])
	}
}

func TestRenderBoardTargetDots(t *testing.T) {
	opts := DefaultBoardOptions()
	opts.Selected = chess.E2
	opts.Targets = []chess.Square{chess.E3, chess.E4}
	out := RenderBoard(chess.StartingPosition(), opts)

	if !strings.Contains(out, "·") {
		t.Error("empty target squares should render a dot marker")
	}
}

func TestSquareAt(t *testing.T) {
	cases := []struct {
		row, col int
		flipped  bool
		want     chess.Square
	}{
		{0, 0, false, chess.A8},
		{7, 7, false, chess.H1},
		{7, 4, false, chess.E1},
		{0, 0, true, chess.H1},
		{7, 7, true, chess.A8},
	}
	for _, tc := range cases {
		if got := SquareAt(tc.row, tc.col, tc.flipped); got != tc.want {
			t.Errorf("SquareAt(%d, %d, %v) = %s, want %s", tc.row, tc.col, tc.flipped, got, tc.want)
		}
	}
}

func TestKingSquare(t *testing.T) {
	pos := chess.StartingPosition()
	if got := KingSquare(pos, chess.White); got != chess.E1 {
		t.Errorf("white king at %s, want e1", got)
	}
	if got := KingSquare(pos, chess.Black); got != chess.E8 {
		t.Errorf("black king at %s, want e8", got)
	}
}
