package ui

import (
	"strings"
	"testing"

	"chesscoach/internal/game"
)

func rec(ply int, color, san string) game.MoveRecord {
	return game.MoveRecord{Ply: ply, MoveNumber: (ply + 1) / 2, Color: color, SAN: san}
}

func TestRenderMoveListPairs(t *testing.T) {
	moves := []game.MoveRecord{
		rec(1, "white", "e4"),
		rec(2, "black", "e5"),
		rec(3, "white", "Nf3"),
	}
	out := RenderMoveList(moves, 0)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d: %q", len(lines), out)
	}
	if !strings.Contains(lines[0], "1. e4 e5") {
		t.Errorf("first row = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2. ") || !strings.Contains(lines[1], "Nf3") {
		t.Errorf("second row = %q", lines[1])
	}
}

func TestRenderMoveListWindow(t *testing.T) {
	var moves []game.MoveRecord
	sans := []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "a6", "Ba4", "Nf6"}
	for i, san := range sans {
		color := "white"
		if i%2 == 1 {
			color = "black"
		}
		moves = append(moves, rec(i+1, color, san))
	}

	out := RenderMoveList(moves, 2)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 windowed rows, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "3. ") {
		t.Errorf("window should start at move 3: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "4. ") {
		t.Errorf("window should end at move 4: %q", lines[1])
	}
}

func TestRenderMoveListEmpty(t *testing.T) {
	if out := RenderMoveList(nil, 0); out != "" {
		t.Errorf("empty history renders %q", out)
	}
}
