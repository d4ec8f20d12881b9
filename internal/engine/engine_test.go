package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/notnil/chess"
	"github.com/notnil/chess/uci"

	"chesscoach/internal/config"
)

func TestWhitePOVCentipawns(t *testing.T) {
	// White to move, engine says +35 for the side to move
	s := whitePOV(&uci.Score{CP: 35}, chess.White)
	if s.CP != 35 || s.Mate != 0 {
		t.Errorf("white to move: got %+v, want CP=35", s)
	}

	// Black to move, +35 for the side to move means -35 for White
	s = whitePOV(&uci.Score{CP: 35}, chess.Black)
	if s.CP != -35 {
		t.Errorf("black to move: got CP=%d, want -35", s.CP)
	}
}

func TestWhitePOVMate(t *testing.T) {
	// White to move with mate in 3
	s := whitePOV(&uci.Score{Mate: 3}, chess.White)
	if s.CP != MateScore || s.Mate != 3 {
		t.Errorf("got %+v, want CP=%d Mate=3", s, MateScore)
	}

	// Black to move with mate in 2 is bad for White
	s = whitePOV(&uci.Score{Mate: 2}, chess.Black)
	if s.CP != -MateScore || s.Mate != -2 {
		t.Errorf("got %+v, want CP=%d Mate=-2", s, -MateScore)
	}

	// Black to move, getting mated in 1: good for White
	s = whitePOV(&uci.Score{Mate: -1}, chess.Black)
	if s.CP != MateScore || s.Mate != 1 {
		t.Errorf("got %+v, want CP=%d Mate=1", s, MateScore)
	}
}

func TestWhitePOVNilScore(t *testing.T) {
	s := whitePOV(nil, chess.White)
	if s.CP != 0 || s.Mate != 0 {
		t.Errorf("nil score should be zero, got %+v", s)
	}
}

func TestSkillOptionsClamp(t *testing.T) {
	cmds := skillOptions(99)
	if len(cmds) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(cmds))
	}
	limit := cmds[0].(uci.CmdSetOption)
	if limit.Name != "UCI_LimitStrength" || limit.Value != "false" {
		t.Errorf("unexpected limit option: %+v", limit)
	}
	skill := cmds[1].(uci.CmdSetOption)
	if skill.Name != "Skill Level" || skill.Value != "20" {
		t.Errorf("skill 99 should clamp to 20, got %+v", skill)
	}
}

func TestEloOptionsClamp(t *testing.T) {
	cmds := eloOptions(500)
	limit := cmds[0].(uci.CmdSetOption)
	if limit.Name != "UCI_LimitStrength" || limit.Value != "true" {
		t.Errorf("unexpected limit option: %+v", limit)
	}
	elo := cmds[1].(uci.CmdSetOption)
	if elo.Name != "UCI_Elo" || elo.Value != "1320" {
		t.Errorf("elo 500 should clamp to 1320, got %+v", elo)
	}

	cmds = eloOptions(9000)
	elo = cmds[1].(uci.CmdSetOption)
	if elo.Value != "3190" {
		t.Errorf("elo 9000 should clamp to 3190, got %+v", elo)
	}
}

func TestSearchBeforeStart(t *testing.T) {
	e := New(config.DefaultEngineConfig())
	pos := chess.NewGame().Position()

	if _, err := e.BestMove(context.Background(), pos); !errors.Is(err, ErrNotRunning) {
		t.Errorf("BestMove before Start: got %v, want ErrNotRunning", err)
	}
	if _, err := e.Evaluate(context.Background(), pos, 0); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Evaluate before Start: got %v, want ErrNotRunning", err)
	}
	if err := e.NewGame(context.Background()); !errors.Is(err, ErrNotRunning) {
		t.Errorf("NewGame before Start: got %v, want ErrNotRunning", err)
	}
}

func TestResolveBinaryMissing(t *testing.T) {
	_, err := resolveBinary("/nonexistent/path/to/stockfish")
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error should mention the binary is missing: %v", err)
	}
}

func TestCloseBeforeStart(t *testing.T) {
	e := New(config.DefaultEngineConfig())
	if err := e.Close(); err != nil {
		t.Errorf("Close before Start should be a no-op, got %v", err)
	}
}
