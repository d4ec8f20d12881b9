package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"chesscoach/internal/analysis"
	"chesscoach/internal/config"
	"chesscoach/internal/game"
	"chesscoach/internal/store"
)

// setupArchive points the command globals at a temp data directory and
// seeds the archive with one game.
func setupArchive(t *testing.T) game.Record {
	t.Helper()

	dataDir = t.TempDir()
	logger = zap.NewNop()
	t.Cleanup(func() {
		dataDir = ""
		logger = nil
	})

	rec := game.Record{
		ID:          "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee",
		PlayerColor: "white",
		Outcome:     "1-0",
		Result:      "White wins by resignation",
		StartedAt:   time.Now().UTC().Truncate(time.Second),
		FinishedAt:  time.Now().UTC().Truncate(time.Second),
		SkillLevel:  5,
		Moves: []game.MoveRecord{
			{
				Ply: 1, MoveNumber: 1, Color: "white", SAN: "e4", UCI: "e2e4",
				FENBefore: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
				FENAfter:  "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
				Timestamp: time.Now().UTC().Truncate(time.Second),
			},
		},
		PGN: "1. e4 1-0\n",
	}

	cfg := config.DefaultConfig()
	st, err := store.Open(cfg.DatabasePath(dataDir))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	if err := st.SaveGame(rec); err != nil {
		t.Fatal(err)
	}
	return rec
}

func TestGamesDelete(t *testing.T) {
	rec := setupArchive(t)

	if err := runGamesDelete(gamesDeleteCmd, []string{rec.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}

	cfg := config.DefaultConfig()
	st, err := store.Open(cfg.DatabasePath(dataDir))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	n, err := st.CountGames()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("archive still holds %d games", n)
	}
}

func TestGamesDeleteMissing(t *testing.T) {
	setupArchive(t)

	if err := runGamesDelete(gamesDeleteCmd, []string{"no-such-id"}); err == nil {
		t.Error("deleting an unknown game should error")
	}
}

// With a stored report, analyze answers from the archive without
// starting an engine.
func TestAnalyzeReusesStoredReport(t *testing.T) {
	rec := setupArchive(t)

	report := &analysis.Report{
		PlayerColor: "white",
		Depth:       12,
		Moves: []analysis.MoveEvaluation{
			{
				Ply: 1, MoveNumber: 1, Color: "white", SAN: "e4", UCI: "e2e4",
				EvalBefore: 20, EvalAfter: 30, Delta: 10,
				Classification: analysis.Best, Phase: game.Opening,
			},
		},
		Accuracy:  100,
		BestCount: 1,
	}

	cfg := config.DefaultConfig()
	st, err := store.Open(cfg.DatabasePath(dataDir))
	if err != nil {
		t.Fatal(err)
	}
	if err := st.SaveReport(rec.ID, report); err != nil {
		t.Fatal(err)
	}
	st.Close()

	analyzeNoLLM = true
	t.Cleanup(func() { analyzeNoLLM = false })

	// Rule out an accidental engine dependency
	t.Setenv("PATH", "")
	t.Setenv("CHESSCOACH_ENGINE_PATH", "")

	if err := runAnalyze(analyzeCmd, []string{rec.ID}); err != nil {
		t.Fatalf("analyze with stored report: %v", err)
	}
}

func TestExportJSONRoundTrip(t *testing.T) {
	rec := setupArchive(t)

	out := filepath.Join(t.TempDir(), "game.json")
	exportJSON = true
	exportOut = out
	t.Cleanup(func() {
		exportJSON = false
		exportOut = ""
	})

	if err := runExport(exportCmd, []string{rec.ID}); err != nil {
		t.Fatalf("export: %v", err)
	}

	loaded, err := game.LoadJSON(out)
	if err != nil {
		t.Fatalf("load exported file: %v", err)
	}
	if loaded.ID != rec.ID {
		t.Errorf("round trip ID = %s, want %s", loaded.ID, rec.ID)
	}
	if len(loaded.Moves) != 1 || loaded.Moves[0].UCI != "e2e4" {
		t.Errorf("round trip moves = %+v", loaded.Moves)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("exported file missing: %v", err)
	}
}
