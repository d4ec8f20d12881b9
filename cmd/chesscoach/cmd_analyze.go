package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"chesscoach/internal/analysis"
	"chesscoach/internal/coach"
	"chesscoach/internal/engine"
	"chesscoach/internal/game"
	"chesscoach/internal/store"
)

var (
	analyzeDepth int
	analyzeNoLLM bool
	analyzeForce bool
	analyzeFile  string
)

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if analyzeDepth > 0 {
		cfg.Engine.AnalysisDepth = analyzeDepth
	}

	ctx, cancel := signalContext()
	defer cancel()

	st, err := store.Open(cfg.DatabasePath(dataDir))
	if err != nil {
		return err
	}
	defer st.Close()

	var rec game.Record
	fromStore := analyzeFile == ""
	if fromStore {
		rec, err = resolveGame(st, args)
	} else {
		rec, err = game.LoadJSON(analyzeFile)
	}
	if err != nil {
		return err
	}
	if len(rec.Moves) == 0 {
		return fmt.Errorf("game %s has no moves to analyze", rec.ID)
	}

	coachCfg := cfg.Coach
	if analyzeNoLLM {
		coachCfg.Provider = "none"
	}
	client, err := coach.NewClient(coachCfg)
	if err != nil {
		return err
	}
	ch := coach.New(client, coachCfg.PlayerElo)

	// A stored report answers without an engine pass unless the caller
	// forces a re-run or asks for a different depth
	if fromStore && !analyzeForce && analyzeDepth == 0 {
		if report, err := st.LoadReport(rec.ID); err == nil {
			logger.Info("Using stored report", zap.String("id", rec.ID), zap.Int("depth", report.Depth))
			printReport(ctx, rec, report, ch)
			return nil
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
	}

	logger.Info("Analyzing game",
		zap.String("id", rec.ID),
		zap.Int("moves", len(rec.Moves)),
		zap.Int("depth", cfg.Engine.AnalysisDepth))

	eng := engine.New(cfg.Engine)
	if err := eng.Start(ctx); err != nil {
		return err
	}
	defer eng.Close()

	analyzer := analysis.New(eng, cfg.Engine.AnalysisDepth)
	report, err := analyzer.Analyze(ctx, rec.Moves, rec.PlayerColor, func(done, total int) {
		fmt.Fprintf(os.Stderr, "\ranalyzing %d/%d", done, total)
	})
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}

	if fromStore {
		if err := st.SaveReport(rec.ID, report); err != nil {
			logger.Warn("Failed to save report", zap.Error(err))
		}
	}

	printReport(ctx, rec, report, ch)
	return nil
}

// resolveGame loads the named game or, with no argument, the most
// recent one.
func resolveGame(st *store.Store, args []string) (game.Record, error) {
	if len(args) == 1 {
		return st.LoadGame(args[0])
	}

	games, err := st.ListGames(1)
	if err != nil {
		return game.Record{}, err
	}
	if len(games) == 0 {
		return game.Record{}, fmt.Errorf("no archived games; play one first")
	}
	return st.LoadGame(games[0].ID)
}

func printReport(ctx context.Context, rec game.Record, report *analysis.Report, ch *coach.Coach) {
	fmt.Printf("Game %s\n", rec.ID)
	fmt.Printf("%s, playing %s\n\n", rec.Result, rec.PlayerColor)
	fmt.Printf("Accuracy: %.1f%%\n", report.Accuracy)
	fmt.Printf("Best: %d  Good: %d  Inaccuracies: %d  Mistakes: %d  Blunders: %d\n\n",
		report.BestCount, report.GoodCount, report.Inaccuracies, report.Mistakes, report.Blunders)

	moments := report.CriticalMoments(3)
	if len(moments) > 0 {
		fmt.Println("Critical moments:")
		for _, e := range ch.ExplainCriticalMoments(ctx, moments) {
			m := e.Moment
			fmt.Printf("\n  Move %d (%s): %s  [%s, -%dcp]\n", m.MoveNumber, m.Color, m.SAN, m.Classification, m.Loss)
			fmt.Printf("  %s\n", e.Text)
		}
		fmt.Println()
	}

	fmt.Println("Summary:")
	fmt.Println(ch.Summarize(ctx, report, rec.Result))
}

// signalContext returns a context cancelled by SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()
	return ctx, cancel
}
