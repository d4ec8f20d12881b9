package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"chesscoach/cmd/chesscoach/play"
	"chesscoach/internal/config"
	"chesscoach/internal/logging"
)

var (
	// Global flags
	verbose bool
	dataDir string

	// Play flags
	playColor string
	skillFlag int

	// Logger for non-TUI commands
	logger *zap.Logger
)

// rootCmd launches the interactive game when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "chesscoach",
	Short: "chesscoach - play chess against an engine and get coached",
	Long: `chesscoach is a terminal chess trainer.

Play against Stockfish at an adjustable strength, then let the app replay
your game through the engine, grade every move, and explain your mistakes
in plain language via a local or hosted LLM (with built-in rule-based
coaching when no model is available).

Run without arguments to start a game.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if dataDir == "" {
			dataDir = config.DefaultDataDir()
		}
		if err := logging.Initialize(dataDir); err != nil {
			fmt.Fprintf(os.Stderr, "warning: logging init failed: %v\n", err)
		}

		// The TUI has its own presentation; zap is for the plain commands
		if cmd.Use == "chesscoach" && cmd.CalledAs() == "chesscoach" {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if skillFlag != 0 {
			cfg.Engine.SkillLevel = config.ClampSkill(skillFlag)
			cfg.Engine.UseElo = false
		}
		return play.Run(cfg, dataDir, playColor)
	},
}

// analyzeCmd re-analyzes an archived game.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [game-id]",
	Short: "Analyze an archived game and print the coaching report",
	Long: `Replays an archived game through the engine at analysis depth,
grades every move, and prints the report with coaching commentary.

With no argument the most recent game is analyzed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

// gamesCmd lists the archive.
var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List archived games",
	RunE:  runGames,
}

// gamesDeleteCmd removes a game and its analysis from the archive.
var gamesDeleteCmd = &cobra.Command{
	Use:   "delete <game-id>",
	Short: "Delete an archived game and its analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runGamesDelete,
}

// exportCmd prints a game's PGN.
var exportCmd = &cobra.Command{
	Use:   "export [game-id]",
	Short: "Print an archived game as PGN",
	Long: `Prints the PGN of an archived game to stdout.

With no argument the most recent game is exported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

// statusCmd checks the environment.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show engine, coach backend, and archive status",
	RunE:  runStatus,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default: ~/.chesscoach)")

	rootCmd.Flags().StringVar(&playColor, "color", "white", "Color to play (white or black)")
	rootCmd.Flags().IntVar(&skillFlag, "skill", 0, "Engine skill level 1-20 (overrides config)")

	analyzeCmd.Flags().IntVar(&analyzeDepth, "depth", 0, "Analysis depth (overrides config)")
	analyzeCmd.Flags().BoolVar(&analyzeNoLLM, "no-llm", false, "Skip the LLM, use rule-based coaching only")
	analyzeCmd.Flags().BoolVar(&analyzeForce, "force", false, "Re-run analysis even when a stored report exists")
	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "Analyze a JSON game file instead of the archive")

	gamesCmd.Flags().IntVar(&gamesLimit, "limit", 20, "Maximum games to list")
	gamesCmd.AddCommand(gamesDeleteCmd)

	exportCmd.Flags().BoolVar(&exportJSON, "json", false, "Export as JSON with full move records instead of PGN")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Write to a file instead of stdout")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file from the data directory, writing the
// defaults on first run.
func loadConfig() (*config.Config, error) {
	path := config.Path(dataDir)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		if saveErr := cfg.Save(path); saveErr != nil {
			fmt.Fprintf(os.Stderr, "warning: could not write default config: %v\n", saveErr)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
