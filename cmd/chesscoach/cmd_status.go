package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"chesscoach/internal/config"
	"chesscoach/internal/engine"
	"chesscoach/internal/store"
)

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("Data directory: %s\n", dataDir)
	fmt.Printf("Config:         %s\n\n", config.Path(dataDir))

	// Engine
	ctx, cancel := signalContext()
	defer cancel()

	eng := engine.New(cfg.Engine)
	if err := eng.Start(ctx); err != nil {
		fmt.Printf("Engine:  UNAVAILABLE (%v)\n", err)
	} else {
		fmt.Printf("Engine:  %s\n", eng.Name())
		if cfg.Engine.UseElo {
			fmt.Printf("         elo limit %d\n", config.ClampElo(cfg.Engine.Elo))
		} else {
			fmt.Printf("         skill %d (%s)\n",
				config.ClampSkill(cfg.Engine.SkillLevel), config.SkillLabel(cfg.Engine.SkillLevel))
		}
		eng.Close()
	}

	// Coach backend
	fmt.Printf("Coach:   %s", cfg.Coach.Provider)
	switch cfg.Coach.Provider {
	case "ollama":
		client := &http.Client{Timeout: 3 * time.Second}
		if resp, err := client.Get(cfg.Coach.OllamaHost + "/api/tags"); err != nil {
			fmt.Printf(" (unreachable at %s, rule-based fallback will be used)", cfg.Coach.OllamaHost)
		} else {
			resp.Body.Close()
			fmt.Printf(" (reachable, model %s)", cfg.Coach.Model)
		}
	case "openai", "gemini":
		if cfg.Coach.APIKey == "" {
			fmt.Print(" (no API key, rule-based fallback will be used)")
		} else {
			fmt.Printf(" (model %s)", cfg.Coach.Model)
		}
	case "none":
		fmt.Print(" (rule-based only)")
	}
	fmt.Println()

	// Archive
	st, err := store.Open(cfg.DatabasePath(dataDir))
	if err != nil {
		fmt.Printf("Archive: UNAVAILABLE (%v)\n", err)
		return nil
	}
	defer st.Close()

	n, err := st.CountGames()
	if err != nil {
		return err
	}
	fmt.Printf("Archive: %d game(s) at %s\n", n, cfg.DatabasePath(dataDir))
	return nil
}
