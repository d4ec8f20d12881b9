package play

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"chesscoach/internal/coach"
	"chesscoach/internal/config"
	"chesscoach/internal/engine"
	"chesscoach/internal/game"
	"chesscoach/internal/logging"
	"chesscoach/internal/store"
)

// Run starts the interactive play screen and blocks until the player
// quits. playColor is "white" or "black".
func Run(cfg *config.Config, dataDir string, playColor string) error {
	eng := engine.New(cfg.Engine)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Engine.GetStartTimeout())
	err := eng.Start(ctx)
	cancel()
	if err != nil {
		return err
	}
	defer eng.Close()

	st, err := store.Open(cfg.DatabasePath(dataDir))
	if err != nil {
		// Playable without the archive; games just won't be saved
		logging.UI("archive unavailable: %v", err)
		st = nil
	} else {
		defer st.Close()
	}

	client, err := coach.NewClient(cfg.Coach)
	if err != nil {
		return err
	}
	ch := coach.New(client, cfg.Coach.PlayerElo)

	m := NewModel(cfg, dataDir, eng, st, ch, game.ParseColor(playColor))
	p := tea.NewProgram(m, tea.WithAltScreen())

	watcher := config.NewWatcher(config.Path(dataDir), func(next *config.Config) {
		p.Send(configReloadedMsg{cfg: next})
	})
	if err := watcher.Start(); err != nil {
		logging.UI("config watch unavailable: %v", err)
	} else {
		defer watcher.Stop()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ui error: %w", err)
	}
	return nil
}
