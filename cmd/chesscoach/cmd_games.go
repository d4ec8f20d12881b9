package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"chesscoach/internal/store"
)

var gamesLimit int

func runGames(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.DatabasePath(dataDir))
	if err != nil {
		return err
	}
	defer st.Close()

	games, err := st.ListGames(gamesLimit)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Println("No archived games yet.")
		return nil
	}

	fmt.Printf("%-36s  %-16s  %-6s  %-5s  %-8s  %s\n",
		"ID", "DATE", "COLOR", "MOVES", "ANALYZED", "RESULT")
	for _, g := range games {
		analyzed := "no"
		if g.Analyzed {
			analyzed = "yes"
		}
		fmt.Printf("%-36s  %-16s  %-6s  %-5d  %-8s  %s\n",
			g.ID, g.StartedAt.Format("2006-01-02 15:04"), g.PlayerColor,
			g.MoveCount, analyzed, g.Result)
	}
	return nil
}

func runGamesDelete(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.DatabasePath(dataDir))
	if err != nil {
		return err
	}
	defer st.Close()

	id := args[0]
	if err := st.DeleteGame(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no archived game with id %s", id)
		}
		return err
	}
	fmt.Printf("deleted %s\n", id)
	return nil
}
