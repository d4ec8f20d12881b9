package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chesscoach/internal/game"
	"chesscoach/internal/store"
)

var (
	exportJSON bool
	exportOut  string
)

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.DatabasePath(dataDir))
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := resolveGame(st, args)
	if err != nil {
		return err
	}

	if exportOut != "" {
		if exportJSON {
			if err := game.SaveJSON(exportOut, rec); err != nil {
				return err
			}
		} else {
			if err := os.WriteFile(exportOut, []byte(rec.PGN), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", exportOut, err)
			}
		}
		fmt.Printf("wrote %s\n", exportOut)
		return nil
	}

	if exportJSON {
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal game: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Print(rec.PGN)
	if rec.PGN == "" || rec.PGN[len(rec.PGN)-1] != '\n' {
		fmt.Println()
	}
	return nil
}
