package game

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/notnil/chess"

	"chesscoach/internal/config"
)

// Record is the archive form of a finished (or abandoned) session:
// everything needed to list, export, and re-analyze the game later.
type Record struct {
	ID          string       `json:"id"`
	PlayerColor string       `json:"player_color"`
	Outcome     string       `json:"outcome"` // "1-0", "0-1", "1/2-1/2", "*"
	Result      string       `json:"result"`  // human-readable description
	StartedAt   time.Time    `json:"started_at"`
	FinishedAt  time.Time    `json:"finished_at"`
	SkillLevel  int          `json:"skill_level"`
	Elo         int          `json:"elo,omitempty"`
	UseElo      bool         `json:"use_elo,omitempty"`
	Moves       []MoveRecord `json:"moves"`
	PGN         string       `json:"pgn"`
}

// Record snapshots the session for archival. The engine config supplies
// the strength the game was played at.
func (s *Session) Record(engCfg config.EngineConfig) Record {
	return Record{
		ID:          s.id,
		PlayerColor: ColorName(s.playerColor),
		Outcome:     string(s.game.Outcome()),
		Result:      s.OutcomeDescription(),
		StartedAt:   s.startedAt,
		FinishedAt:  s.finishedAt,
		SkillLevel:  engCfg.SkillLevel,
		Elo:         engCfg.Elo,
		UseElo:      engCfg.UseElo,
		Moves:       s.Moves(),
		PGN:         s.PGN(engCfg),
	}
}

// PGN renders the game with standard tag pairs.
func (s *Session) PGN(engCfg config.EngineConfig) string {
	engineName := fmt.Sprintf("Engine (skill %d)", config.ClampSkill(engCfg.SkillLevel))
	if engCfg.UseElo {
		engineName = fmt.Sprintf("Engine (elo %d)", config.ClampElo(engCfg.Elo))
	}

	white, black := "Player", engineName
	if s.playerColor == chess.Black {
		white, black = engineName, "Player"
	}

	s.game.AddTagPair("Event", "chesscoach training game")
	s.game.AddTagPair("Site", "local")
	s.game.AddTagPair("Date", s.startedAt.Format("2006.01.02"))
	s.game.AddTagPair("White", white)
	s.game.AddTagPair("Black", black)

	return s.game.String()
}

// SaveJSON writes a record to path, creating parent directories.
func SaveJSON(path string, rec Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write game file: %w", err)
	}
	return nil
}

// LoadJSON reads a record previously written by SaveJSON.
func LoadJSON(path string) (Record, error) {
	var rec Record
	data, err := os.ReadFile(path)
	if err != nil {
		return rec, fmt.Errorf("failed to read game file: %w", err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("failed to parse game file: %w", err)
	}
	return rec, nil
}
