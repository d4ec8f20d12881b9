package store

import (
	"database/sql"
	"fmt"

	"chesscoach/internal/logging"
)

// Schema versions:
// v1: games, moves, report_summary, report_moves
const CurrentSchemaVersion = 1

var schemaV1 = []string{
	`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS games (
		id           TEXT PRIMARY KEY,
		started_at   DATETIME NOT NULL,
		finished_at  DATETIME,
		player_color TEXT NOT NULL,
		outcome      TEXT NOT NULL,
		result       TEXT NOT NULL,
		skill_level  INTEGER NOT NULL,
		elo          INTEGER DEFAULT 0,
		use_elo      BOOLEAN DEFAULT 0,
		pgn          TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS moves (
		game_id     TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
		ply         INTEGER NOT NULL,
		move_number INTEGER NOT NULL,
		color       TEXT NOT NULL,
		san         TEXT NOT NULL,
		uci         TEXT NOT NULL,
		fen_before  TEXT NOT NULL,
		fen_after   TEXT NOT NULL,
		played_at   DATETIME,
		PRIMARY KEY (game_id, ply)
	)`,
	`CREATE TABLE IF NOT EXISTS report_summary (
		game_id      TEXT PRIMARY KEY REFERENCES games(id) ON DELETE CASCADE,
		player_color TEXT NOT NULL,
		depth        INTEGER NOT NULL,
		accuracy     REAL NOT NULL,
		best_count   INTEGER NOT NULL,
		good_count   INTEGER NOT NULL,
		inaccuracies INTEGER NOT NULL,
		mistakes     INTEGER NOT NULL,
		blunders     INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS report_moves (
		game_id        TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
		ply            INTEGER NOT NULL,
		move_number    INTEGER NOT NULL,
		color          TEXT NOT NULL,
		san            TEXT NOT NULL,
		uci            TEXT NOT NULL,
		eval_before    INTEGER NOT NULL,
		eval_after     INTEGER NOT NULL,
		best_move_san  TEXT NOT NULL,
		delta          INTEGER NOT NULL,
		loss           INTEGER NOT NULL,
		classification TEXT NOT NULL,
		phase          TEXT NOT NULL,
		PRIMARY KEY (game_id, ply)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_games_started ON games(started_at)`,
}

// migrate creates the schema and records the version.
func (s *Store) migrate() error {
	timer := logging.StartTimer(logging.CategoryStore, "migrate")
	defer timer.Stop()

	for _, stmt := range schemaV1 {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("schema init: %w", err)
		}
	}

	version, err := schemaVersion(s.db)
	if err != nil {
		return err
	}
	if version == 0 {
		if _, err := s.db.Exec("INSERT INTO schema_version (version) VALUES (?)", CurrentSchemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		logging.StoreDebug("schema created at version %d", CurrentSchemaVersion)
		return nil
	}
	if version > CurrentSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported %d", version, CurrentSchemaVersion)
	}

	// Future versions add ALTER TABLE steps here, stepping version up

	logging.StoreDebug("schema at version %d", version)
	return nil
}

func schemaVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}
