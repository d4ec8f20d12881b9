// Package store archives finished games and their analysis reports in a
// local SQLite database.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"chesscoach/internal/analysis"
	"chesscoach/internal/game"
	"chesscoach/internal/logging"
)

// ErrNotFound is returned when a game or report id does not exist.
var ErrNotFound = errors.New("not found")

// Store is the sqlite-backed game archive.
type Store struct {
	db     *sql.DB
	mu     sync.Mutex
	dbPath string
}

// Open initializes the database at the given path, creating directories
// and schema as needed.
func Open(path string) (*Store, error) {
	timer := logging.StartTimer(logging.CategoryStore, "Open")
	defer timer.Stop()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreDebug("failed to set busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.StoreDebug("failed to set journal_mode=WAL: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL"); err != nil {
		logging.StoreDebug("failed to set synchronous=NORMAL: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		logging.StoreDebug("failed to enable foreign_keys: %v", err)
	}

	s := &Store{db: db, dbPath: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	logging.Store("archive opened at %s", path)
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveGame inserts or replaces a game and its moves.
func (s *Store) SaveGame(rec game.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO games
		(id, started_at, finished_at, player_color, outcome, result, skill_level, elo, use_elo, pgn)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.StartedAt, rec.FinishedAt, rec.PlayerColor, rec.Outcome,
		rec.Result, rec.SkillLevel, rec.Elo, rec.UseElo, rec.PGN)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM moves WHERE game_id = ?", rec.ID); err != nil {
		return fmt.Errorf("clear moves: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO moves
		(game_id, ply, move_number, color, san, uci, fen_before, fen_after, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare moves: %w", err)
	}
	defer stmt.Close()

	for _, m := range rec.Moves {
		if _, err := stmt.Exec(rec.ID, m.Ply, m.MoveNumber, m.Color, m.SAN, m.UCI,
			m.FENBefore, m.FENAfter, m.Timestamp); err != nil {
			return fmt.Errorf("insert move %d: %w", m.Ply, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	logging.Store("saved game %s (%d moves)", rec.ID, len(rec.Moves))
	return nil
}

// LoadGame returns a previously saved game.
func (s *Store) LoadGame(id string) (game.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rec game.Record
	err := s.db.QueryRow(`
		SELECT id, started_at, finished_at, player_color, outcome, result, skill_level, elo, use_elo, pgn
		FROM games WHERE id = ?`, id).
		Scan(&rec.ID, &rec.StartedAt, &rec.FinishedAt, &rec.PlayerColor, &rec.Outcome,
			&rec.Result, &rec.SkillLevel, &rec.Elo, &rec.UseElo, &rec.PGN)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, fmt.Errorf("game %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return rec, fmt.Errorf("load game: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT ply, move_number, color, san, uci, fen_before, fen_after, played_at
		FROM moves WHERE game_id = ? ORDER BY ply`, id)
	if err != nil {
		return rec, fmt.Errorf("load moves: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m game.MoveRecord
		if err := rows.Scan(&m.Ply, &m.MoveNumber, &m.Color, &m.SAN, &m.UCI,
			&m.FENBefore, &m.FENAfter, &m.Timestamp); err != nil {
			return rec, fmt.Errorf("scan move: %w", err)
		}
		rec.Moves = append(rec.Moves, m)
	}
	return rec, rows.Err()
}

// GameSummary is one row of the games listing.
type GameSummary struct {
	ID          string
	StartedAt   time.Time
	PlayerColor string
	Result      string
	SkillLevel  int
	MoveCount   int
	Analyzed    bool
}

// ListGames returns archived games, most recent first. limit <= 0 means
// no limit.
func (s *Store) ListGames(limit int) ([]GameSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		SELECT g.id, g.started_at, g.player_color, g.result, g.skill_level,
		       (SELECT COUNT(*) FROM moves m WHERE m.game_id = g.id),
		       EXISTS(SELECT 1 FROM report_summary r WHERE r.game_id = g.id)
		FROM games g ORDER BY g.started_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var out []GameSummary
	for rows.Next() {
		var g GameSummary
		if err := rows.Scan(&g.ID, &g.StartedAt, &g.PlayerColor, &g.Result,
			&g.SkillLevel, &g.MoveCount, &g.Analyzed); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// SaveReport inserts or replaces the analysis report for a game.
func (s *Store) SaveReport(gameID string, report *analysis.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO report_summary
		(game_id, player_color, depth, accuracy, best_count, good_count, inaccuracies, mistakes, blunders)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		gameID, report.PlayerColor, report.Depth, report.Accuracy,
		report.BestCount, report.GoodCount, report.Inaccuracies, report.Mistakes, report.Blunders)
	if err != nil {
		return fmt.Errorf("insert summary: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM report_moves WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("clear report moves: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO report_moves
		(game_id, ply, move_number, color, san, uci, eval_before, eval_after,
		 best_move_san, delta, loss, classification, phase)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare report moves: %w", err)
	}
	defer stmt.Close()

	for _, m := range report.Moves {
		if _, err := stmt.Exec(gameID, m.Ply, m.MoveNumber, m.Color, m.SAN, m.UCI,
			m.EvalBefore, m.EvalAfter, m.BestMoveSAN, m.Delta, m.Loss,
			string(m.Classification), string(m.Phase)); err != nil {
			return fmt.Errorf("insert report move %d: %w", m.Ply, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	logging.Store("saved report for game %s", gameID)
	return nil
}

// LoadReport returns the stored report for a game.
func (s *Store) LoadReport(gameID string) (*analysis.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := &analysis.Report{}
	err := s.db.QueryRow(`
		SELECT player_color, depth, accuracy, best_count, good_count, inaccuracies, mistakes, blunders
		FROM report_summary WHERE game_id = ?`, gameID).
		Scan(&report.PlayerColor, &report.Depth, &report.Accuracy, &report.BestCount,
			&report.GoodCount, &report.Inaccuracies, &report.Mistakes, &report.Blunders)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("report for game %s: %w", gameID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load report: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT ply, move_number, color, san, uci, eval_before, eval_after,
		       best_move_san, delta, loss, classification, phase
		FROM report_moves WHERE game_id = ? ORDER BY ply`, gameID)
	if err != nil {
		return nil, fmt.Errorf("load report moves: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m analysis.MoveEvaluation
		var cls, phase string
		if err := rows.Scan(&m.Ply, &m.MoveNumber, &m.Color, &m.SAN, &m.UCI,
			&m.EvalBefore, &m.EvalAfter, &m.BestMoveSAN, &m.Delta, &m.Loss,
			&cls, &phase); err != nil {
			return nil, fmt.Errorf("scan report move: %w", err)
		}
		m.Classification = analysis.Classification(cls)
		m.Phase = game.Phase(phase)
		report.Moves = append(report.Moves, m)
	}
	return report, rows.Err()
}

// DeleteGame removes a game, its moves, and its report.
func (s *Store) DeleteGame(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM games WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("game %s: %w", id, ErrNotFound)
	}

	logging.Store("deleted game %s", id)
	return nil
}

// CountGames returns the number of archived games.
func (s *Store) CountGames() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM games").Scan(&n); err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	return n, nil
}
