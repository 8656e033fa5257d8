// Package store persists player progression, quest progress, and session
// results in a local SQLite database.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite connection and hands out repositories.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies the recommended
// pragmas, and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Players returns the player repository backed by this store.
func (s *Store) Players() *PlayerRepo {
	return &PlayerRepo{db: s.db}
}

// Quests returns the quest progress repository backed by this store.
func (s *Store) Quests() *QuestRepo {
	return &QuestRepo{db: s.db}
}

// Results returns the session result repository scoped to one player.
func (s *Store) Results(playerID string) *ResultRepo {
	return &ResultRepo{db: s.db, playerID: playerID}
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// migrate creates the schema. Statements are idempotent so Open can run
// them on every start.
func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS players (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			xp INTEGER NOT NULL DEFAULT 0,
			seasonal_xp INTEGER NOT NULL DEFAULT 0,
			diamonds INTEGER NOT NULL DEFAULT 0,
			energy_stars INTEGER NOT NULL DEFAULT 0,
			test_attempts INTEGER NOT NULL DEFAULT 0,
			last_daily_reset INTEGER NOT NULL DEFAULT 0,
			achievements TEXT NOT NULL DEFAULT '[]',
			total_quizzes_completed INTEGER NOT NULL DEFAULT 0,
			total_correct_answers INTEGER NOT NULL DEFAULT 0,
			total_questions_answered INTEGER NOT NULL DEFAULT 0,
			total_play_time_seconds INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS quest_progress (
			player_id TEXT NOT NULL,
			quest_id TEXT NOT NULL,
			progress INTEGER NOT NULL DEFAULT 0,
			claimed INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (player_id, quest_id)
		)`,
		`CREATE TABLE IF NOT EXISTS quiz_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			player_id TEXT NOT NULL,
			page INTEGER NOT NULL,
			score INTEGER NOT NULL,
			total_questions INTEGER NOT NULL,
			xp_earned INTEGER NOT NULL,
			duration_secs INTEGER NOT NULL,
			error_log TEXT NOT NULL DEFAULT '[]',
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS mastery_records (
			player_id TEXT NOT NULL,
			page INTEGER NOT NULL,
			best_duration_secs INTEGER NOT NULL,
			achieved_at INTEGER NOT NULL,
			PRIMARY KEY (player_id, page)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quiz_results_player
			ON quiz_results (player_id, created_at)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. TAHFIZ_DB environment variable
// 2. $XDG_DATA_HOME/tahfiz/tahfiz.db
// 3. ~/.local/share/tahfiz/tahfiz.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("TAHFIZ_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "tahfiz", "tahfiz.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
