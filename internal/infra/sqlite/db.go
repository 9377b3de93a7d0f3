// Package sqlite provides SQLite-based persistent storage for NutriQuest.
// Uses WAL mode for crash-safe writes. The in-memory engine state is the
// source of truth; this layer is the durable mirror of it.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// SQLite is single-writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Hero state: one key-value row per field, JSON for maps.
		`CREATE TABLE IF NOT EXISTS hero (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Daily logs, keyed by local calendar date, newest first per day.
		`CREATE TABLE IF NOT EXISTS logs (
			id            TEXT PRIMARY KEY,
			date          TEXT NOT NULL,
			kind          TEXT NOT NULL,
			name          TEXT NOT NULL,
			icon          TEXT NOT NULL DEFAULT '',
			category      TEXT NOT NULL DEFAULT '',
			grams         REAL NOT NULL DEFAULT 0,
			calories      REAL NOT NULL DEFAULT 0,
			protein       REAL NOT NULL DEFAULT 0,
			carbs         REAL NOT NULL DEFAULT 0,
			fat           REAL NOT NULL DEFAULT 0,
			sugar         REAL NOT NULL DEFAULT 0,
			sodium_mg     REAL NOT NULL DEFAULT 0,
			duration_min  REAL NOT NULL DEFAULT 0,
			amount_ml     REAL NOT NULL DEFAULT 0,
			tags          TEXT NOT NULL DEFAULT '',
			is_preset     BOOLEAN DEFAULT 0,
			is_composite  BOOLEAN DEFAULT 0,
			created_at    INTEGER NOT NULL,
			multiplier    REAL NOT NULL DEFAULT 1,
			damage        INTEGER NOT NULL DEFAULT 0,
			resisted      BOOLEAN DEFAULT 0,
			dodged        BOOLEAN DEFAULT 0,
			combo         INTEGER NOT NULL DEFAULT 0,
			damage_taken  INTEGER NOT NULL DEFAULT 0,
			shield_taken  INTEGER NOT NULL DEFAULT 0,
			heal_granted  INTEGER NOT NULL DEFAULT 0,
			exp_granted   INTEGER NOT NULL DEFAULT 0,
			gold_granted  INTEGER NOT NULL DEFAULT 0,
			skill_applied TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_logs_date ON logs(date, created_at DESC)`,

		// Quest board with full lifecycle state.
		`CREATE TABLE IF NOT EXISTS quests (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			type        TEXT NOT NULL,
			rarity      TEXT NOT NULL,
			target      INTEGER NOT NULL,
			progress    INTEGER NOT NULL DEFAULT 0,
			status      TEXT NOT NULL,
			accepted_at INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quests_status ON quests(status)`,

		// One-way achievement unlocks plus the equipped flag.
		`CREATE TABLE IF NOT EXISTS achievements (
			id          TEXT PRIMARY KEY,
			unlocked_at INTEGER NOT NULL,
			equipped    BOOLEAN DEFAULT 0
		)`,

		// Single-account gold ledger; every grant and spend is an entry.
		`CREATE TABLE IF NOT EXISTS gold_ledger (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			type        TEXT NOT NULL,
			amount      INTEGER NOT NULL,
			log_id      TEXT,
			description TEXT,
			balance     INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_gold_ts ON gold_ledger(timestamp)`,

		// Lifetime counters feeding achievement predicates.
		`CREATE TABLE IF NOT EXISTS counters (
			key   TEXT PRIMARY KEY,
			value REAL NOT NULL DEFAULT 0
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
