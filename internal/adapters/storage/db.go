package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables
	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT,
		started_climbing TEXT
	);

	CREATE TABLE IF NOT EXISTS climb_session (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		started_at TEXT NOT NULL,
		ended_at TEXT NOT NULL,
		notes TEXT,
		location TEXT,
		created_at TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES account(id)
	);

	CREATE TABLE IF NOT EXISTS session_route (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		grade_system INTEGER NOT NULL,
		grade_label TEXT NOT NULL CHECK (grade_label <> ''),
		attempts INTEGER NOT NULL CHECK (attempts >= 1),
		sent INTEGER NOT NULL DEFAULT 0,
		sent_at TEXT,
		FOREIGN KEY (session_id) REFERENCES climb_session(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS unknown_grade_log (
		id TEXT PRIMARY KEY,
		grade_system INTEGER NOT NULL,
		system_label TEXT NOT NULL,
		grade_label TEXT NOT NULL,
		logged_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS grade_system (
		id INTEGER PRIMARY KEY,
		label TEXT NOT NULL,
		grades TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS user_measurement (
		user_id TEXT PRIMARY KEY,
		height REAL,
		weight REAL,
		ape_index REAL,
		grip_strength REAL,
		unit TEXT NOT NULL DEFAULT 'metric'
	);

	CREATE TABLE IF NOT EXISTS feedback (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		body TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_climb_session_user ON climb_session(user_id, started_at);
	CREATE INDEX IF NOT EXISTS idx_session_route_session ON session_route(session_id);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
