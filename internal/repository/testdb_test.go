package repository

import (
	"database/sql"
	"os"
	"testing"

	_ "modernc.org/sqlite"
)

// setupTestDB creates a temporary SQLite database with the schema the
// repositories in this package expect, mirroring the migrations under
// internal/database/migrations without depending on goose at test time.
func setupTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "safeworkout_repo_test_*.db")
	if err != nil {
		t.Fatalf("failed to create temp db: %v", err)
	}
	dbPath := tmpFile.Name()
	tmpFile.Close()

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("failed to open db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	schema := `
		CREATE TABLE profiles (
			user_id             TEXT PRIMARY KEY,
			identity            TEXT NOT NULL,
			primary_goal        TEXT NOT NULL DEFAULT '',
			experience          TEXT NOT NULL DEFAULT '',
			equipment           TEXT NOT NULL DEFAULT '[]',
			session_durations   TEXT NOT NULL DEFAULT '[]',
			hrt_type            TEXT NOT NULL DEFAULT 'NONE',
			hrt_months          INTEGER NOT NULL DEFAULT 0,
			hrt_frequency       TEXT NOT NULL DEFAULT '',
			hrt_days            TEXT NOT NULL DEFAULT '[]',
			binds               INTEGER NOT NULL DEFAULT 0,
			binder_type         TEXT NOT NULL DEFAULT 'NONE',
			binder_frequency    TEXT NOT NULL DEFAULT '',
			binder_duration_hrs INTEGER NOT NULL DEFAULT 0,
			dysphoria_triggers  TEXT NOT NULL DEFAULT '[]',
			planning_ahead      INTEGER NOT NULL DEFAULT 0,
			updated_at          TEXT NOT NULL
		);

		CREATE TABLE surgeries (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id       TEXT NOT NULL REFERENCES profiles(user_id) ON DELETE CASCADE,
			surgery_type  TEXT NOT NULL,
			surgery_date  TEXT NOT NULL,
			fully_healed  INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE exercises (
			id                    INTEGER PRIMARY KEY,
			name                  TEXT NOT NULL,
			pattern               TEXT NOT NULL,
			target_muscles        TEXT NOT NULL DEFAULT '[]',
			equipment             TEXT NOT NULL DEFAULT '[]',
			difficulty            TEXT NOT NULL DEFAULT '',
			binder_aware          INTEGER NOT NULL DEFAULT 0,
			heavy_binding_safe    INTEGER NOT NULL DEFAULT 0,
			pelvic_floor_safe     INTEGER NOT NULL DEFAULT 0,
			contraindications     TEXT NOT NULL DEFAULT '[]',
			dysphoria_tags        TEXT NOT NULL DEFAULT '[]',
			earliest_safe_phase   TEXT,
			effectiveness_rating  REAL NOT NULL DEFAULT 0,
			gender_goal_emphasis  TEXT NOT NULL DEFAULT '[]'
		);

		CREATE TABLE rule_configs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			rule_category TEXT NOT NULL,
			rule_id       TEXT NOT NULL DEFAULT '',
			config        TEXT NOT NULL,
			is_active     INTEGER NOT NULL DEFAULT 1,
			updated_at    TEXT NOT NULL
		);

		CREATE TABLE plans (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES profiles(user_id) ON DELETE CASCADE,
			start_date TEXT NOT NULL,
			plan_data  TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE TABLE saved_workouts (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id       TEXT NOT NULL REFERENCES profiles(user_id) ON DELETE CASCADE,
			plan_id       TEXT NOT NULL,
			day_number    INTEGER NOT NULL,
			workout_data  TEXT NOT NULL,
			saved_at      TEXT NOT NULL
		);

		CREATE TABLE audit_records (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id      TEXT NOT NULL,
			plan_id      TEXT NOT NULL,
			rule_id      TEXT NOT NULL,
			category     TEXT NOT NULL,
			action_type  TEXT NOT NULL,
			user_message TEXT NOT NULL DEFAULT '',
			occurred_at  TEXT NOT NULL
		);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("failed to create schema: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}
