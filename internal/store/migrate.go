package store

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations are idempotent and re-run on every open.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS user_data (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		payload TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS api_events (
		sequence INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id TEXT NOT NULL UNIQUE,
		timestamp TEXT NOT NULL,
		endpoint TEXT NOT NULL,
		page_type TEXT NOT NULL DEFAULT '',
		participant_id TEXT NOT NULL DEFAULT '',
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_api_events_timestamp ON api_events(timestamp)`,
	`CREATE TABLE IF NOT EXISTS quest_events (
		sequence INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id TEXT NOT NULL UNIQUE,
		timestamp TEXT NOT NULL,
		participant_id TEXT NOT NULL,
		visit_id TEXT NOT NULL,
		quest_id TEXT NOT NULL,
		source TEXT NOT NULL,
		completed INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_quest_events_participant ON quest_events(participant_id, timestamp)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
