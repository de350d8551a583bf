package db

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS pending_alerts (
		alert_id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		course_name TEXT NOT NULL,
		alert_at TEXT NOT NULL,
		deadline_at TEXT NOT NULL,
		created_at TEXT NOT NULL,
		delivered_at TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_pending_alerts_alert_at ON pending_alerts(alert_at)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
