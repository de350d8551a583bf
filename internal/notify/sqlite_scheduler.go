package notify

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLiteScheduler keeps the alert ledger in SQLite. A cron-driven
// `takaraja notify` run delivers alerts that have come due.
type SQLiteScheduler struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteScheduler creates a scheduler over an opened ledger database.
func NewSQLiteScheduler(db *sql.DB) *SQLiteScheduler {
	return &SQLiteScheduler{db: db, now: time.Now}
}

func (s *SQLiteScheduler) Schedule(ctx context.Context, a Alert) error {
	alertAt, ok := clampAlertTime(a, s.now())
	if !ok {
		// Deadline already passed; nothing to announce.
		return s.Cancel(ctx, a.AlertID)
	}

	query := `INSERT INTO pending_alerts (alert_id, title, course_name, alert_at, deadline_at, created_at, delivered_at)
		VALUES (?, ?, ?, ?, ?, ?, NULL)
		ON CONFLICT(alert_id) DO UPDATE SET
			title = excluded.title,
			course_name = excluded.course_name,
			alert_at = excluded.alert_at,
			deadline_at = excluded.deadline_at,
			delivered_at = NULL`
	_, err := s.db.ExecContext(ctx, query,
		a.AlertID,
		a.Title,
		a.CourseName,
		alertAt.UTC().Format(time.RFC3339),
		a.DeadlineAt.UTC().Format(time.RFC3339),
		s.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("scheduling alert %s: %w", a.AlertID, err)
	}
	return nil
}

func (s *SQLiteScheduler) Cancel(ctx context.Context, alertID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM pending_alerts WHERE alert_id = ?`, alertID)
	if err != nil {
		return fmt.Errorf("cancelling alert %s: %w", alertID, err)
	}
	return nil
}

func (s *SQLiteScheduler) CancelAll(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := s.Cancel(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Due returns undelivered alerts whose alert time is at or before now,
// ordered by alert time.
func (s *SQLiteScheduler) Due(ctx context.Context, now time.Time) ([]Alert, error) {
	query := `SELECT alert_id, title, course_name, alert_at, deadline_at
		FROM pending_alerts
		WHERE delivered_at IS NULL AND alert_at <= ?
		ORDER BY alert_at`
	rows, err := s.db.QueryContext(ctx, query, now.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("listing due alerts: %w", err)
	}
	defer rows.Close()

	var alerts []Alert
	for rows.Next() {
		var a Alert
		var alertAtStr, deadlineAtStr string
		if err := rows.Scan(&a.AlertID, &a.Title, &a.CourseName, &alertAtStr, &deadlineAtStr); err != nil {
			return nil, fmt.Errorf("scanning alert: %w", err)
		}
		if a.AlertAt, err = time.Parse(time.RFC3339, alertAtStr); err != nil {
			return nil, fmt.Errorf("parsing alert time: %w", err)
		}
		if a.DeadlineAt, err = time.Parse(time.RFC3339, deadlineAtStr); err != nil {
			return nil, fmt.Errorf("parsing deadline time: %w", err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating alerts: %w", err)
	}
	return alerts, nil
}

// MarkDelivered records that the alert was shown to the user.
func (s *SQLiteScheduler) MarkDelivered(ctx context.Context, alertID string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE pending_alerts SET delivered_at = ? WHERE alert_id = ?`,
		s.now().UTC().Format(time.RFC3339), alertID)
	if err != nil {
		return fmt.Errorf("marking alert %s delivered: %w", alertID, err)
	}
	return nil
}

// Pending returns the number of undelivered alerts. Used by tests and the
// notify command summary.
func (s *SQLiteScheduler) Pending(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pending_alerts WHERE delivered_at IS NULL`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting pending alerts: %w", err)
	}
	return n, nil
}
