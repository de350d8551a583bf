package notify

import (
	"context"
	"time"
)

// Alert is a pending local notification for one deadline. AlertID is the
// deadline's UUID, so rescheduling a deadline replaces its previous alert.
type Alert struct {
	AlertID    string
	Title      string
	CourseName string
	AlertAt    time.Time
	DeadlineAt time.Time
}

// Scheduler maintains alerts for approaching deadlines. Callers treat
// scheduling as best-effort: failures are logged, never propagated into the
// persistence path.
type Scheduler interface {
	// Schedule registers an alert, replacing any pending alert with the
	// same ID. Alerts whose alert time and deadline are both in the past
	// are suppressed; an alert time in the past with a future deadline is
	// clamped to min(now+1h, deadline-24h).
	Schedule(ctx context.Context, a Alert) error

	// Cancel removes the pending alert with the given ID, if any.
	Cancel(ctx context.Context, alertID string) error

	// CancelAll removes every pending alert in ids.
	CancelAll(ctx context.Context, ids []string) error
}

// clampAlertTime applies the scheduling rules. The second return value is
// false when the alert should be suppressed entirely.
func clampAlertTime(a Alert, now time.Time) (time.Time, bool) {
	if !a.AlertAt.After(now) && !a.DeadlineAt.After(now) {
		return time.Time{}, false
	}
	if a.AlertAt.After(now) {
		return a.AlertAt, true
	}
	inOneHour := now.Add(time.Hour)
	dayBeforeDeadline := a.DeadlineAt.Add(-24 * time.Hour)
	if dayBeforeDeadline.Before(inOneHour) {
		return dayBeforeDeadline, true
	}
	return inOneHour, true
}

// NoopScheduler discards every request. Used when the alert ledger is
// unavailable and in tests.
type NoopScheduler struct{}

func (NoopScheduler) Schedule(ctx context.Context, a Alert) error { return nil }

func (NoopScheduler) Cancel(ctx context.Context, alertID string) error { return nil }

func (NoopScheduler) CancelAll(ctx context.Context, ids []string) error { return nil }
