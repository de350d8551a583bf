package domain

import (
	"time"

	"github.com/google/uuid"
)

// Deadline is a dated goal within a course. It becomes "hot" once the current
// time enters the configured lead window before the due date, and "reached"
// once the due date passes. A deal-breaker deadline is one whose miss affects
// the course outcome; here it is only a severity attribute.
//
// Fields are declared in lexicographic order of their JSON keys so that
// json.MarshalIndent emits documents with sorted keys.
type Deadline struct {
	BecomesHotDaysBefore int       `json:"becomesHotDaysBefore"`
	Date                 time.Time `json:"date"`
	Goal                 string    `json:"goal"`
	IsDealBreaker        bool      `json:"isDealBreaker"`
	Symbol               string    `json:"symbol"`
	UUID                 string    `json:"uuid"`
}

// NewDeadline creates a deadline with a fresh identifier. Values are accepted
// as given; callers validate the goal before invoking.
func NewDeadline(date time.Time, symbol, goal string, hotLeadDays int) *Deadline {
	return &Deadline{
		UUID:                 uuid.New().String(),
		Date:                 date,
		Symbol:               symbol,
		Goal:                 goal,
		BecomesHotDaysBefore: hotLeadDays,
	}
}

// IsReached reports whether the due date is at or before now.
func (d *Deadline) IsReached(now time.Time) bool {
	return !d.Date.After(now)
}

// IsHot reports whether the deadline is inside its lead window but not yet
// reached.
func (d *Deadline) IsHot(now time.Time) bool {
	if d.IsReached(now) {
		return false
	}
	return d.Date.Sub(now) <= time.Duration(d.BecomesHotDaysBefore)*24*time.Hour
}

// WhenHot returns the instant the deadline enters its lead window.
func (d *Deadline) WhenHot() time.Time {
	return d.Date.Add(-time.Duration(d.BecomesHotDaysBefore) * 24 * time.Hour)
}

// PercentageReached returns how far now has progressed from start toward the
// due date, clamped to [0, 100]. A zero start-to-due span yields 0.
func (d *Deadline) PercentageReached(start, now time.Time) int {
	whole := d.Date.Sub(start)
	if whole == 0 {
		return 0
	}
	current := now.Sub(start)
	return clampPct(float64(current) / float64(whole) * 100)
}

// PercentageLeft is the complement of PercentageReached, clamped to [0, 100].
func (d *Deadline) PercentageLeft(start, now time.Time) int {
	return clampPct(float64(100 - d.PercentageReached(start, now)))
}

// MoveBy shifts the due date by the given number of whole days. Used when a
// course's start date moves and its deadlines move in lockstep.
func (d *Deadline) MoveBy(days int) {
	d.Date = d.Date.Add(time.Duration(days) * 24 * time.Hour)
}

// Less orders deadlines by due date ascending. Two deadlines may share a
// date; identity is the UUID.
func (d *Deadline) Less(other *Deadline) bool {
	return d.Date.Before(other.Date)
}

func clampPct(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}
