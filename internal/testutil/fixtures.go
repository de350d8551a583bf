package testutil

import (
	"time"

	"github.com/avirtala/takaraja/internal/domain"
)

// NewTestCourse creates a course starting Monday 2025-01-06 with no
// deadlines.
func NewTestCourse(name string) *domain.Course {
	return domain.NewCourse(name, Day(2025, time.January, 6))
}

// NewTestDeadline creates a deadline with a one week hot window.
func NewTestDeadline(goal string, due time.Time) *domain.Deadline {
	return domain.NewDeadline(due, "hammer", goal, 7)
}

// Day returns local midnight of the given calendar day.
func Day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
