package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Course is a named unit of study: a start date plus an ordered collection of
// deadlines. The collection is kept sorted ascending by due date after every
// mutation and after decode. Name uniqueness across courses is enforced at the
// repository boundary, not here.
//
// Fields are declared in lexicographic order of their JSON keys so that
// json.MarshalIndent emits documents with sorted keys.
type Course struct {
	Deadlines []*Deadline `json:"deadlines"`
	Name      string      `json:"name"`
	StartDate time.Time   `json:"startDate"`
	UUID      string      `json:"uuid"`
}

// NewCourse creates a course with a fresh identifier and no deadlines.
func NewCourse(name string, start time.Time) *Course {
	return &Course{
		UUID:      uuid.New().String(),
		Name:      name,
		StartDate: start,
		Deadlines: []*Deadline{},
	}
}

// HasStarted reports whether the course start is at or before now.
func (c *Course) HasStarted(now time.Time) bool {
	return !now.Before(c.StartDate)
}

// DaysToStart returns the absolute number of whole days between now and the
// course start.
func (c *Course) DaysToStart(now time.Time) int {
	days := int(c.StartDate.Sub(now).Hours() / 24)
	if days < 0 {
		return -days
	}
	return days
}

// AgeInDays returns the number of whole days since the course started.
func (c *Course) AgeInDays(now time.Time) int {
	return int(now.Sub(c.StartDate).Hours() / 24)
}

// PercentageReached returns how far now has progressed from the course start
// toward its last deadline, clamped to [0, 100]. Without deadlines, or with a
// zero span, the course has no measurable progress and the result is 0.
func (c *Course) PercentageReached(now time.Time) int {
	end := c.EndDate()
	if end == nil {
		return 0
	}
	whole := end.Sub(c.StartDate)
	if whole <= 0 {
		return 0
	}
	current := now.Sub(c.StartDate)
	if current < 0 {
		current = -current
	}
	return clampPct(float64(current) / float64(whole) * 100)
}

// PercentageLeft is the complement of PercentageReached, clamped to [0, 100].
func (c *Course) PercentageLeft(now time.Time) int {
	return clampPct(float64(100 - c.PercentageReached(now)))
}

// EndDate returns the due date of the latest deadline, or nil when the course
// has none. The timeline uses this as the course's end.
func (c *Course) EndDate() *time.Time {
	if len(c.Deadlines) == 0 {
		return nil
	}
	d := c.Deadlines[len(c.Deadlines)-1].Date
	return &d
}

// AddDeadline appends the deadline and restores the sort order.
func (c *Course) AddDeadline(d *Deadline) {
	c.Deadlines = append(c.Deadlines, d)
	c.SortDeadlines()
}

// RemoveDeadline removes the deadline with the given identifier. It reports
// whether a deadline was removed; removal of an unknown identifier is a no-op.
func (c *Course) RemoveDeadline(id string) bool {
	for i, d := range c.Deadlines {
		if d.UUID == id {
			c.Deadlines = append(c.Deadlines[:i], c.Deadlines[i+1:]...)
			return true
		}
	}
	return false
}

// UpsertDeadline replaces the deadline sharing the given deadline's
// identifier, or appends it when none matches, then restores the sort order.
func (c *Course) UpsertDeadline(d *Deadline) {
	for i, existing := range c.Deadlines {
		if existing.UUID == d.UUID {
			c.Deadlines[i] = d
			c.SortDeadlines()
			return
		}
	}
	c.AddDeadline(d)
}

// DeadlineByID returns the deadline with the given identifier, or nil.
func (c *Course) DeadlineByID(id string) *Deadline {
	for _, d := range c.Deadlines {
		if d.UUID == id {
			return d
		}
	}
	return nil
}

// Rename changes the course name. The repository is responsible for moving
// the backing file and re-checking uniqueness.
func (c *Course) Rename(newName string) {
	c.Name = newName
}

// SetStartDate moves the course start to the midnight of newDate. When
// shiftDeadlines is set, every deadline's due date moves by the same whole-day
// delta, keeping relative spacing intact.
func (c *Course) SetStartDate(newDate time.Time, shiftDeadlines bool) {
	old := ToMidnight(c.StartDate)
	next := ToMidnight(newDate)
	if shiftDeadlines {
		delta := int(next.Sub(old).Hours() / 24)
		for _, d := range c.Deadlines {
			d.MoveBy(delta)
		}
		c.SortDeadlines()
	}
	c.StartDate = next
}

// SortDeadlines restores the ascending due-date order.
func (c *Course) SortDeadlines() {
	sort.SliceStable(c.Deadlines, func(i, j int) bool {
		return c.Deadlines[i].Less(c.Deadlines[j])
	})
}

// DeadlineIDs returns the identifiers of all deadlines, in due-date order.
// Alert cancellation on course deletion uses this.
func (c *Course) DeadlineIDs() []string {
	ids := make([]string, 0, len(c.Deadlines))
	for _, d := range c.Deadlines {
		ids = append(ids, d.UUID)
	}
	return ids
}
