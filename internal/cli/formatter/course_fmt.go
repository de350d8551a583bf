package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/avirtala/takaraja/internal/domain"
)

const dateLayout = "2006-01-02"

// DeadlineMarker returns the colored status marker for a deadline:
// ✓ reached, ! hot, ‼ hot deal-breaker, • otherwise.
func DeadlineMarker(d *domain.Deadline, now time.Time) string {
	switch {
	case d.IsReached(now):
		return StyleDim.Render("✓")
	case d.IsHot(now) && d.IsDealBreaker:
		return StyleRed.Render("‼")
	case d.IsHot(now):
		return StyleYellow.Render("!")
	case d.IsDealBreaker:
		return StyleRed.Render("•")
	default:
		return StyleBlue.Render("•")
	}
}

// RenderCourseList renders one line per course: name, start date, deadline
// count and overall progress.
func RenderCourseList(courses []*domain.Course, now time.Time) string {
	if len(courses) == 0 {
		return StyleDim.Render("No courses yet. Create one with: takaraja course add")
	}

	var b strings.Builder
	b.WriteString(StyleHeader.Render("COURSES") + "\n")
	for _, c := range courses {
		line := fmt.Sprintf("%-28s %s  %2d deadlines  %s",
			StyleBold.Render(c.Name),
			StyleDim.Render(c.StartDate.Format(dateLayout)),
			len(c.Deadlines),
			RenderProgress(c.PercentageReached(now), 20),
		)
		b.WriteString(line + "\n")
	}
	return b.String()
}

// RenderCourse renders the detail view of a single course with all of its
// deadlines.
func RenderCourse(c *domain.Course, now time.Time) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render(c.Name) + "\n")

	if c.HasStarted(now) {
		b.WriteString(fmt.Sprintf("Started %s (%d days ago)\n",
			c.StartDate.Format(dateLayout), c.AgeInDays(now)))
	} else {
		b.WriteString(fmt.Sprintf("Starts %s (in %d days)\n",
			c.StartDate.Format(dateLayout), c.DaysToStart(now)))
	}
	b.WriteString("Progress " + RenderProgress(c.PercentageReached(now), 30) + "\n")

	if len(c.Deadlines) == 0 {
		b.WriteString(StyleDim.Render("No deadlines.") + "\n")
		return b.String()
	}

	b.WriteString("\n")
	for _, d := range c.Deadlines {
		b.WriteString(fmt.Sprintf("%s %s  %-30s %s  %s\n",
			DeadlineMarker(d, now),
			d.Date.Format(dateLayout),
			d.Goal,
			StyleDim.Render(d.Symbol),
			deadlineHint(d, now),
		))
	}
	return b.String()
}

func deadlineHint(d *domain.Deadline, now time.Time) string {
	switch {
	case d.IsReached(now):
		return StyleDim.Render("reached")
	case d.IsHot(now):
		days := int(d.Date.Sub(now).Hours() / 24)
		return StyleYellow.Render(fmt.Sprintf("hot, due in %d days", days))
	default:
		return StyleDim.Render("hot from " + d.WhenHot().Format(dateLayout))
	}
}
