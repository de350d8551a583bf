package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/avirtala/takaraja/internal/domain"
)

const (
	nameColWidth     = 18
	defaultTimeFrame = 8 * 7 * 24 * time.Hour

	spanGlyph     = "─"
	hotGlyph      = "▒"
	deadlineGlyph = "◆"
	todayGlyph    = "│"
	idleGlyph     = " "
)

// RenderTimeline draws a week-aligned timeline of the given courses: one row
// per course spanning its start date to its last deadline, with deadline
// markers, hot-window shading and a today column. The grid starts on the
// Monday before the earliest course start.
func RenderTimeline(courses []*domain.Course, now time.Time, width int) string {
	if len(courses) == 0 {
		return StyleDim.Render("Nothing to plot: no unfinished courses.")
	}
	if width < nameColWidth+14 {
		width = nameColWidth + 14
	}
	cells := width - nameColWidth

	first, last := timelineRange(courses, now)
	totalDays := daysBetween(first, last) + 1
	daysPerCell := (totalDays + cells - 1) / cells
	if daysPerCell < 1 {
		daysPerCell = 1
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-*s%s\n", nameColWidth, "",
		axisLabel(first, last, cells)))

	for _, c := range courses {
		b.WriteString(fmt.Sprintf("%-*s", nameColWidth, truncate(c.Name, nameColWidth-2)))
		b.WriteString(courseRow(c, first, now, cells, daysPerCell))
		b.WriteString("\n")
	}

	b.WriteString(StyleDim.Render(fmt.Sprintf("%-*s%s today  %s deadline  %s hot window",
		nameColWidth, "", todayGlyph, deadlineGlyph, hotGlyph)))
	return b.String()
}

// timelineRange picks the plot boundaries the way the original timeline did:
// earliest start (previous Monday) through the latest course end, padded with
// a default frame when a boundary is missing.
func timelineRange(courses []*domain.Course, now time.Time) (time.Time, time.Time) {
	first := courses[0].StartDate
	last := now.Add(defaultTimeFrame)

	for _, c := range courses {
		if c.StartDate.Before(first) {
			first = c.StartDate
		}
	}
	haveEnd := false
	for _, c := range courses {
		if end := c.EndDate(); end != nil && (!haveEnd || end.After(last)) {
			last = *end
			haveEnd = true
		}
	}
	first = domain.ToPreviousMonday(first)
	if last.Before(first) {
		last = first.Add(defaultTimeFrame)
	}
	return first, last
}

func courseRow(c *domain.Course, first, now time.Time, cells, daysPerCell int) string {
	startDay := daysBetween(first, c.StartDate)
	endDay := startDay
	if end := c.EndDate(); end != nil {
		endDay = daysBetween(first, c.StartDate) + daysBetween(c.StartDate, *end)
	}
	todayDay := daysBetween(first, now)

	var row strings.Builder
	for cell := 0; cell < cells; cell++ {
		lo := cell * daysPerCell
		hi := lo + daysPerCell - 1

		switch {
		case containsDeadline(c, first, lo, hi):
			row.WriteString(deadlineCellGlyph(c, first, lo, hi, now))
		case todayDay >= lo && todayDay <= hi:
			row.WriteString(StyleFg.Render(todayGlyph))
		case inHotWindow(c, first, lo, hi):
			row.WriteString(StyleYellow.Render(hotGlyph))
		case lo >= startDay && lo <= endDay:
			row.WriteString(StyleDim.Render(spanGlyph))
		default:
			row.WriteString(idleGlyph)
		}
	}
	return row.String()
}

func containsDeadline(c *domain.Course, first time.Time, lo, hi int) bool {
	for _, d := range c.Deadlines {
		day := daysBetween(first, d.Date)
		if day >= lo && day <= hi {
			return true
		}
	}
	return false
}

func deadlineCellGlyph(c *domain.Course, first time.Time, lo, hi int, now time.Time) string {
	// With several deadlines in one cell the most severe one wins.
	var pick *domain.Deadline
	for _, d := range c.Deadlines {
		day := daysBetween(first, d.Date)
		if day < lo || day > hi {
			continue
		}
		if pick == nil || severity(d, now) > severity(pick, now) {
			pick = d
		}
	}
	switch {
	case pick.IsReached(now):
		return StyleDim.Render(deadlineGlyph)
	case pick.IsDealBreaker:
		return StyleRed.Render(deadlineGlyph)
	case pick.IsHot(now):
		return StyleYellow.Render(deadlineGlyph)
	default:
		return StyleGreen.Render(deadlineGlyph)
	}
}

func severity(d *domain.Deadline, now time.Time) int {
	switch {
	case d.IsReached(now):
		return 0
	case d.IsDealBreaker:
		return 3
	case d.IsHot(now):
		return 2
	default:
		return 1
	}
}

func inHotWindow(c *domain.Course, first time.Time, lo, hi int) bool {
	for _, d := range c.Deadlines {
		hotFrom := daysBetween(first, d.WhenHot())
		due := daysBetween(first, d.Date)
		if hi >= hotFrom && lo < due {
			return true
		}
	}
	return false
}

func axisLabel(first, last time.Time, cells int) string {
	left := first.Format("Jan 2")
	right := last.Format("Jan 2")
	gap := cells - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	return StyleDim.Render(left + strings.Repeat(" ", gap) + right)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
