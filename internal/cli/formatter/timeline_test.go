package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/avirtala/takaraja/internal/domain"
	"github.com/avirtala/takaraja/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTimeline_Empty(t *testing.T) {
	out := RenderTimeline(nil, time.Now(), 80)
	assert.Contains(t, out, "no unfinished courses")
}

func TestRenderTimeline_OneRowPerCourse(t *testing.T) {
	now := testutil.Day(2025, time.February, 1)

	algo := testutil.NewTestCourse("Algorithms")
	algo.AddDeadline(testutil.NewTestDeadline("Final", testutil.Day(2025, time.March, 5)))
	comp := domain.NewCourse("Compilers", testutil.Day(2025, time.January, 13))
	comp.AddDeadline(testutil.NewTestDeadline("Midterm", testutil.Day(2025, time.February, 20)))

	out := RenderTimeline([]*domain.Course{algo, comp}, now, 80)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4, "axis + two courses + legend")
	assert.Contains(t, lines[1], "Algorithms")
	assert.Contains(t, lines[1], deadlineGlyph)
	assert.Contains(t, lines[2], "Compilers")
	assert.Contains(t, lines[3], "today")
}

func TestRenderTimeline_TruncatesLongNames(t *testing.T) {
	now := testutil.Day(2025, time.February, 1)
	c := domain.NewCourse("Introduction to Computational Complexity", testutil.Day(2025, time.January, 6))
	c.AddDeadline(testutil.NewTestDeadline("Final", testutil.Day(2025, time.March, 5)))

	out := RenderTimeline([]*domain.Course{c}, now, 80)
	assert.Contains(t, out, "…")
	assert.NotContains(t, out, "Complexity")
}

func TestTimelineRange_StartsOnMonday(t *testing.T) {
	now := testutil.Day(2025, time.February, 1)
	// 2025-01-15 is a Wednesday; the plot should open on Monday the 13th.
	c := domain.NewCourse("Algorithms", testutil.Day(2025, time.January, 15))

	first, last := timelineRange([]*domain.Course{c}, now)
	assert.Equal(t, time.Monday, first.Weekday())
	assert.True(t, first.Equal(testutil.Day(2025, time.January, 13)))
	assert.True(t, last.After(first))
}

func TestTimelineRange_EndsAtLatestDeadline(t *testing.T) {
	now := testutil.Day(2025, time.February, 1)
	c := testutil.NewTestCourse("Algorithms")
	c.AddDeadline(testutil.NewTestDeadline("Final", testutil.Day(2025, time.May, 30)))

	_, last := timelineRange([]*domain.Course{c}, now)
	assert.True(t, last.Equal(testutil.Day(2025, time.May, 30)))
}

func TestDaysBetween(t *testing.T) {
	a := testutil.Day(2025, time.January, 1)
	b := testutil.Day(2025, time.January, 11)
	assert.Equal(t, 10, daysBetween(a, b))
	assert.Equal(t, -10, daysBetween(b, a))
}
