package cli

import (
	"testing"
	"time"

	"github.com/avirtala/takaraja/internal/repository"
	"github.com/avirtala/takaraja/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := parseDate("2025-01-06")
	require.NoError(t, err)
	assert.True(t, d.Equal(testutil.Day(2025, time.January, 6)))

	d, err = parseDate("2025-01-06 14:30")
	require.NoError(t, err)
	assert.Equal(t, 14, d.Hour())
	assert.Equal(t, 30, d.Minute())
}

func TestParseDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "06.01.2025", "2025-13-40", "soon"} {
		_, err := parseDate(input)
		assert.ErrorIs(t, err, repository.ErrInvalidDate, "input %q", input)
	}
}

func TestResolveDeadline(t *testing.T) {
	c := testutil.NewTestCourse("Algorithms")
	midterm := testutil.NewTestDeadline("Midterm", testutil.Day(2025, time.February, 5))
	final := testutil.NewTestDeadline("Final", testutil.Day(2025, time.March, 5))
	c.AddDeadline(midterm)
	c.AddDeadline(final)

	got, err := resolveDeadline(c, midterm.UUID)
	require.NoError(t, err)
	assert.Equal(t, midterm.UUID, got.UUID)

	got, err = resolveDeadline(c, final.UUID[:8])
	require.NoError(t, err)
	assert.Equal(t, final.UUID, got.UUID)

	got, err = resolveDeadline(c, "Midterm")
	require.NoError(t, err)
	assert.Equal(t, midterm.UUID, got.UUID)
}

func TestResolveDeadline_Errors(t *testing.T) {
	c := testutil.NewTestCourse("Algorithms")
	c.AddDeadline(testutil.NewTestDeadline("Midterm", testutil.Day(2025, time.February, 5)))

	_, err := resolveDeadline(c, "")
	assert.Error(t, err)

	_, err = resolveDeadline(c, "nope")
	assert.ErrorContains(t, err, "not found")

	// Twin goals are ambiguous.
	c.AddDeadline(testutil.NewTestDeadline("Exam", testutil.Day(2025, time.March, 5)))
	c.AddDeadline(testutil.NewTestDeadline("Exam", testutil.Day(2025, time.April, 5)))
	_, err = resolveDeadline(c, "Exam")
	assert.ErrorContains(t, err, "ambiguous")
}
