package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/avirtala/takaraja/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *FileCourseRepo {
	t.Helper()
	return NewFileCourseRepo(t.TempDir())
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestSaveAndRestore_RoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	c := domain.NewCourse("Algorithms", date(2025, 1, 6))
	c.AddDeadline(domain.NewDeadline(date(2025, 2, 5), "hammer", "Midterm", 7))
	d := domain.NewDeadline(date(2025, 3, 5), "trophy", "Final", 7)
	d.IsDealBreaker = true
	c.AddDeadline(d)

	require.NoError(t, repo.Save(ctx, c))

	restored, err := repo.Restore(ctx, "Algorithms")
	require.NoError(t, err)
	assertCourseEqual(t, c, restored)
}

// assertCourseEqual checks structural equality. Timestamps are compared as
// instants to stay independent of time.Time's internal representation.
func assertCourseEqual(t *testing.T, want, got *domain.Course) {
	t.Helper()
	assert.Equal(t, want.UUID, got.UUID)
	assert.Equal(t, want.Name, got.Name)
	assert.True(t, got.StartDate.Equal(want.StartDate))
	require.Len(t, got.Deadlines, len(want.Deadlines))
	for i, wd := range want.Deadlines {
		gd := got.Deadlines[i]
		assert.Equal(t, wd.UUID, gd.UUID)
		assert.True(t, gd.Date.Equal(wd.Date))
		assert.Equal(t, wd.Symbol, gd.Symbol)
		assert.Equal(t, wd.Goal, gd.Goal)
		assert.Equal(t, wd.BecomesHotDaysBefore, gd.BecomesHotDaysBefore)
		assert.Equal(t, wd.IsDealBreaker, gd.IsDealBreaker)
	}
}

func TestSaveAndRestore_EmptyCourse(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	c := domain.NewCourse("Empty", date(2025, 1, 6))
	require.NoError(t, repo.Save(ctx, c))

	restored, err := repo.Restore(ctx, "Empty")
	require.NoError(t, err)
	assertCourseEqual(t, c, restored)
}

func TestSave_Idempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	c := domain.NewCourse("Algorithms", date(2025, 1, 6))
	c.AddDeadline(domain.NewDeadline(date(2025, 2, 5), "hammer", "Midterm", 7))

	require.NoError(t, repo.Save(ctx, c))
	first, err := os.ReadFile(filepath.Join(repo.Dir(), "Algorithms.json"))
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, c))
	second, err := os.ReadFile(filepath.Join(repo.Dir(), "Algorithms.json"))
	require.NoError(t, err)

	assert.Equal(t, first, second, "store twice with no mutation must be byte-identical")
}

func TestSave_SortedKeysOnDisk(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	c := domain.NewCourse("Algorithms", date(2025, 1, 6))
	c.AddDeadline(domain.NewDeadline(date(2025, 2, 5), "hammer", "Midterm", 7))
	require.NoError(t, repo.Save(ctx, c))

	data, err := os.ReadFile(filepath.Join(repo.Dir(), "Algorithms.json"))
	require.NoError(t, err)
	text := string(data)

	// Document keys appear in lexicographic order.
	assert.Less(t, indexOf(t, text, `"deadlines"`), indexOf(t, text, `"name"`))
	assert.Less(t, indexOf(t, text, `"name"`), indexOf(t, text, `"startDate"`))
	assert.Less(t, indexOf(t, text, `"startDate"`), indexOf(t, text, `"uuid"`))
	assert.Less(t, indexOf(t, text, `"becomesHotDaysBefore"`), indexOf(t, text, `"date"`))
	assert.Less(t, indexOf(t, text, `"goal"`), indexOf(t, text, `"isDealBreaker"`))
	assert.Less(t, indexOf(t, text, `"isDealBreaker"`), indexOf(t, text, `"symbol"`))
}

func indexOf(t *testing.T, haystack, needle string) int {
	t.Helper()
	i := strings.Index(haystack, needle)
	require.GreaterOrEqual(t, i, 0, "expected %s in document", needle)
	return i
}

func TestSave_DuplicateName(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.NewCourse("Algorithms", date(2025, 1, 6))))

	other := domain.NewCourse("Algorithms", date(2025, 2, 1))
	err := repo.Save(ctx, other)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestSave_SameCourseTwiceIsNotADuplicate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	c := domain.NewCourse("Algorithms", date(2025, 1, 6))
	require.NoError(t, repo.Save(ctx, c))
	c.AddDeadline(domain.NewDeadline(date(2025, 2, 5), "hammer", "Midterm", 7))
	require.NoError(t, repo.Save(ctx, c))
}

func TestSave_RejectsUnusableNames(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{"", "a/b", `a\b`, "../escape"} {
		c := domain.NewCourse(name, date(2025, 1, 6))
		err := repo.Save(ctx, c)
		var saveErr *FileSaveError
		assert.ErrorAs(t, err, &saveErr, "name %q should be rejected", name)
	}
}

func TestSaveRenamed(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	c := domain.NewCourse("Algoritms", date(2025, 1, 6))
	require.NoError(t, repo.Save(ctx, c))

	c.Rename("Algorithms")
	require.NoError(t, repo.SaveRenamed(ctx, c, "Algoritms"))

	_, err := os.Stat(filepath.Join(repo.Dir(), "Algorithms.json"))
	assert.NoError(t, err, "new file must exist")
	_, err = os.Stat(filepath.Join(repo.Dir(), "Algoritms.json"))
	assert.True(t, os.IsNotExist(err), "old file must be gone")

	assert.True(t, repo.Has(ctx, "Algorithms"))
	assert.False(t, repo.Has(ctx, "Algoritms"))
}

func TestSaveRenamed_SameName(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	c := domain.NewCourse("Algorithms", date(2025, 1, 6))
	require.NoError(t, repo.Save(ctx, c))
	require.NoError(t, repo.SaveRenamed(ctx, c, "Algorithms"))
	assert.True(t, repo.Has(ctx, "Algorithms"))
}

func TestDelete_MovesFileToTrash(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	c := domain.NewCourse("Algorithms", date(2025, 1, 6))
	require.NoError(t, repo.Save(ctx, c))
	require.NoError(t, repo.Delete(ctx, c))

	_, err := os.Stat(filepath.Join(repo.Dir(), "Algorithms.json"))
	assert.True(t, os.IsNotExist(err))
	assert.False(t, repo.Has(ctx, "Algorithms"))

	// Recoverable: the document lives on under .trash.
	entries, err := os.ReadDir(filepath.Join(repo.Dir(), ".trash"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestDelete_NeverSavedCourse(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	c := repo.NewCourseTemplate(ctx)
	assert.NoError(t, repo.Delete(ctx, c), "deleting an unsaved course is a no-op")
}

func TestRestore_FileNotFound(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.Restore(context.Background(), "Missing")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestRestore_MalformedDocument(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, os.MkdirAll(repo.Dir(), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(repo.Dir(), "Broken.json"), []byte("{not json"), 0o644))

	_, err := repo.Restore(context.Background(), "Broken")
	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestRestore_SortsDeadlines(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, os.MkdirAll(repo.Dir(), 0o755))

	// Hand-written document with deadlines out of order.
	doc := `{
  "deadlines": [
    {
      "becomesHotDaysBefore": 7,
      "date": "2025-03-05T00:00:00Z",
      "goal": "Final",
      "isDealBreaker": true,
      "symbol": "trophy",
      "uuid": "b1"
    },
    {
      "becomesHotDaysBefore": 2,
      "date": "2025-01-20T00:00:00Z",
      "goal": "Quiz",
      "isDealBreaker": false,
      "symbol": "hammer",
      "uuid": "a1"
    }
  ],
  "name": "Algorithms",
  "startDate": "2025-01-06T00:00:00Z",
  "uuid": "c1"
}
`
	require.NoError(t, os.WriteFile(filepath.Join(repo.Dir(), "Algorithms.json"), []byte(doc), 0o644))

	c, err := repo.Restore(ctx, "Algorithms")
	require.NoError(t, err)
	require.Len(t, c.Deadlines, 2)
	assert.Equal(t, "Quiz", c.Deadlines[0].Goal)
	assert.Equal(t, "Final", c.Deadlines[1].Goal)
}

func TestScan_PopulatesCatalog(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.NewCourse("Algorithms", date(2025, 1, 6))))
	require.NoError(t, repo.Save(ctx, domain.NewCourse("Compilers", date(2025, 1, 13))))

	fresh := NewFileCourseRepo(repo.Dir())
	require.NoError(t, fresh.Scan(ctx))

	courses, err := fresh.List(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Algorithms", courses[0].Name)
	assert.Equal(t, "Compilers", courses[1].Name)
}

func TestScan_SkipsMalformedFiles(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.NewCourse("Algorithms", date(2025, 1, 6))))
	require.NoError(t, os.WriteFile(filepath.Join(repo.Dir(), "Broken.json"), []byte("{"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(repo.Dir(), "notes.txt"), []byte("not a course"), 0o644))

	fresh := NewFileCourseRepo(repo.Dir())
	require.NoError(t, fresh.Scan(ctx))

	courses, err := fresh.List(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Algorithms", courses[0].Name)
}

func TestScan_MissingDirectoryIsCreated(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "courses")
	repo := NewFileCourseRepo(dir)
	require.NoError(t, repo.Scan(context.Background()))

	stat, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, stat.IsDir())

	courses, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestScan_InaccessibleDirectoryDegradesToEmpty(t *testing.T) {
	// A file standing where the directory should be makes MkdirAll fail.
	base := t.TempDir()
	blocker := filepath.Join(base, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	repo := NewFileCourseRepo(filepath.Join(blocker, "courses"))
	require.NoError(t, repo.Scan(context.Background()), "scan failure must not be fatal")

	courses, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestNotFinished(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := date(2025, 6, 1)

	done := domain.NewCourse("Done", date(2025, 1, 6))
	done.AddDeadline(domain.NewDeadline(date(2025, 2, 5), "hammer", "Midterm", 7))
	running := domain.NewCourse("Running", date(2025, 1, 6))
	running.AddDeadline(domain.NewDeadline(date(2025, 8, 1), "trophy", "Final", 7))
	open := domain.NewCourse("Open", date(2025, 1, 6))

	for _, c := range []*domain.Course{done, running, open} {
		require.NoError(t, repo.Save(ctx, c))
	}

	courses, err := repo.NotFinished(ctx, now)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Open", courses[0].Name)
	assert.Equal(t, "Running", courses[1].Name)
}

func TestNewCourseTemplate_AutoIncrements(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := repo.NewCourseTemplate(ctx)
	assert.Equal(t, "New Course 1", first.Name)

	require.NoError(t, repo.Save(ctx, first))
	second := repo.NewCourseTemplate(ctx)
	assert.Equal(t, "New Course 2", second.Name)
	assert.False(t, repo.Has(ctx, second.Name), "template is not persisted")
}

func TestErrors_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	var err error = &FileSaveError{Name: "X", Err: cause}
	assert.ErrorIs(t, err, cause)
	err = &FileDeleteError{Name: "X", Err: cause}
	assert.ErrorIs(t, err, cause)
	err = &DecodeError{Path: "X.json", Err: cause}
	assert.ErrorIs(t, err, cause)
}
