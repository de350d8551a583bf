package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/avirtala/takaraja/internal/domain"
)

const (
	courseExt = ".json"
	trashDir  = ".trash"
)

// FileCourseRepo implements CourseRepo over a directory holding one
// pretty-printed JSON document per course, named <course-name>.json. The
// directory listing is the source of truth; there is no manifest file.
type FileCourseRepo struct {
	dir string

	mu      sync.RWMutex
	courses map[string]*domain.Course
}

// NewFileCourseRepo creates a repository over the given storage directory.
// The directory is created on first access; call Scan to populate the
// catalog.
func NewFileCourseRepo(dir string) *FileCourseRepo {
	return &FileCourseRepo{
		dir:     dir,
		courses: make(map[string]*domain.Course),
	}
}

// Dir returns the storage directory location.
func (r *FileCourseRepo) Dir() string { return r.dir }

// acquireDir makes the storage directory available and returns a release
// function. Every directory scan is bracketed by this pair so access is
// released regardless of how the scan ends.
func (r *FileCourseRepo) acquireDir() (release func(), err error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}
	handle, err := os.Open(r.dir)
	if err != nil {
		return nil, fmt.Errorf("opening storage directory: %w", err)
	}
	return func() { handle.Close() }, nil
}

func (r *FileCourseRepo) coursePath(name string) string {
	return filepath.Join(r.dir, name+courseExt)
}

// validName rejects names that are empty or would escape the storage
// directory when used as a file name.
func validName(name string) error {
	if name == "" {
		return errors.New("course name is empty")
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return fmt.Errorf("course name %q is not usable as a file name", name)
	}
	return nil
}

// encode renders the course document: UTF-8, two-space indent, keys in
// lexicographic order (guaranteed by field declaration order in the domain
// structs), trailing newline. Re-encoding a decoded document is
// byte-identical.
func encode(c *domain.Course) ([]byte, error) {
	c.SortDeadlines()
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Scan rebuilds the catalog from the directory listing. A failure to gain
// filesystem access leaves an empty catalog rather than failing startup;
// individual unreadable or malformed files are skipped and logged.
func (r *FileCourseRepo) Scan(ctx context.Context) error {
	found := make(map[string]*domain.Course)

	release, err := r.acquireDir()
	if err != nil {
		log.Printf("takaraja: no access to storage directory %s: %v", r.dir, err)
		r.mu.Lock()
		r.courses = found
		r.mu.Unlock()
		return nil
	}
	defer release()

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		log.Printf("takaraja: listing storage directory %s: %v", r.dir, err)
		r.mu.Lock()
		r.courses = found
		r.mu.Unlock()
		return nil
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), courseExt) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), courseExt)
		course, err := r.Restore(ctx, name)
		if err != nil {
			log.Printf("takaraja: skipping %s: %v", entry.Name(), err)
			continue
		}
		found[course.Name] = course
	}

	r.mu.Lock()
	r.courses = found
	r.mu.Unlock()
	return nil
}

func (r *FileCourseRepo) List(ctx context.Context) ([]*domain.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Course, 0, len(r.courses))
	for _, c := range r.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *FileCourseRepo) Get(ctx context.Context, name string) (*domain.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.courses[name]
	if !ok {
		return nil, fmt.Errorf("course %q: %w", name, ErrFileNotFound)
	}
	return c, nil
}

func (r *FileCourseRepo) Has(ctx context.Context, name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.courses[name]
	return ok
}

func (r *FileCourseRepo) NotFinished(ctx context.Context, now time.Time) ([]*domain.Course, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Course, 0, len(all))
	for _, c := range all {
		if end := c.EndDate(); end != nil && end.Before(now) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *FileCourseRepo) Save(ctx context.Context, c *domain.Course) error {
	if err := validName(c.Name); err != nil {
		return &FileSaveError{Name: c.Name, Err: err}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.courses[c.Name]; ok && existing.UUID != c.UUID {
		return fmt.Errorf("saving course %q: %w", c.Name, ErrDuplicateName)
	}
	if err := r.writeFile(c); err != nil {
		return err
	}
	r.courses[c.Name] = c
	return nil
}

// writeFile persists the document with an atomic replace: write to a
// temporary file in the same directory, then rename over the target.
// Caller holds the lock.
func (r *FileCourseRepo) writeFile(c *domain.Course) error {
	data, err := encode(c)
	if err != nil {
		return &FileSaveError{Name: c.Name, Err: err}
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return &FileSaveError{Name: c.Name, Err: err}
	}
	path := r.coursePath(c.Name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &FileSaveError{Name: c.Name, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &FileSaveError{Name: c.Name, Err: err}
	}
	return nil
}

// SaveRenamed writes the course under its current name first, and only then
// removes the file and catalog entry for oldName. The ordering avoids data
// loss when the removal fails.
func (r *FileCourseRepo) SaveRenamed(ctx context.Context, c *domain.Course, oldName string) error {
	if err := r.Save(ctx, c); err != nil {
		return err
	}
	if oldName == c.Name {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := os.Remove(r.coursePath(oldName)); err != nil && !os.IsNotExist(err) {
		return &FileDeleteError{Name: oldName, Err: err}
	}
	if stale, ok := r.courses[oldName]; ok && stale.UUID == c.UUID {
		delete(r.courses, oldName)
	}
	return nil
}

// Delete moves the course document into the .trash subdirectory so the
// delete is recoverable, then drops the catalog entry. The catalog is left
// untouched when the move fails.
func (r *FileCourseRepo) Delete(ctx context.Context, c *domain.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	path := r.coursePath(c.Name)
	if _, err := os.Stat(path); err == nil {
		trash := filepath.Join(r.dir, trashDir)
		if err := os.MkdirAll(trash, 0o755); err != nil {
			return &FileDeleteError{Name: c.Name, Err: err}
		}
		target := filepath.Join(trash, fmt.Sprintf("%s-%d%s", c.Name, time.Now().UnixNano(), courseExt))
		if err := os.Rename(path, target); err != nil {
			return &FileDeleteError{Name: c.Name, Err: err}
		}
	} else if !os.IsNotExist(err) {
		return &FileDeleteError{Name: c.Name, Err: err}
	}

	delete(r.courses, c.Name)
	return nil
}

func (r *FileCourseRepo) Restore(ctx context.Context, name string) (*domain.Course, error) {
	path := r.coursePath(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("course %q: %w", name, ErrFileNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var c domain.Course
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	c.SortDeadlines()
	return &c, nil
}

// NewCourseTemplate returns a fresh, uncataloged course named "New Course N"
// where N skips names already in use.
func (r *FileCourseRepo) NewCourseTemplate(ctx context.Context) *domain.Course {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 1
	name := fmt.Sprintf("New Course %d", n)
	for {
		if _, taken := r.courses[name]; !taken {
			break
		}
		n++
		name = fmt.Sprintf("New Course %d", n)
	}
	return domain.NewCourse(name, time.Now())
}
