package repository

import (
	"context"
	"time"

	"github.com/avirtala/takaraja/internal/domain"
)

// CourseRepo is the catalog of all courses: an in-memory set kept consistent
// with one JSON document per course in a storage directory. At most one
// course exists per name at any time.
type CourseRepo interface {
	// Scan replaces the in-memory set with the courses found in the storage
	// directory, creating the directory when missing. Missing filesystem
	// access degrades to an empty catalog; unreadable or malformed files are
	// skipped and logged, never fatal.
	Scan(ctx context.Context) error

	// List returns all courses ordered by name.
	List(ctx context.Context) ([]*domain.Course, error)

	// Get returns the course with the exact name, or ErrFileNotFound.
	Get(ctx context.Context, name string) (*domain.Course, error)

	// Has reports whether a course with the exact name is cataloged.
	Has(ctx context.Context, name string) bool

	// NotFinished returns, ordered by name, the courses whose latest
	// deadline (if any) has not yet passed.
	NotFinished(ctx context.Context, now time.Time) ([]*domain.Course, error)

	// Save catalogs the course and writes its document synchronously.
	// Returns ErrDuplicateName when the name belongs to a different course.
	Save(ctx context.Context, c *domain.Course) error

	// SaveRenamed saves the course under its current name and then removes
	// the file and catalog entry previously known as oldName. The new file
	// is durably written before the old one is touched.
	SaveRenamed(ctx context.Context, c *domain.Course, oldName string) error

	// Delete moves the course document to the recoverable trash and drops
	// the catalog entry. On failure the catalog is left untouched and a
	// FileDeleteError is returned.
	Delete(ctx context.Context, c *domain.Course) error

	// Restore decodes a single course document from disk, bypassing the
	// catalog. ErrFileNotFound when absent, DecodeError when malformed.
	Restore(ctx context.Context, name string) (*domain.Course, error)

	// NewCourseTemplate returns an uncataloged course with an
	// auto-incrementing placeholder name and start = now.
	NewCourseTemplate(ctx context.Context) *domain.Course
}
