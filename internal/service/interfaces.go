package service

import (
	"context"
	"time"

	"github.com/avirtala/takaraja/internal/domain"
)

// CourseService orchestrates course and deadline mutations: every mutating
// call persists synchronously through the repository, then updates the alert
// ledger best-effort.
type CourseService interface {
	CreateCourse(ctx context.Context, name string, start time.Time) (*domain.Course, error)
	NewCourseTemplate(ctx context.Context) *domain.Course
	ListCourses(ctx context.Context) ([]*domain.Course, error)
	GetCourse(ctx context.Context, name string) (*domain.Course, error)
	NotFinished(ctx context.Context, now time.Time) ([]*domain.Course, error)
	RenameCourse(ctx context.Context, oldName, newName string) error
	SetStartDate(ctx context.Context, name string, newStart time.Time, shiftDeadlines bool) error
	DeleteCourse(ctx context.Context, name string) error

	NewDeadlineTemplate(course *domain.Course) *domain.Deadline
	AddDeadline(ctx context.Context, courseName string, d *domain.Deadline) error
	EditDeadline(ctx context.Context, courseName string, d *domain.Deadline) error
	RemoveDeadline(ctx context.Context, courseName, deadlineID string) error
}
