package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/avirtala/takaraja/internal/domain"
	"github.com/avirtala/takaraja/internal/notify"
	"github.com/avirtala/takaraja/internal/repository"
)

// Defaults for a freshly added deadline.
const (
	DefaultSymbol      = "pencil.and.list.clipboard"
	DefaultGoal        = "A goal to reach in the course"
	DefaultHotLeadDays = 7
	DefaultDueOffset   = 30 * 24 * time.Hour
)

type courseService struct {
	courses   repository.CourseRepo
	scheduler notify.Scheduler
}

// NewCourseService wires a course service over the repository and alert
// scheduler.
func NewCourseService(courses repository.CourseRepo, scheduler notify.Scheduler) CourseService {
	if scheduler == nil {
		scheduler = notify.NoopScheduler{}
	}
	return &courseService{courses: courses, scheduler: scheduler}
}

func (s *courseService) CreateCourse(ctx context.Context, name string, start time.Time) (*domain.Course, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("course name must not be empty")
	}
	c := domain.NewCourse(name, domain.ToMidnight(start))
	if err := s.courses.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *courseService) NewCourseTemplate(ctx context.Context) *domain.Course {
	return s.courses.NewCourseTemplate(ctx)
}

func (s *courseService) ListCourses(ctx context.Context) ([]*domain.Course, error) {
	return s.courses.List(ctx)
}

func (s *courseService) GetCourse(ctx context.Context, name string) (*domain.Course, error) {
	return s.courses.Get(ctx, name)
}

func (s *courseService) NotFinished(ctx context.Context, now time.Time) ([]*domain.Course, error) {
	return s.courses.NotFinished(ctx, now)
}

func (s *courseService) RenameCourse(ctx context.Context, oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return fmt.Errorf("course name must not be empty")
	}
	c, err := s.courses.Get(ctx, oldName)
	if err != nil {
		return err
	}
	if newName == oldName {
		return nil
	}
	if s.courses.Has(ctx, newName) {
		return fmt.Errorf("renaming course %q to %q: %w", oldName, newName, repository.ErrDuplicateName)
	}
	c.Rename(newName)
	if err := s.courses.SaveRenamed(ctx, c, oldName); err != nil {
		// Keep the in-memory name consistent with the files on disk.
		c.Rename(oldName)
		return err
	}
	return nil
}

func (s *courseService) SetStartDate(ctx context.Context, name string, newStart time.Time, shiftDeadlines bool) error {
	c, err := s.courses.Get(ctx, name)
	if err != nil {
		return err
	}
	c.SetStartDate(newStart, shiftDeadlines)
	if err := s.courses.Save(ctx, c); err != nil {
		return err
	}
	if shiftDeadlines {
		for _, d := range c.Deadlines {
			s.scheduleAlert(ctx, c, d)
		}
	}
	return nil
}

func (s *courseService) DeleteCourse(ctx context.Context, name string) error {
	c, err := s.courses.Get(ctx, name)
	if err != nil {
		return err
	}
	if err := s.courses.Delete(ctx, c); err != nil {
		return err
	}
	if ids := c.DeadlineIDs(); len(ids) > 0 {
		if err := s.scheduler.CancelAll(ctx, ids); err != nil {
			log.Printf("takaraja: cancelling alerts for course %q: %v", name, err)
		}
	}
	return nil
}

// NewDeadlineTemplate returns a deadline pre-filled with the defaults: due
// 30 days after the course start, one week hot window, placeholder goal.
func (s *courseService) NewDeadlineTemplate(course *domain.Course) *domain.Deadline {
	return domain.NewDeadline(course.StartDate.Add(DefaultDueOffset), DefaultSymbol, DefaultGoal, DefaultHotLeadDays)
}

func (s *courseService) AddDeadline(ctx context.Context, courseName string, d *domain.Deadline) error {
	if err := validateDeadline(d); err != nil {
		return err
	}
	c, err := s.courses.Get(ctx, courseName)
	if err != nil {
		return err
	}
	c.AddDeadline(d)
	if err := s.courses.Save(ctx, c); err != nil {
		return err
	}
	s.scheduleAlert(ctx, c, d)
	return nil
}

func (s *courseService) EditDeadline(ctx context.Context, courseName string, d *domain.Deadline) error {
	if err := validateDeadline(d); err != nil {
		return err
	}
	c, err := s.courses.Get(ctx, courseName)
	if err != nil {
		return err
	}
	c.UpsertDeadline(d)
	if err := s.courses.Save(ctx, c); err != nil {
		return err
	}
	s.scheduleAlert(ctx, c, d)
	return nil
}

// RemoveDeadline deletes the deadline and cancels its pending alert.
// Removing an unknown deadline identifier fails with a not-found error
// rather than passing silently.
func (s *courseService) RemoveDeadline(ctx context.Context, courseName, deadlineID string) error {
	c, err := s.courses.Get(ctx, courseName)
	if err != nil {
		return err
	}
	if !c.RemoveDeadline(deadlineID) {
		return fmt.Errorf("deadline %q not found in course %q", deadlineID, courseName)
	}
	if err := s.courses.Save(ctx, c); err != nil {
		return err
	}
	if err := s.scheduler.Cancel(ctx, deadlineID); err != nil {
		log.Printf("takaraja: cancelling alert %s: %v", deadlineID, err)
	}
	return nil
}

func validateDeadline(d *domain.Deadline) error {
	if strings.TrimSpace(d.Goal) == "" {
		return fmt.Errorf("deadline goal must not be empty")
	}
	if d.BecomesHotDaysBefore < 0 {
		return fmt.Errorf("hot lead time must not be negative")
	}
	return nil
}

// scheduleAlert updates the pending alert for a deadline. Scheduling is
// best-effort and never fails the persistence path.
func (s *courseService) scheduleAlert(ctx context.Context, c *domain.Course, d *domain.Deadline) {
	err := s.scheduler.Schedule(ctx, notify.Alert{
		AlertID:    d.UUID,
		Title:      d.Goal,
		CourseName: c.Name,
		AlertAt:    d.WhenHot(),
		DeadlineAt: d.Date,
	})
	if err != nil {
		log.Printf("takaraja: scheduling alert for deadline %s: %v", d.UUID, err)
	}
}
