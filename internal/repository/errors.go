package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDate marks a date that could not be parsed or is logically
	// invalid for the operation.
	ErrInvalidDate = errors.New("invalid date")

	// ErrFileNotFound is returned when a restore is requested for a course
	// name with no backing file.
	ErrFileNotFound = errors.New("course file does not exist")

	// ErrDuplicateName is returned when a save would collide with a
	// different course already using the name.
	ErrDuplicateName = errors.New("course name already in use")
)

// FileSaveError reports a failed write of a course document.
type FileSaveError struct {
	Name string
	Err  error
}

func (e *FileSaveError) Error() string {
	return fmt.Sprintf("saving course %q: %v", e.Name, e.Err)
}

func (e *FileSaveError) Unwrap() error { return e.Err }

// FileDeleteError reports a failed delete of a course document, carrying the
// underlying reason. The in-memory catalog is left untouched when this is
// returned.
type FileDeleteError struct {
	Name string
	Err  error
}

func (e *FileDeleteError) Error() string {
	return fmt.Sprintf("deleting course %q: %v", e.Name, e.Err)
}

func (e *FileDeleteError) Unwrap() error { return e.Err }

// DecodeError reports a malformed course document.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
