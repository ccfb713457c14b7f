package cli

import (
	"context"
	"errors"
	"io/fs"

	"github.com/sdejongh/cmpdirs/internal/platform"
	"github.com/sdejongh/cmpdirs/pkg/models"
)

// InputError reports bad arguments, flags or configuration
type InputError struct {
	Err error
}

func (e *InputError) Error() string { return e.Err.Error() }
func (e *InputError) Unwrap() error { return e.Err }

// RunError reports a comparison that did not complete
type RunError struct {
	Status models.Status
	Err    error
}

func (e *RunError) Error() string { return e.Err.Error() }
func (e *RunError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by the root command to a process exit code
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var runErr *RunError
	if errors.As(err, &runErr) {
		return runErr.Status.ExitCode()
	}
	return 1
}

// IsExpected reports whether err is a user-facing condition rather than a bug
func IsExpected(err error) bool {
	var (
		inputErr *InputError
		valErr   *models.ValidationError
		pathErr  *platform.PathError
	)
	switch {
	case errors.As(err, &inputErr), errors.As(err, &valErr), errors.As(err, &pathErr):
		return true
	case errors.Is(err, models.ErrNotDirectory):
		return true
	case errors.Is(err, context.Canceled):
		return true
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return true
	}
	return false
}
