package models

import (
	"context"
	"errors"
	"time"
)

// Report represents the results of a comparison run
type Report struct {
	// Run details
	RunID      string
	SourcePath string
	TargetPath string
	Strategy   Strategy
	Algorithm  string

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Statistics
	Stats Statistics

	// Result is nil unless Status is StatusSuccess
	Result *ComparisonResult

	// Overall status
	Status Status
}

// Statistics holds comparison metrics
type Statistics struct {
	SourceFiles int
	TargetFiles int
	SourceBytes int64
	TargetBytes int64

	// Budget is the summed cost estimate of both trees
	Budget int64

	MappedFiles  int
	MissingFiles int
}

// Status represents the overall result
type Status string

const (
	// StatusSuccess indicates the comparison completed
	StatusSuccess Status = "success"
	// StatusFailed indicates the comparison failed and produced no result
	StatusFailed Status = "failed"
	// StatusCancelled indicates the comparison was interrupted
	StatusCancelled Status = "cancelled"
)

// StatusOf returns the status of a run that ended with err
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return StatusCancelled
	default:
		return StatusFailed
	}
}

// ExitCode returns the process exit code for the status
func (s Status) ExitCode() int {
	switch s {
	case StatusSuccess:
		return 0
	case StatusFailed:
		return 2
	case StatusCancelled:
		return 3
	default:
		return 2
	}
}
