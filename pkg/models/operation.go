package models

import (
	"errors"
	"time"
)

// Strategy names the fingerprinting strategy of a run
type Strategy string

const (
	// StrategyHash compares files by content digest
	StrategyHash Strategy = "hash"
	// StrategyNameSize compares files by base name and size
	StrategyNameSize Strategy = "namesize"
)

// CollisionPolicy decides which target survives when several share a fingerprint
type CollisionPolicy string

const (
	// LastWins keeps the target seen last in traversal order
	LastWins CollisionPolicy = "last-wins"
	// FirstWins keeps the target seen first in traversal order
	FirstWins CollisionPolicy = "first-wins"
)

// ErrNotDirectory is returned when a tree root is missing or is not a directory
var ErrNotDirectory = errors.New("not a directory")

// Operation represents the settings of one comparison run
type Operation struct {
	ID              string
	SourcePath      string
	TargetPath      string
	Strategy        Strategy
	Algorithm       string
	CollisionPolicy CollisionPolicy
	ExcludePatterns []string
	MaxWorkers      int
	BandwidthLimit  int64 // bytes per second, 0 = unlimited
	BufferSize      int
	CreatedAt       time.Time
}

// Validate checks if the operation configuration is valid
func (op *Operation) Validate() error {
	if op.SourcePath == "" {
		return &ValidationError{Field: "SourcePath", Message: "source path is required"}
	}
	if op.TargetPath == "" {
		return &ValidationError{Field: "TargetPath", Message: "target path is required"}
	}
	switch op.Strategy {
	case StrategyHash, StrategyNameSize:
	default:
		return &ValidationError{Field: "Strategy", Message: "unknown strategy " + string(op.Strategy)}
	}
	switch op.CollisionPolicy {
	case LastWins, FirstWins:
	default:
		return &ValidationError{Field: "CollisionPolicy", Message: "unknown collision policy " + string(op.CollisionPolicy)}
	}
	if op.MaxWorkers < 1 {
		return &ValidationError{Field: "MaxWorkers", Message: "max workers must be at least 1"}
	}
	if op.BufferSize < 512 {
		return &ValidationError{Field: "BufferSize", Message: "buffer size must be at least 512 bytes"}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
