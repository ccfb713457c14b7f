// Package match classifies source files as mapped or missing against a
// lookup table built from target fingerprints.
package match

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sdejongh/cmpdirs/pkg/fingerprint"
	"github.com/sdejongh/cmpdirs/pkg/logging"
	"github.com/sdejongh/cmpdirs/pkg/models"
	"github.com/sdejongh/cmpdirs/pkg/storage"
)

// Side is one tree of a comparison: its files in traversal order and the
// backend they are read from
type Side struct {
	Backend storage.Backend
	Files   []models.FileEntry
}

// Options configure a Matcher
type Options struct {
	// Workers bounds concurrent fingerprinting, values below 2 run sequentially
	Workers int
	// Policy is the collision policy of the lookup table, default models.LastWins
	Policy models.CollisionPolicy
	// Progress receives the work reported by the strategy
	Progress fingerprint.ProgressFunc
	// Logger receives debug events, nil disables logging
	Logger logging.Logger
}

// Matcher finds source files with no equivalent in a target tree
type Matcher struct {
	strategy fingerprint.Strategy
	workers  int
	policy   models.CollisionPolicy
	progress fingerprint.ProgressFunc
	logger   logging.Logger
}

// NewMatcher creates a matcher using the given strategy for both trees
func NewMatcher(strategy fingerprint.Strategy, opts Options) *Matcher {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Policy == "" {
		opts.Policy = models.LastWins
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNullLogger()
	}
	return &Matcher{
		strategy: strategy,
		workers:  opts.Workers,
		policy:   opts.Policy,
		progress: opts.Progress,
		logger:   opts.Logger,
	}
}

// FindMissing fingerprints every target file into a lookup table, then
// classifies each source file in order. Mapped and Missing both keep source
// order regardless of worker count. Any error aborts the comparison and no
// partial result is returned.
func (m *Matcher) FindMissing(ctx context.Context, source, target Side) (*models.ComparisonResult, error) {
	table, err := m.BuildTable(ctx, target)
	if err != nil {
		return nil, err
	}

	sourceFPs, err := m.fingerprintAll(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}

	result := &models.ComparisonResult{
		Mapped:  []models.MappedPair{},
		Missing: []models.FileEntry{},
	}
	for i, fp := range sourceFPs {
		if fp.Kind != m.strategy.Kind() {
			return nil, fmt.Errorf("%w: expected %s, got %s", models.ErrMixedFingerprints, m.strategy.Kind(), fp.Kind)
		}
		if targetEntry, ok := table.Lookup(fp); ok {
			result.Mapped = append(result.Mapped, models.MappedPair{Source: source.Files[i], Target: targetEntry})
		} else {
			result.Missing = append(result.Missing, source.Files[i])
		}
	}

	m.logger.Debug(ctx, "source tree classified", logging.Fields{
		"mapped":  len(result.Mapped),
		"missing": len(result.Missing),
	})

	return result, nil
}

// BuildTable fingerprints the target tree and records every file in
// traversal order under the matcher's collision policy
func (m *Matcher) BuildTable(ctx context.Context, target Side) (*LookupTable, error) {
	fps, err := m.fingerprintAll(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	table := NewLookupTable(m.policy, len(fps))
	for i, fp := range fps {
		if fp.Kind != m.strategy.Kind() {
			return nil, fmt.Errorf("%w: expected %s, got %s", models.ErrMixedFingerprints, m.strategy.Kind(), fp.Kind)
		}
		dropped, err := table.Record(fp, target.Files[i])
		if err != nil {
			return nil, err
		}
		if dropped != nil {
			m.logger.Debug(ctx, "duplicate target fingerprint", logging.Fields{
				"fingerprint": fp.String(),
				"dropped":     dropped.Path,
				"policy":      string(m.policy),
			})
		}
	}

	m.logger.Debug(ctx, "target lookup table built", logging.Fields{
		"files":        len(target.Files),
		"fingerprints": table.Len(),
	})

	return table, nil
}

// fingerprintAll returns one fingerprint per file, index-aligned with side.Files
func (m *Matcher) fingerprintAll(ctx context.Context, side Side) ([]models.Fingerprint, error) {
	fps := make([]models.Fingerprint, len(side.Files))

	if m.workers <= 1 || len(side.Files) <= 1 {
		for i, entry := range side.Files {
			fp, err := m.strategy.Fingerprint(ctx, side.Backend, entry, m.progress)
			if err != nil {
				return nil, err
			}
			fps[i] = fp
		}
		return fps, nil
	}

	if err := m.fingerprintParallel(ctx, side, fps); err != nil {
		return nil, err
	}
	return fps, nil
}

// fingerprintParallel fills fps using a bounded pool of goroutines.
// Results are stored by index so completion order never leaks into the output.
func (m *Matcher) fingerprintParallel(parent context.Context, side Side, fps []models.Fingerprint) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	errs := make([]error, len(side.Files))
	semaphore := make(chan struct{}, m.workers)
	var wg sync.WaitGroup

dispatch:
	for i := range side.Files {
		select {
		case semaphore <- struct{}{}:
		case <-ctx.Done():
			break dispatch
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-semaphore }()

			fp, err := m.strategy.Fingerprint(ctx, side.Backend, side.Files[i], m.progress)
			if err != nil {
				errs[i] = err
				cancel()
				return
			}
			fps[i] = fp
		}(i)
	}
	wg.Wait()

	// Report the first real failure in traversal order, not the cancellations it caused
	for _, err := range errs {
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}
	if err := parent.Err(); err != nil {
		return err
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
