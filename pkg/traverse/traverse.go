// Package traverse lists the regular files of a tree together with a
// per-file cost estimate used to size progress reporting.
package traverse

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"

	"github.com/sdejongh/cmpdirs/pkg/models"
	"github.com/sdejongh/cmpdirs/pkg/storage"
)

// Estimator computes the cost of fingerprinting one file. It is called
// exactly once per yielded file.
type Estimator func(ctx context.Context, backend storage.Backend, entry models.FileEntry) (int64, error)

// Options tune a traversal
type Options struct {
	// Exclude holds glob patterns, see shouldExclude
	Exclude []string
}

// errStop aborts the underlying walk when the consumer stops iterating
var errStop = errors.New("iteration stopped")

// Walk returns a lazy sequence over the regular files below the backend root.
// Hidden files and directories are included. A nil estimator yields cost 0.
// On the first error the pair (zero entry, err) is yielded and the sequence ends.
func Walk(ctx context.Context, backend storage.Backend, estimate Estimator, opts Options) iter.Seq2[models.FileEntry, error] {
	return func(yield func(models.FileEntry, error) bool) {
		err := backend.Walk(ctx, func(info storage.FileInfo) error {
			if info.IsDir() {
				if isExcludedDir(info.RelativePath, opts.Exclude) {
					return fs.SkipDir
				}
				return nil
			}
			if !info.IsRegular() || shouldExclude(info.RelativePath, opts.Exclude) {
				return nil
			}

			entry := models.FileEntry{
				Path:         info.Path,
				RelativePath: info.RelativePath,
				Size:         info.Size,
			}
			if estimate != nil {
				cost, err := estimate(ctx, backend, entry)
				if err != nil {
					return fmt.Errorf("failed to estimate %s: %w", info.Path, err)
				}
				entry.Cost = cost
			}

			if !yield(entry, nil) {
				return errStop
			}
			return nil
		})

		if err != nil && !errors.Is(err, errStop) {
			yield(models.FileEntry{}, err)
		}
	}
}

// List collects a traversal. It fails fast: no partial listing is returned.
func List(ctx context.Context, backend storage.Backend, estimate Estimator, opts Options) ([]models.FileEntry, error) {
	var entries []models.FileEntry
	for entry, err := range Walk(ctx, backend, estimate, opts) {
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
