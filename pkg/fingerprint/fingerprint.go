// Package fingerprint computes content identities for files.
//
// Two strategies share one contract: Hash digests the full content and
// costs the file size, NameSize pairs the base name with the byte length
// and costs one unit without reading any content.
package fingerprint

import (
	"context"
	"fmt"
	"io"

	"github.com/sdejongh/cmpdirs/pkg/models"
	"github.com/sdejongh/cmpdirs/pkg/storage"
)

// ProgressFunc receives amounts of work done. A nil ProgressFunc is ignored.
// Implementations must be safe for concurrent use when fingerprints are
// computed in parallel.
type ProgressFunc func(n int64)

func (p ProgressFunc) add(n int64) {
	if p != nil {
		p(n)
	}
}

// ReaderWrapper wraps file readers (e.g. for rate limiting)
type ReaderWrapper func(ctx context.Context, rc io.ReadCloser) io.ReadCloser

// Strategy produces fingerprints of a single kind
type Strategy interface {
	// Name returns the strategy name
	Name() string

	// Kind returns the fingerprint shape produced by this strategy
	Kind() models.FingerprintKind

	// Estimate returns the cost of fingerprinting entry, in the same unit
	// Fingerprint reports progress in
	Estimate(ctx context.Context, backend storage.Backend, entry models.FileEntry) (int64, error)

	// Fingerprint computes the identity of entry
	Fingerprint(ctx context.Context, backend storage.Backend, entry models.FileEntry, progress ProgressFunc) (models.Fingerprint, error)
}

// Options configure strategy construction
type Options struct {
	Algorithm     string
	BufferSize    int
	ReaderWrapper ReaderWrapper
}

// New returns the strategy for the given name
func New(strategy models.Strategy, opts Options) (Strategy, error) {
	switch strategy {
	case models.StrategyHash:
		h, err := NewHash(opts.Algorithm, opts.BufferSize)
		if err != nil {
			return nil, err
		}
		if opts.ReaderWrapper != nil {
			h.SetReaderWrapper(opts.ReaderWrapper)
		}
		return h, nil
	case models.StrategyNameSize:
		return NewNameSize(), nil
	default:
		return nil, fmt.Errorf("unsupported strategy: %s (use: hash, namesize)", strategy)
	}
}
