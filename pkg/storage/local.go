package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sdejongh/cmpdirs/pkg/models"
)

// Local is a filesystem-based storage backend
type Local struct {
	rootPath    string // absolute with symlinks resolved, used for access
	displayRoot string // as given, used for reporting
}

// NewLocal creates a new local filesystem backend.
// The error wraps models.ErrNotDirectory if rootPath is missing or not a directory.
func NewLocal(rootPath string) (*Local, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", models.ErrNotDirectory, rootPath, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", models.ErrNotDirectory, rootPath)
	}

	// WalkDir never descends a symlinked root, so walk the resolved directory
	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	return &Local{rootPath: resolved, displayRoot: filepath.Clean(rootPath)}, nil
}

// Root returns the root path as given
func (l *Local) Root() string {
	return l.displayRoot
}

// Walk visits every entry below the root
func (l *Local) Walk(ctx context.Context, fn WalkFunc) error {
	err := filepath.WalkDir(l.rootPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Check context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		relPath, err := filepath.Rel(l.rootPath, p)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}

		var info fs.FileInfo
		if d.Type()&fs.ModeSymlink != 0 {
			// Follow the link for metadata only, WalkDir never descends into it
			info, err = os.Stat(p)
		} else {
			info, err = d.Info()
		}
		if err != nil {
			return err
		}

		fi := FileInfo{
			Path:         filepath.Join(l.displayRoot, relPath),
			RelativePath: relPath,
			Size:         info.Size(),
			ModTime:      info.ModTime(),
			Mode:         info.Mode(),
		}
		if d.Type()&fs.ModeSymlink != 0 && fi.IsDir() {
			// Reported as a non-regular entry so callers skip it
			fi.Mode = fs.ModeSymlink
		}

		return fn(fi)
	})

	if err != nil {
		return fmt.Errorf("failed to list files in %s: %w", l.displayRoot, err)
	}

	return nil
}

// Open opens a file for reading
func (l *Local) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	fullPath := filepath.Join(l.rootPath, path)

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Stat returns file metadata
func (l *Local) Stat(ctx context.Context, path string) (*FileInfo, error) {
	fullPath := filepath.Join(l.rootPath, path)

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	relPath, err := filepath.Rel(l.rootPath, fullPath)
	if err != nil {
		return nil, err
	}

	return &FileInfo{
		Path:         filepath.Join(l.displayRoot, relPath),
		RelativePath: relPath,
		Size:         info.Size(),
		ModTime:      info.ModTime(),
		Mode:         info.Mode(),
	}, nil
}

// Close releases resources (no-op for local filesystem)
func (l *Local) Close() error {
	return nil
}
