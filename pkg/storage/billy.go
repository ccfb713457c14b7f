package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/sdejongh/cmpdirs/pkg/models"
)

// Billy is a storage backend over a go-billy filesystem.
// It serves in-memory trees (memfs) and chrooted OS trees (osfs).
type Billy struct {
	fs   billy.Filesystem
	root string
}

// NewBilly creates a backend rooted at root inside fsys.
// The error wraps models.ErrNotDirectory if root is missing or not a directory.
func NewBilly(fsys billy.Filesystem, root string) (*Billy, error) {
	root = filepath.Clean(root)

	info, err := fsys.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", models.ErrNotDirectory, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", models.ErrNotDirectory, root)
	}

	return &Billy{fs: fsys, root: root}, nil
}

// Root returns the root path inside the filesystem
func (b *Billy) Root() string {
	return b.root
}

// Walk visits every entry below the root
func (b *Billy) Walk(ctx context.Context, fn WalkFunc) error {
	err := util.Walk(b.fs, b.root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		relPath, err := filepath.Rel(b.root, p)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}

		mode := info.Mode()
		size := info.Size()
		modTime := info.ModTime()
		if mode&fs.ModeSymlink != 0 {
			target, err := b.fs.Stat(p)
			if err != nil {
				return fmt.Errorf("billy: stat %q: %w", p, err)
			}
			if target.Mode().IsRegular() {
				mode, size, modTime = target.Mode(), target.Size(), target.ModTime()
			}
		}

		return fn(FileInfo{
			Path:         filepath.Join(b.root, relPath),
			RelativePath: relPath,
			Size:         size,
			ModTime:      modTime,
			Mode:         mode,
		})
	})

	if err != nil && !errors.Is(err, filepath.SkipDir) {
		return fmt.Errorf("failed to list files in %s: %w", b.root, err)
	}

	return nil
}

// Open opens a file for reading
func (b *Billy) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	f, err := b.fs.Open(filepath.Join(b.root, path))
	if err != nil {
		return nil, fmt.Errorf("billy: open %q: %w", path, err)
	}
	return f, nil
}

// Stat returns file metadata
func (b *Billy) Stat(ctx context.Context, path string) (*FileInfo, error) {
	info, err := b.fs.Stat(filepath.Join(b.root, path))
	if err != nil {
		return nil, fmt.Errorf("billy: stat %q: %w", path, err)
	}

	return &FileInfo{
		Path:         filepath.Join(b.root, path),
		RelativePath: filepath.Clean(path),
		Size:         info.Size(),
		ModTime:      info.ModTime(),
		Mode:         info.Mode(),
	}, nil
}

// Close releases resources (no-op)
func (b *Billy) Close() error {
	return nil
}
