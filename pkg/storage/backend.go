package storage

import (
	"context"
	"io"
	"io/fs"
	"time"
)

// FileInfo represents metadata about a file
type FileInfo struct {
	// Path is the root-joined path as shown to the user
	Path         string
	RelativePath string
	Size         int64
	ModTime      time.Time
	Mode         fs.FileMode
}

// IsDir reports whether the entry is a directory
func (fi FileInfo) IsDir() bool {
	return fi.Mode.IsDir()
}

// IsRegular reports whether the entry is a regular file
func (fi FileInfo) IsRegular() bool {
	return fi.Mode.IsRegular()
}

// WalkFunc is called for every entry below the backend root.
// Returning fs.SkipDir for a directory skips its contents; any other error stops the walk.
type WalkFunc func(info FileInfo) error

// Backend defines the read-only storage operations needed to compare trees
// Implementations include the local filesystem and go-billy filesystems
type Backend interface {
	// Root returns the root path as given by the user
	Root() string

	// Walk visits every entry below the root in lexical order.
	// Symlinks to files are reported with the metadata of their target; symlinked
	// directories are never descended.
	Walk(ctx context.Context, fn WalkFunc) error

	// Open opens a file for reading, path is relative to the root
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Stat returns file metadata, following symlinks
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// Close releases any resources held by the backend
	Close() error
}
