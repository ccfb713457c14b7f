package fingerprint

import (
	"context"
	"crypto/md5"  // #nosec G501 -- identity only, documented as weak
	"crypto/sha1" // #nosec G505 -- identity only, documented as weak
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"strings"
	"sync"

	"github.com/sdejongh/cmpdirs/pkg/models"
	"github.com/sdejongh/cmpdirs/pkg/storage"
)

// DefaultChunkSize is the read size used when none is configured
const DefaultChunkSize = 4096

// DefaultAlgorithm is the hash used when none is configured
const DefaultAlgorithm = "sha256"

// Algorithms lists the supported hash algorithms
var Algorithms = []string{"sha256", "sha512", "sha1", "md5"}

func newHasher(algorithm string) (func() hash.Hash, error) {
	switch strings.ToLower(strings.TrimSpace(algorithm)) {
	case "", "sha256":
		return sha256.New, nil
	case "sha512":
		return sha512.New, nil
	case "sha1":
		return sha1.New, nil // #nosec G401
	case "md5":
		return md5.New, nil // #nosec G401
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %q (use: %s)", algorithm, strings.Join(Algorithms, ", "))
	}
}

// Hash fingerprints files by a streaming digest of their full content
type Hash struct {
	algorithm     string
	newHash       func() hash.Hash
	chunkSize     int
	bufferPool    *sync.Pool
	readerWrapper ReaderWrapper // Optional reader wrapper (e.g., for rate limiting)
}

// NewHash creates a hash strategy. An empty algorithm means sha256 and a
// non-positive chunk size means DefaultChunkSize.
func NewHash(algorithm string, chunkSize int) (*Hash, error) {
	newHash, err := newHasher(algorithm)
	if err != nil {
		return nil, err
	}
	if algorithm == "" {
		algorithm = DefaultAlgorithm
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Hash{
		algorithm: strings.ToLower(strings.TrimSpace(algorithm)),
		newHash:   newHash,
		chunkSize: chunkSize,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, chunkSize)
				return &buf
			},
		},
	}, nil
}

// SetReaderWrapper sets a function to wrap readers
func (h *Hash) SetReaderWrapper(wrapper ReaderWrapper) {
	h.readerWrapper = wrapper
}

// Name returns the strategy name
func (h *Hash) Name() string {
	return "hash-" + h.algorithm
}

// Algorithm returns the digest algorithm
func (h *Hash) Algorithm() string {
	return h.algorithm
}

// Kind returns models.KindHash
func (h *Hash) Kind() models.FingerprintKind {
	return models.KindHash
}

// Estimate returns the file size in bytes
func (h *Hash) Estimate(ctx context.Context, backend storage.Backend, entry models.FileEntry) (int64, error) {
	return entry.Size, nil
}

// Fingerprint streams the file through the digest in fixed-size chunks,
// reporting each chunk length to progress
func (h *Hash) Fingerprint(ctx context.Context, backend storage.Backend, entry models.FileEntry, progress ProgressFunc) (models.Fingerprint, error) {
	reader, err := backend.Open(ctx, entry.RelativePath)
	if err != nil {
		return models.Fingerprint{}, fmt.Errorf("failed to hash %s: %w", entry.Path, err)
	}
	defer reader.Close()

	if h.readerWrapper != nil {
		reader = h.readerWrapper(ctx, reader)
	}

	hasher := h.newHash()

	bufPtr := h.bufferPool.Get().(*[]byte)
	buffer := *bufPtr
	defer h.bufferPool.Put(bufPtr)

	for {
		select {
		case <-ctx.Done():
			return models.Fingerprint{}, ctx.Err()
		default:
		}

		n, err := reader.Read(buffer)
		if n > 0 {
			hasher.Write(buffer[:n])
			progress.add(int64(n))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.Fingerprint{}, fmt.Errorf("failed to read %s: %w", entry.Path, err)
		}
	}

	return models.HashFingerprint(hex.EncodeToString(hasher.Sum(nil))), nil
}
