package models

import (
	"errors"
	"fmt"
)

// FingerprintKind identifies the shape of a fingerprint
type FingerprintKind string

const (
	// KindHash is a hex-encoded digest of the full file content
	KindHash FingerprintKind = "hash"
	// KindNameSize is a (base name, byte size) pair
	KindNameSize FingerprintKind = "namesize"
)

// ErrMixedFingerprints is returned when fingerprints of different kinds meet in one run
var ErrMixedFingerprints = errors.New("fingerprints of different kinds cannot be compared")

// Fingerprint is an opaque content identity. It is comparable and used as a map key.
// Only the fields belonging to Kind are set.
type Fingerprint struct {
	Kind   FingerprintKind
	Digest string
	Name   string
	Size   int64
}

// HashFingerprint builds a hash-shaped fingerprint
func HashFingerprint(digest string) Fingerprint {
	return Fingerprint{Kind: KindHash, Digest: digest}
}

// NameSizeFingerprint builds a heuristic fingerprint
func NameSizeFingerprint(name string, size int64) Fingerprint {
	return Fingerprint{Kind: KindNameSize, Name: name, Size: size}
}

// String returns a printable form of the fingerprint
func (f Fingerprint) String() string {
	switch f.Kind {
	case KindHash:
		return f.Digest
	case KindNameSize:
		return fmt.Sprintf("%s:%d", f.Name, f.Size)
	default:
		return "<empty>"
	}
}

// MappedPair links a source file to the target file sharing its fingerprint
type MappedPair struct {
	Source FileEntry `json:"source"`
	Target FileEntry `json:"target"`
}

// ComparisonResult holds the outcome of matching a source tree against a target tree.
// Both slices follow source traversal order.
type ComparisonResult struct {
	Mapped  []MappedPair
	Missing []FileEntry
}

// MissingPaths returns the user-facing paths of missing files
func (r *ComparisonResult) MissingPaths() []string {
	paths := make([]string, 0, len(r.Missing))
	for _, m := range r.Missing {
		paths = append(paths, m.Path)
	}
	return paths
}
