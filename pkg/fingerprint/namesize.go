package fingerprint

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sdejongh/cmpdirs/pkg/models"
	"github.com/sdejongh/cmpdirs/pkg/storage"
)

// NameSize fingerprints files by base name and byte size.
// It never reads file content and is not collision resistant.
type NameSize struct{}

// NewNameSize creates a new name/size strategy
func NewNameSize() *NameSize {
	return &NameSize{}
}

// Name returns the strategy name
func (s *NameSize) Name() string {
	return "namesize"
}

// Kind returns models.KindNameSize
func (s *NameSize) Kind() models.FingerprintKind {
	return models.KindNameSize
}

// Estimate returns one unit per file
func (s *NameSize) Estimate(ctx context.Context, backend storage.Backend, entry models.FileEntry) (int64, error) {
	return 1, nil
}

// Fingerprint reports one unit of progress, then stats the file
func (s *NameSize) Fingerprint(ctx context.Context, backend storage.Backend, entry models.FileEntry, progress ProgressFunc) (models.Fingerprint, error) {
	progress.add(1)

	info, err := backend.Stat(ctx, entry.RelativePath)
	if err != nil {
		return models.Fingerprint{}, fmt.Errorf("failed to stat %s: %w", entry.Path, err)
	}

	return models.NameSizeFingerprint(filepath.Base(entry.RelativePath), info.Size), nil
}
