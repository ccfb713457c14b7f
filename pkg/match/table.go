package match

import (
	"fmt"

	"github.com/sdejongh/cmpdirs/pkg/models"
)

// LookupTable maps a fingerprint to one representative target file.
// When several targets share a fingerprint, the policy decides which one is
// kept, always relative to the order in which Record is called.
type LookupTable struct {
	policy  models.CollisionPolicy
	kind    models.FingerprintKind
	entries map[models.Fingerprint]models.FileEntry
}

// NewLookupTable creates an empty table. An empty policy means models.LastWins.
func NewLookupTable(policy models.CollisionPolicy, sizeHint int) *LookupTable {
	if policy == "" {
		policy = models.LastWins
	}
	return &LookupTable{
		policy:  policy,
		entries: make(map[models.Fingerprint]models.FileEntry, sizeHint),
	}
}

// Record adds entry under fp. It returns the entry that lost the collision,
// if any, and fails when fp has a different kind than earlier records.
func (t *LookupTable) Record(fp models.Fingerprint, entry models.FileEntry) (dropped *models.FileEntry, err error) {
	if t.kind == "" {
		t.kind = fp.Kind
	} else if fp.Kind != t.kind {
		return nil, fmt.Errorf("%w: table holds %s, got %s", models.ErrMixedFingerprints, t.kind, fp.Kind)
	}

	existing, ok := t.entries[fp]
	if !ok {
		t.entries[fp] = entry
		return nil, nil
	}

	if t.policy == models.FirstWins {
		return &entry, nil
	}
	t.entries[fp] = entry
	return &existing, nil
}

// Lookup returns the target recorded for fp
func (t *LookupTable) Lookup(fp models.Fingerprint) (models.FileEntry, bool) {
	entry, ok := t.entries[fp]
	return entry, ok
}

// Len returns the number of distinct fingerprints
func (t *LookupTable) Len() int {
	return len(t.entries)
}
