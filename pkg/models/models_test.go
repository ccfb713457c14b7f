package models

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// ============== Fingerprint Tests ==============

func TestFingerprintEquality(t *testing.T) {
	t.Run("SameDigest", func(t *testing.T) {
		if HashFingerprint("abc") != HashFingerprint("abc") {
			t.Error("identical digests should compare equal")
		}
	})

	t.Run("DifferentKindsNeverEqual", func(t *testing.T) {
		// A name that happens to look like a digest must not collide
		h := HashFingerprint("a.txt")
		n := NameSizeFingerprint("a.txt", 0)
		if h == n {
			t.Error("hash and namesize fingerprints must never compare equal")
		}
	})

	t.Run("NameSizeRequiresBoth", func(t *testing.T) {
		if NameSizeFingerprint("a.txt", 5) == NameSizeFingerprint("a.txt", 6) {
			t.Error("different sizes should not compare equal")
		}
		if NameSizeFingerprint("a.txt", 5) == NameSizeFingerprint("b.txt", 5) {
			t.Error("different names should not compare equal")
		}
	})

	t.Run("UsableAsMapKey", func(t *testing.T) {
		table := map[Fingerprint]string{
			NameSizeFingerprint("a.txt", 5): "first",
		}
		table[NameSizeFingerprint("a.txt", 5)] = "second"
		if len(table) != 1 || table[NameSizeFingerprint("a.txt", 5)] != "second" {
			t.Errorf("unexpected table contents: %v", table)
		}
	})
}

func TestFingerprintString(t *testing.T) {
	tests := []struct {
		name string
		fp   Fingerprint
		want string
	}{
		{"Hash", HashFingerprint("deadbeef"), "deadbeef"},
		{"NameSize", NameSizeFingerprint("a.txt", 5), "a.txt:5"},
		{"Zero", Fingerprint{}, "<empty>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fp.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ============== FileEntry Tests ==============

func TestTotals(t *testing.T) {
	entries := []FileEntry{
		{Path: "a", Size: 10, Cost: 10},
		{Path: "b", Size: 5, Cost: 1},
		{Path: "c", Size: 0, Cost: 0},
	}

	if got := TotalCost(entries); got != 11 {
		t.Errorf("TotalCost() = %d, want 11", got)
	}
	if got := TotalSize(entries); got != 15 {
		t.Errorf("TotalSize() = %d, want 15", got)
	}
	if got := TotalCost(nil); got != 0 {
		t.Errorf("TotalCost(nil) = %d, want 0", got)
	}
}

func TestMissingPaths(t *testing.T) {
	r := &ComparisonResult{
		Missing: []FileEntry{{Path: "src/b.txt"}, {Path: "src/a.txt"}},
	}
	got := r.MissingPaths()
	if len(got) != 2 || got[0] != "src/b.txt" || got[1] != "src/a.txt" {
		t.Errorf("MissingPaths() = %v, want order preserved", got)
	}
}

// ============== Operation Tests ==============

func validOperation() *Operation {
	return &Operation{
		SourcePath:      "/src",
		TargetPath:      "/dst",
		Strategy:        StrategyHash,
		Algorithm:       "sha256",
		CollisionPolicy: LastWins,
		MaxWorkers:      1,
		BufferSize:      4096,
	}
}

func TestOperationValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(op *Operation)
		wantField string
	}{
		{"Valid", func(op *Operation) {}, ""},
		{"MissingSource", func(op *Operation) { op.SourcePath = "" }, "SourcePath"},
		{"MissingTarget", func(op *Operation) { op.TargetPath = "" }, "TargetPath"},
		{"UnknownStrategy", func(op *Operation) { op.Strategy = "binary" }, "Strategy"},
		{"UnknownPolicy", func(op *Operation) { op.CollisionPolicy = "random" }, "CollisionPolicy"},
		{"NoWorkers", func(op *Operation) { op.MaxWorkers = 0 }, "MaxWorkers"},
		{"TinyBuffer", func(op *Operation) { op.BufferSize = 16 }, "BufferSize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := validOperation()
			tt.mutate(op)
			err := op.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %s, want %s", verr.Field, tt.wantField)
			}
		})
	}
}

// ============== Status Tests ==============

func TestStatusExitCode(t *testing.T) {
	tests := []struct {
		status Status
		want   int
	}{
		{StatusSuccess, 0},
		{StatusFailed, 2},
		{StatusCancelled, 3},
		{Status("bogus"), 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.ExitCode(); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Status
	}{
		{"NoError", nil, StatusSuccess},
		{"Failure", errors.New("read error"), StatusFailed},
		{"Cancelled", fmt.Errorf("target: %w", context.Canceled), StatusCancelled},
		{"Deadline", context.DeadlineExceeded, StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf(tt.err); got != tt.want {
				t.Errorf("StatusOf() = %s, want %s", got, tt.want)
			}
		})
	}
}
