package platform

import (
	"errors"
	"os"
	"runtime"
	"testing"
)

func TestNormalizePath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix separators")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"src/", "src"},
		{"./src//sub/", "src/sub"},
		{"/tmp/../tmp/x", "/tmp/x"},
		{".", "."},
	}
	for _, tt := range tests {
		if got := NormalizePath(tt.in); got != tt.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidatePath(t *testing.T) {
	if err := ValidatePath("some/dir"); err != nil {
		t.Errorf("ValidatePath() error = %v", err)
	}

	for _, bad := range []string{"", "   ", "a\x00b"} {
		err := ValidatePath(bad)
		var perr *PathError
		if !errors.As(err, &perr) {
			t.Errorf("ValidatePath(%q) error = %v, want *PathError", bad, err)
		}
	}
}

func TestIsUNCPath(t *testing.T) {
	if runtime.GOOS != "windows" && IsUNCPath(`\\host\share`) {
		t.Error("UNC paths only exist on windows")
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"", 0, false},
		{"512", 512, false},
		{"100B", 100, false},
		{"10K", 10 << 10, false},
		{"10k", 10 << 10, false},
		{"10M", 10 << 20, false},
		{"10MB", 10 << 20, false},
		{"10MiB", 10 << 20, false},
		{"1.5G", 3 << 29, false},
		{"2T", 2 << 40, false},
		{"fast", 0, true},
		{"10X", 0, true},
		{"M", 0, true},
		{"-1M", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSize(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsTerminalOnFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatalf("CreateTemp() error = %v", err)
	}
	defer f.Close()

	if IsTerminal(f) {
		t.Error("a regular file is not a terminal")
	}
}
