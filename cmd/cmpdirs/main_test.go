package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunMissingArgs(t *testing.T) {
	var stderr bytes.Buffer
	code := run([]string{"only-one"}, &stderr)

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.HasPrefix(stderr.String(), "Error: ") {
		t.Errorf("stderr = %q, want an Error: line", stderr.String())
	}
}

func TestRunNotDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOME", dir)

	var stderr bytes.Buffer
	code := run([]string{"--batch", file, dir}, &stderr)

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "not a directory") {
		t.Errorf("stderr = %q, want not a directory", stderr.String())
	}
}

func TestRootCause(t *testing.T) {
	inner := errors.New("inner")
	wrapped := fmt.Errorf("outer: %w", fmt.Errorf("middle: %w", inner))
	if rootCause(wrapped) != inner {
		t.Errorf("rootCause() = %v, want inner", rootCause(wrapped))
	}
	if rootCause(inner) != inner {
		t.Error("rootCause() of an unwrapped error is the error itself")
	}
}
