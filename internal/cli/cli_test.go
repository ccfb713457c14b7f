package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdejongh/cmpdirs/internal/platform"
	"github.com/sdejongh/cmpdirs/pkg/models"
)

type trees struct {
	src, dst string
}

// setup creates the a/b/x scenario and isolates the config location
func setup(t *testing.T) trees {
	t.Helper()
	base := t.TempDir()
	t.Setenv("HOME", base)

	tr := trees{src: filepath.Join(base, "src"), dst: filepath.Join(base, "dst")}
	files := map[string]string{
		filepath.Join(tr.src, "a.txt"): "hello",
		filepath.Join(tr.src, "b.txt"): "world",
		filepath.Join(tr.dst, "x.txt"): "hello",
	}
	for path, content := range files {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return tr
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCompareHash(t *testing.T) {
	tr := setup(t)

	out, err := execute(t, tr.src, tr.dst)
	require.NoError(t, err)
	// Not a terminal, so batch output is forced
	assert.Equal(t, filepath.Join(tr.src, "b.txt")+"\n", out)
}

func TestCompareVerbose(t *testing.T) {
	tr := setup(t)

	out, err := execute(t, "-v", tr.src, tr.dst)
	require.NoError(t, err)
	want := filepath.Join(tr.src, "a.txt") + " -> " + filepath.Join(tr.dst, "x.txt") + "\n" +
		filepath.Join(tr.src, "b.txt") + "\n"
	assert.Equal(t, want, out)
}

func TestCompareQuick(t *testing.T) {
	tr := setup(t)

	out, err := execute(t, "--quick", "--parallel", "3", tr.src, tr.dst)
	require.NoError(t, err)
	want := filepath.Join(tr.src, "a.txt") + "\n" + filepath.Join(tr.src, "b.txt") + "\n"
	assert.Equal(t, want, out)
}

func TestCompareJSONAndReport(t *testing.T) {
	tr := setup(t)
	reportPath := filepath.Join(t.TempDir(), "report.json")

	out, err := execute(t, "-o", "json", "--algorithm", "sha512", "--bandwidth", "100M",
		"--report", reportPath, "--report-format", "json", tr.src, tr.dst)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "success", doc["status"])
	assert.Equal(t, "sha512", doc["algorithm"])
	assert.Equal(t, []any{filepath.Join(tr.src, "b.txt")}, doc["missing"])

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"run_id"`)
}

func TestCompareLogFile(t *testing.T) {
	tr := setup(t)
	logPath := filepath.Join(t.TempDir(), "logs", "cmpdirs.log")

	_, err := execute(t, "--log-file", logPath, "--log-level", "debug", tr.src, tr.dst)
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Comparison completed")
	assert.Contains(t, string(data), "run_id")
}

func TestCompareConfigFile(t *testing.T) {
	tr := setup(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("compare:\n  strategy: namesize\n"), 0644))

	out, err := execute(t, "--config", cfgPath, tr.src, tr.dst)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(tr.src, "a.txt"))
}

func TestCompareInputErrors(t *testing.T) {
	tr := setup(t)

	tests := []struct {
		name string
		args []string
	}{
		{"OneArg", []string{tr.src}},
		{"ThreeArgs", []string{tr.src, tr.dst, tr.dst}},
		{"UnknownFlag", []string{"--nope", tr.src, tr.dst}},
		{"BadBandwidth", []string{"--bandwidth", "fast", tr.src, tr.dst}},
		{"BadAlgorithm", []string{"--algorithm", "crc32", tr.src, tr.dst}},
		{"BadOutput", []string{"-o", "xml", tr.src, tr.dst}},
		{"ZeroWorkers", []string{"-p", "0", tr.src, tr.dst}},
		{"EmptyPath", []string{"", tr.dst}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.True(t, IsExpected(err), "err = %v", err)
			assert.Equal(t, 1, ExitCode(err))
		})
	}
}

func TestCompareMissingTarget(t *testing.T) {
	tr := setup(t)

	_, err := execute(t, tr.src, filepath.Join(tr.dst, "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotDirectory)
	assert.True(t, IsExpected(err))
	assert.Equal(t, 1, ExitCode(err))
}

func TestConfigInitAndShow(t *testing.T) {
	setup(t)
	cfgPath := filepath.Join(t.TempDir(), "cmpdirs", "config.yaml")

	out, err := execute(t, "config", "init", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, cfgPath)

	_, err = execute(t, "config", "init", "--config", cfgPath)
	require.Error(t, err, "init must not overwrite without --force")

	_, err = execute(t, "config", "init", "--force", "--config", cfgPath)
	require.NoError(t, err)

	out, err = execute(t, "config", "show", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Strategy: hash")
	assert.Contains(t, out, "Collision Policy: last-wins")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", out)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Nil", nil, 0},
		{"Input", &InputError{Err: errors.New("bad")}, 1},
		{"Plain", errors.New("boom"), 1},
		{"Failed", &RunError{Status: models.StatusFailed, Err: errors.New("io")}, 2},
		{"Cancelled", fmt.Errorf("wrapped: %w", &RunError{Status: models.StatusCancelled, Err: context.Canceled}), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestIsExpected(t *testing.T) {
	assert.True(t, IsExpected(&platform.PathError{Path: "", Message: "path is empty"}))
	assert.True(t, IsExpected(&models.ValidationError{Field: "x", Message: "y"}))
	assert.True(t, IsExpected(fmt.Errorf("source: %w", fs.ErrPermission)))
	assert.True(t, IsExpected(&RunError{Status: models.StatusCancelled, Err: context.Canceled}))
	assert.False(t, IsExpected(errors.New("boom")))
	assert.False(t, IsExpected(models.ErrMixedFingerprints))
}
