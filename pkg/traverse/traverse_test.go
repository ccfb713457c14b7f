package traverse

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdejongh/cmpdirs/pkg/models"
	"github.com/sdejongh/cmpdirs/pkg/storage"
)

func newMemTree(t *testing.T, files map[string]string) storage.Backend {
	t.Helper()
	fsys := memfs.New()
	require.NoError(t, fsys.MkdirAll("root", 0o755))
	for p, content := range files {
		require.NoError(t, util.WriteFile(fsys, filepath.Join("root", p), []byte(content), 0o644))
	}
	b, err := storage.NewBilly(fsys, "root")
	require.NoError(t, err)
	return b
}

func relPaths(entries []models.FileEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, filepath.ToSlash(e.RelativePath))
	}
	sort.Strings(out)
	return out
}

func TestListYieldsOnlyFiles(t *testing.T) {
	b := newMemTree(t, map[string]string{
		"a.txt":          "hello",
		"sub/b.txt":      "world",
		".hidden/c":      "!",
		"sub/deeper/d.x": "",
	})

	entries, err := List(context.Background(), b, nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{".hidden/c", "a.txt", "sub/b.txt", "sub/deeper/d.x"}, relPaths(entries))

	for _, e := range entries {
		assert.Zero(t, e.Cost, "nil estimator must yield zero cost")
		assert.Equal(t, filepath.Join("root", e.RelativePath), e.Path)
	}
}

func TestListEmptyTree(t *testing.T) {
	b := newMemTree(t, nil)
	entries, err := List(context.Background(), b, nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEstimatorCalledOncePerFile(t *testing.T) {
	b := newMemTree(t, map[string]string{
		"a.txt": "hello",
		"b.txt": "hi",
	})

	calls := map[string]int{}
	estimate := func(ctx context.Context, _ storage.Backend, e models.FileEntry) (int64, error) {
		calls[e.RelativePath]++
		return e.Size * 10, nil
	}

	entries, err := List(context.Background(), b, estimate, Options{})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, map[string]int{"a.txt": 1, "b.txt": 1}, calls)
	assert.Equal(t, int64(50), entries[0].Cost)
	assert.Equal(t, int64(20), entries[1].Cost)
}

func TestEstimatorErrorAborts(t *testing.T) {
	b := newMemTree(t, map[string]string{"a.txt": "x", "b.txt": "y"})

	boom := errors.New("boom")
	estimate := func(context.Context, storage.Backend, models.FileEntry) (int64, error) {
		return 0, boom
	}

	entries, err := List(context.Background(), b, estimate, Options{})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, entries, "no partial listing on failure")
}

func TestWalkIsLazy(t *testing.T) {
	b := newMemTree(t, map[string]string{"a": "1", "b": "2", "c": "3"})

	seen := 0
	for entry, err := range Walk(context.Background(), b, nil, Options{}) {
		require.NoError(t, err)
		require.NotEmpty(t, entry.Path)
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

func TestWalkExclude(t *testing.T) {
	b := newMemTree(t, map[string]string{
		"keep.txt":              "k",
		"drop.tmp":              "d",
		"node_modules/x.js":     "x",
		"src/node_modules/y.js": "y",
		"build/out.bin":         "o",
	})

	entries, err := List(context.Background(), b, nil, Options{
		Exclude: []string{"*.tmp", "node_modules/", "build/*"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.txt"}, relPaths(entries))
}

func TestListLocalRootErrors(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		_, err := storage.NewLocal(filepath.Join(t.TempDir(), "missing"))
		assert.ErrorIs(t, err, models.ErrNotDirectory)
	})

	t.Run("RootRemovedAfterOpen", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "tree")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		b, err := storage.NewLocal(dir)
		require.NoError(t, err)
		require.NoError(t, os.RemoveAll(dir))

		_, err = List(context.Background(), b, nil, Options{})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
