package stats

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func fixture(t *testing.T) string {
	t.Helper()

	root := t.TempDir()

	writeFile(t, filepath.Join(root, "main.go"), "package main\n")
	writeFile(t, filepath.Join(root, "docs", "readme.md"), "# readme\n")
	writeFile(t, filepath.Join(root, "docs", "guide.md"), "a much longer guide document\n")
	writeFile(t, filepath.Join(root, "build", "artifact.bin"), "binary artifact contents\n")

	return root
}

func TestRun_AggregatesByExtension(t *testing.T) {
	root := fixture(t)

	result, err := Run(context.Background(), Options{Root: root}, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(4), result.FileCount)
	assert.Equal(t, 2, result.Extensions[".md"].Count)
	assert.Equal(t, 1, result.Extensions[".go"].Count)
	assert.Equal(t, int64(0), result.ErrorCount)
	assert.Len(t, result.Top, 4)

	// Smallest first; the largest file closes the list.
	last := result.Top[len(result.Top)-1]
	assert.Equal(t, "docs/guide.md", last.Path)
}

func TestRun_TotalBytesMatchesContent(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "a"), "four")
	writeFile(t, filepath.Join(root, "sub", "b"), "twelve bytes")

	result, err := Run(context.Background(), Options{Root: root}, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(16), result.TotalBytes)
}

func TestRun_ByDir(t *testing.T) {
	root := fixture(t)

	result, err := Run(context.Background(), Options{Root: root, ByDir: true}, nil)
	require.NoError(t, err)

	// Three containing directories: ., docs, build.
	assert.Equal(t, int64(3), result.FileCount)

	paths := make([]string, 0, len(result.Top))
	for _, item := range result.Top {
		paths = append(paths, item.Path)
	}

	assert.Contains(t, paths, "docs")
	assert.Contains(t, paths, "build")
}

func TestRun_Excludes(t *testing.T) {
	root := fixture(t)

	result, err := Run(context.Background(), Options{
		Root:     root,
		Excludes: []string{`.*/build/.*`},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(3), result.FileCount)
	assert.NotContains(t, result.Extensions, ".bin")
}

func TestRun_MinSize(t *testing.T) {
	root := fixture(t)

	result, err := Run(context.Background(), Options{Root: root, MinSize: 20}, nil)
	require.NoError(t, err)

	// Only guide.md and artifact.bin pass the threshold.
	assert.Equal(t, int64(2), result.FileCount)
}

func TestRun_Depth(t *testing.T) {
	root := fixture(t)

	result, err := Run(context.Background(), Options{Root: root, Depth: 1}, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.FileCount)
	assert.Contains(t, result.Extensions, ".go")
}

func TestRun_InvalidRoot(t *testing.T) {
	_, err := Run(context.Background(), Options{Root: filepath.Join(t.TempDir(), "missing")}, nil)
	assert.Error(t, err)
}

func TestRun_RootIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	writeFile(t, path, "content")

	_, err := Run(context.Background(), Options{Root: path}, nil)
	assert.ErrorContains(t, err, "not a directory")
}

func TestRun_InvalidExcludePattern(t *testing.T) {
	_, err := Run(context.Background(), Options{
		Root:     t.TempDir(),
		Excludes: []string{"("},
	}, nil)
	assert.ErrorContains(t, err, "compiling exclusion pattern")
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{Root: fixture(t)}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_ReportsElapsed(t *testing.T) {
	result, err := Run(context.Background(), Options{Root: fixture(t)}, nil)
	require.NoError(t, err)

	assert.Greater(t, result.Elapsed, time.Duration(0))
}
