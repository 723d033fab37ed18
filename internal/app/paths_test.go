package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaths(t *testing.T) {
	p := NewPaths("/project")
	assert.Equal(t, filepath.Join("/project", ".fdrizer"), p.Root)
	assert.Equal(t, filepath.Join("/project", ".fdrizer", "fdrizer.db"), p.DB)
	assert.Equal(t, filepath.Join("/project", ".fdrizer", "status.json"), p.Status)
	assert.Equal(t, filepath.Join("/project", ".fdrizer", "log"), p.LogDir)
	assert.Equal(t, filepath.Join("/project", ".fdrizer", "log", "watch.log"), p.WatchLog)
	assert.Equal(t, filepath.Join("/project", ".fdrizer", "out"), p.OutDir)
	assert.Equal(t, filepath.Join("/project", ".fdrizer", "out", "liver.selected.tsv"), p.Output("liver", "tsv"))
}

func TestEnsureDirs(t *testing.T) {
	dir := t.TempDir()
	p := NewPaths(dir)

	// First call creates directories.
	require.NoError(t, p.EnsureDirs())
	for _, d := range []string{p.Root, p.LogDir, p.OutDir} {
		info, err := os.Stat(d)
		require.NoError(t, err, "dir %s should exist", d)
		assert.True(t, info.IsDir())
	}

	// Second call is idempotent.
	require.NoError(t, p.EnsureDirs())
}
