package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWritesSheetAndLoop(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, run(dir, 1, 4, 8000, []string{"boot"}))

	for _, name := range []string{"textures.png", "boot.wav"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}
}

func TestRunWithoutSongs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, run(dir, 1, 4, 8000, nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "textures.png", entries[0].Name())
}
