package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))
		return path
	}

	motion := write("motion.txt")
	notes := write("nested/notes.md")
	write("scan.pdf")
	write("image.png")

	t.Run("Directory yields only extractable files", func(t *testing.T) {
		paths, err := collectFiles(dir)
		assert.NoError(t, err, "Expected collectFiles to not return an error")
		assert.ElementsMatch(t, []string{motion, notes}, paths, "Expected only .txt and .md files")
	})

	t.Run("Single file is returned as-is", func(t *testing.T) {
		paths, err := collectFiles(motion)
		assert.NoError(t, err)
		assert.Equal(t, []string{motion}, paths, "Expected the file itself")
	})

	t.Run("Missing path errors", func(t *testing.T) {
		_, err := collectFiles(filepath.Join(dir, "missing"))
		assert.Error(t, err, "Expected error for a missing path")
	})
}
