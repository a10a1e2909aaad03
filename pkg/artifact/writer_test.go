package artifact

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"Fox Forage", "fox-forage"},
		{"  Berry Dash!!  ", "berry-dash"},
		{"___", "game"},
		{"Robot: Laser Run 2", "robot-laser-run-2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Slug(tt.title))
	}
}

func TestOutputDir(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 30, 0, 0, time.UTC)
	dir := OutputDir("/tmp/games", "Fox Forage", now)
	assert.Equal(t, filepath.Join("/tmp/games", "fox-forage-20260831-103000"), dir)
}

func TestWrite(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "fox-forage-20260831-103000")

	fs := &FileSet{
		Markup: "<html></html>",
		Style:  "body{}",
		Script: "init();",
	}
	require.NoError(t, Write(fs, dir))

	for _, r := range Roles() {
		data, err := os.ReadFile(filepath.Join(dir, r.Filename()))
		require.NoError(t, err)
		assert.Equal(t, fs.Content(r), string(data))
	}

	// No staging directories left behind.
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteRejectsIncompleteSet(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "partial")

	fs := &FileSet{Markup: "<html></html>", Script: "init();"}
	err := Write(fs, dir)
	assert.ErrorIs(t, err, ErrMissingArtifact)

	// Nothing was committed.
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
	entries, readErr := os.ReadDir(root)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}
