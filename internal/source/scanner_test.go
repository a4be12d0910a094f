package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/bizdash/internal/common"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, nil, 0o600))
}

func TestScanDir(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "2023.csv"))
	touch(t, filepath.Join(root, "q1", "figures.jsonl"))
	touch(t, filepath.Join(root, "q1", "financial-forecast-2024-04-10.json"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, ".financial-forecast.json.123.tmp"))
	touch(t, filepath.Join(root, ".git", "hidden.csv"))

	files, err := Scan(root)
	require.NoError(t, err)

	got := map[string]Format{}
	for _, f := range files {
		rel, err := filepath.Rel(root, f.Path)
		require.NoError(t, err)
		got[rel] = f.Format
	}
	assert.Equal(t, map[string]Format{
		"2023.csv": FormatCSV,
		filepath.Join("q1", "figures.jsonl"):                      FormatJSONL,
		filepath.Join("q1", "financial-forecast-2024-04-10.json"): FormatReport,
	}, got)
}

func TestScanDeduplicates(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "a.csv")
	touch(t, file)

	files, err := Scan(root, file)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestScanRejectsUnknownFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "figures.xlsx")
	touch(t, file)

	_, err := Scan(file)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestScanMissingPath(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
