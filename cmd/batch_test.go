package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadBatchManifest(t *testing.T) {
	path := writeManifest(t, "image_path,sheet_id,set\n/scans/a.png,sheet-a,1989 Topps\n/scans/b.png,,\n")

	inputs, err := readBatchManifest(path)
	require.NoError(t, err)
	require.Len(t, inputs, 2)

	assert.Equal(t, "/scans/a.png", inputs[0].ImagePath)
	assert.Equal(t, "sheet-a", inputs[0].SheetID)
	assert.Equal(t, map[string]string{"set": "1989 Topps"}, inputs[0].Metadata)

	// Missing sheet_id falls back to the file name; empty metadata cells
	// are dropped.
	assert.Equal(t, "b", inputs[1].SheetID)
	assert.Nil(t, inputs[1].Metadata)
}

func TestReadBatchManifest_MissingImageColumn(t *testing.T) {
	path := writeManifest(t, "sheet_id\nsheet-a\n")

	_, err := readBatchManifest(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image_path")
}

func TestReadBatchManifest_MissingFile(t *testing.T) {
	_, err := readBatchManifest("/nonexistent/manifest.csv")
	require.Error(t, err)
}
