package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "cardscan.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "./data", cfg.Paths.DataDir)
	assert.Equal(t, "./outputs", cfg.Paths.OutputsDir)
	assert.Equal(t, 3, cfg.Imaging.GridSize)
	assert.Equal(t, 140, cfg.Imaging.EnhanceThreshold)
	assert.Equal(t, "gosseract", cfg.OCR.Provider)
	assert.Equal(t, "eng", cfg.OCR.Language)
	assert.Equal(t, "https://www.ebay.com", cfg.Ebay.BaseURL)
	assert.Equal(t, 0.5, cfg.Ebay.RateLimitRPS)
	assert.Equal(t, 30, cfg.Pipeline.LookupTimeoutSecs)
	assert.Equal(t, 1, cfg.Pipeline.EnrichConcurrency)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_ConfigFileOverrides(t *testing.T) {
	dir := t.TempDir()
	yaml := `
imaging:
  grid_size: 4
  enhance_threshold: 120
ocr:
  provider: command
  tesseract_path: /opt/tesseract/bin/tesseract
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Imaging.GridSize)
	assert.Equal(t, 120, cfg.Imaging.EnhanceThreshold)
	assert.Equal(t, "command", cfg.OCR.Provider)
	assert.Equal(t, "/opt/tesseract/bin/tesseract", cfg.OCR.TesseractPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched keys keep defaults.
	assert.Equal(t, "sqlite", cfg.Store.Driver)
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("CARDSCAN_STORE_DRIVER", "postgres")
	t.Setenv("CARDSCAN_SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	assert.Error(t, InitLogger(LogConfig{Level: "not-a-level"}))
}
