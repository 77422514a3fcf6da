package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "pngme.toml")
	content := `OutputFile = "hidden.png"
LogLevel = "debug"
Compress = true
NoProgress = true
`
	require.NoError(t, os.WriteFile(fn, []byte(content), 0644))

	cfg, err := LoadConfig(fn)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		OutputFile: "hidden.png",
		LogLevel:   "debug",
		Compress:   true,
		NoProgress: true,
	}, cfg)
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "pngme.toml")
	require.NoError(t, os.WriteFile(fn, []byte("Compress = true\n"), 0644))

	cfg, err := LoadConfig(fn)
	require.NoError(t, err)
	assert.Equal(t, "edited.png", cfg.OutputFile)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.True(t, cfg.Compress)
}

func TestLoadConfigDefaultFileMissing(t *testing.T) {
	// the package directory carries no pngme.toml
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadConfigExplicitMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadConfigMalformed(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "pngme.toml")
	require.NoError(t, os.WriteFile(fn, []byte("OutputFile = \n"), 0644))

	_, err := LoadConfig(fn)
	assert.Error(t, err)
}
