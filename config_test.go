package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YLivay/seekline/reader"
)

func TestLoadConfig_DefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.EqualValues(t, reader.DefaultChunkSize, cfg.ChunkSize)
	assert.False(t, cfg.BuildIndex)
	assert.EqualValues(t, "", cfg.JQ)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	confDir := filepath.Join(dir, "seekline")
	require.NoError(t, os.MkdirAll(confDir, 0755))
	contents := "chunk_size = 64\nbuild_index = true\njq = \".msg\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(confDir, "config.toml"), []byte(contents), 0644))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.EqualValues(t, 64, cfg.ChunkSize)
	assert.True(t, cfg.BuildIndex)
	assert.EqualValues(t, ".msg", cfg.JQ)
}

func TestLoadConfig_BadTomlFails(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	confDir := filepath.Join(dir, "seekline")
	require.NoError(t, os.MkdirAll(confDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(confDir, "config.toml"), []byte("chunk_size = ["), 0644))

	_, err := LoadConfig()
	assert.Error(t, err)
}
