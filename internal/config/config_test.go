package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withConfEnv(t *testing.T, path string) {
	t.Helper()
	t.Setenv("APISAN_CONF", path)
}

func TestLoadReturnsDefaultsWhenFileMissing(t *testing.T) {
	withConfEnv(t, filepath.Join(t.TempDir(), "nope.yaml"))
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apisan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("threshold: 0.9\nreference: 5\nskip_cache: true\n"), 0o644))
	withConfEnv(t, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.9, cfg.Threshold)
	assert.Equal(t, 5, cfg.Reference)
	assert.True(t, cfg.SkipCache)
}

func TestLoadParsesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apisan.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"threshold": 0.7, "reference": 2}`), 0o644))
	withConfEnv(t, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.7, cfg.Threshold)
	assert.Equal(t, 2, cfg.Reference)
}

func TestLoadFailsFatallyOnUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apisan.toml")
	require.NoError(t, os.WriteFile(path, []byte("threshold = 0.8"), 0o644))
	withConfEnv(t, path)

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsOutOfRangeThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apisan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("threshold: 1.5\n"), 0o644))
	withConfEnv(t, path)

	_, err := Load()
	assert.Error(t, err)
}
