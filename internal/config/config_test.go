package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("RECONNECT_STORE", "")
	t.Setenv("RECONNECT_DATA", "")
	t.Setenv("RECONNECT_LOG_LEVEL", "")
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Store.Engine = "sqlite"
	cfg.Store.Path = "/tmp/rc.db"
	cfg.Logging.Level = "debug"
	cfg.SeedSampleData = false
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: info\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Store.Engine)
	assert.True(t, cfg.SeedSampleData)
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: [unterminated"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("RECONNECT_STORE", "sqlite")
	t.Setenv("RECONNECT_DATA", "/data/state.db")
	t.Setenv("RECONNECT_LOG_LEVEL", "error")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Store.Engine)
	assert.Equal(t, "/data/state.db", cfg.Store.Path)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Store.Engine = "postgres"
	assert.ErrorContains(t, cfg.Validate(), "invalid store engine")

	cfg = DefaultConfig()
	cfg.Logging.Level = "loud"
	assert.ErrorContains(t, cfg.Validate(), "invalid log level")
}

func TestStoreConfig_DataPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p, err := StoreConfig{Engine: "json"}.DataPath()
	require.NoError(t, err)
	assert.Equal(t, "state.json", filepath.Base(p))

	p, err = StoreConfig{Engine: "sqlite"}.DataPath()
	require.NoError(t, err)
	assert.Equal(t, "state.db", filepath.Base(p))

	p, err = StoreConfig{Engine: "sqlite", Path: "/x/y.sqlite"}.DataPath()
	require.NoError(t, err)
	assert.Equal(t, "/x/y.sqlite", p)
}
