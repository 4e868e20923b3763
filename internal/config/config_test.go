package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaultsWithNoFile(t *testing.T) {
	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	require.Equal(t, "parahpf", cfg.App.Name)
	require.Equal(t, "info", cfg.Log.Level)
	require.False(t, cfg.Metrics.Enabled)
	require.Equal(t, 1e-8, cfg.Solver.Tolerance)
}

func TestLoadOverridesDefaultsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\nmetrics:\n  enabled: true\n  addr: \":9999\"\n"), 0o644))

	cfg, err := NewLoader(WithConfigPath(path)).Load()
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.Log.Level)
	require.True(t, cfg.Metrics.Enabled)
	require.Equal(t, ":9999", cfg.Metrics.Addr)
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: noisy\n"), 0o644))

	_, err := NewLoader(WithConfigPath(path)).Load()
	require.Error(t, err)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o644))

	t.Setenv("PARAHPF_LOG_LEVEL", "warn")
	cfg, err := NewLoader(WithConfigPath(path)).Load()
	require.NoError(t, err)
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestWatchRequiresConfigPath(t *testing.T) {
	_, err := NewLoader().Watch(func(*Config, error) {})
	require.Error(t, err)
}
