package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ASTROLOG_CONFIG", "ASTROLOG_DB_PATH", "ASTROLOG_PAGE_SIZE",
		"ASTROLOG_LOG_LEVEL", "ASTROLOG_LOG_FILE", "ASTROLOG_NO_CACHE",
	} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")

	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, log.InfoLevel, cfg.LogLevel())
	require.Equal(t, "astrolog.log", cfg.LogPath())
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "astrolog.yaml", `
db:
  path: data/logs.db
view:
  page_size: 50
log:
  level: debug
cache:
  disabled: true
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	require.Equal(t, "data/logs.db", cfg.DB.Path)
	require.Equal(t, 50, cfg.View.PageSize)
	require.Equal(t, log.DebugLevel, cfg.LogLevel())
	require.True(t, cfg.Cache.Disabled)
	require.Equal(t, filepath.Join("data", "astrolog.log"), cfg.LogPath())
}

func TestLoadConfigPathFromEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "c.yaml", "view:\n  page_size: 7\n")
	t.Setenv("ASTROLOG_CONFIG", path)

	cfg, err := Load("")

	require.NoError(t, err)
	require.Equal(t, 7, cfg.View.PageSize)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "c.yaml", "db:\n  path: file.db\nview:\n  page_size: 30\n")
	t.Setenv("ASTROLOG_DB_PATH", "env.db")
	t.Setenv("ASTROLOG_PAGE_SIZE", "10")
	t.Setenv("ASTROLOG_LOG_LEVEL", "warn")
	t.Setenv("ASTROLOG_LOG_FILE", "/tmp/astro.log")
	t.Setenv("ASTROLOG_NO_CACHE", "true")

	cfg, err := Load(path)

	require.NoError(t, err)
	require.Equal(t, "env.db", cfg.DB.Path)
	require.Equal(t, 10, cfg.View.PageSize)
	require.Equal(t, log.WarnLevel, cfg.LogLevel())
	require.Equal(t, "/tmp/astro.log", cfg.LogPath())
	require.True(t, cfg.Cache.Disabled)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		file string
	}{
		{name: "non-numeric page size", env: map[string]string{"ASTROLOG_PAGE_SIZE": "lots"}},
		{name: "zero page size", env: map[string]string{"ASTROLOG_PAGE_SIZE": "0"}},
		{name: "bad log level", env: map[string]string{"ASTROLOG_LOG_LEVEL": "chatty"}},
		{name: "bad bool", env: map[string]string{"ASTROLOG_NO_CACHE": "maybe"}},
		{name: "bad yaml", file: "view: [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeFile(t, "bad.yaml", tt.file)
			}

			_, err := Load(path)

			require.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
}
