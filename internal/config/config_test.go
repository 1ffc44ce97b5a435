package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://127.0.0.1:5000", cfg.Backend.URL)
	assert.Equal(t, 15, cfg.Backend.TimeoutSeconds)
	assert.Empty(t, cfg.Backend.Username)
	assert.Equal(t, "127.0.0.1", cfg.Daemon.Host)
	assert.Equal(t, 8743, cfg.Daemon.Port)
	assert.Equal(t, float64(5), cfg.Daemon.EventsPerSecond)
	assert.Equal(t, 10, cfg.Daemon.EventBurst)
	assert.Equal(t, 120, cfg.Tracking.DedupWindowSeconds)
	assert.Equal(t, 2*time.Minute, cfg.Tracking.DedupWindow())
	assert.Equal(t, 4, cfg.Tracking.TitleWordThreshold)
	assert.Contains(t, cfg.Tracking.VideoDomains, "youtube.com")
	assert.Contains(t, cfg.Tracking.SearchEngineDomains, "google.com")
	assert.Equal(t, 30, cfg.Retention.Days)
	assert.Equal(t, "~/.config/readwatch", cfg.Storage.Path)
	assert.Equal(t, "readwatch.db", cfg.Storage.SQLiteFile)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_MergesWithDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
backend:
  url: https://lists.example.com
tracking:
  dedup_window_seconds: 60
  title_word_threshold: 6
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Overridden values.
	assert.Equal(t, "https://lists.example.com", cfg.Backend.URL)
	assert.Equal(t, 60, cfg.Tracking.DedupWindowSeconds)
	assert.Equal(t, 6, cfg.Tracking.TitleWordThreshold)

	// Untouched fields keep defaults.
	assert.Equal(t, 8743, cfg.Daemon.Port)
	assert.Equal(t, 30, cfg.Retention.Days)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{{not yaml"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSave_LoadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Backend.Username = "alice"
	cfg.Backend.Password = "s3cret"
	cfg.Daemon.Port = 9000

	require.NoError(t, Save(path, cfg))

	// Credentials live in the file so it must not be world-readable.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "alice", loaded.Backend.Username)
	assert.Equal(t, "s3cret", loaded.Backend.Password)
	assert.Equal(t, 9000, loaded.Daemon.Port)
}

func TestLoadOrCreateAt_CreatesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.yaml")

	cfg, err := LoadOrCreateAt(path)
	require.NoError(t, err)
	assert.Equal(t, 8743, cfg.Daemon.Port)

	// File was written and a second load sees the same values.
	_, err = os.Stat(path)
	require.NoError(t, err)

	again, err := LoadOrCreateAt(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Daemon.Port, again.Daemon.Port)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := ExpandPath("~/.config/readwatch")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config/readwatch"), expanded)

	plain, err := ExpandPath("/tmp/readwatch")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/readwatch", plain)
}

func TestDatabasePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Path = "/var/lib/readwatch"

	path, err := cfg.DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/readwatch/readwatch.db", path)
}

func TestDefaultVideoDomains(t *testing.T) {
	domains := DefaultVideoDomains()
	assert.Contains(t, domains, "youtube.com")
	assert.Contains(t, domains, "youtu.be")
	assert.Contains(t, domains, "vimeo.com")
	assert.Contains(t, domains, "netflix.com")
}

func TestDefaultSearchEngineDomains(t *testing.T) {
	domains := DefaultSearchEngineDomains()
	assert.Contains(t, domains, "google.com")
	assert.Contains(t, domains, "duckduckgo.com")
	assert.Contains(t, domains, "search.brave.com")
}
