package cli

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anshita195/share-reading-watch-lists/internal/config"
	"github.com/anshita195/share-reading-watch-lists/internal/fallback"
	"github.com/anshita195/share-reading-watch-lists/internal/tracker"
)

// statusFixture builds a config, store, and raw db for status tests. The
// config points at an unused port so the daemon check reports not running.
func statusFixture(t *testing.T) (*config.Config, *fallback.SQLiteStore, *sql.DB) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, fallback.NewMigrationRunner(db).Run())

	store, err := fallback.NewSQLiteStore(db, nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := config.DefaultConfig()
	cfg.Storage.Path = t.TempDir()
	cfg.Daemon.Port = 1 // nothing listens here

	return cfg, store, db
}

func TestStatusEmptyQueue(t *testing.T) {
	cfg, store, db := statusFixture(t)

	cmd := &StatusCommand{version: "0.1.0-test", globals: &GlobalFlags{}}
	output := captureStdout(t, func() {
		require.NoError(t, cmd.executeWithStore(cfg, store, db))
	})

	assert.Contains(t, output, "Readwatch Status")
	assert.Contains(t, output, "Version:       0.1.0-test")
	assert.Contains(t, output, "Queued:        0 (0 articles, 0 videos)")
	assert.Contains(t, output, "Daemon:        not running")
	assert.Contains(t, output, "not logged in")
}

func TestStatusCountsByKind(t *testing.T) {
	cfg, store, db := statusFixture(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, tracker.Item{
		URL: "https://example.com/a", Title: "A", Kind: tracker.KindArticle, Username: "alice", CapturedAt: time.Now(),
	}))
	require.NoError(t, store.Append(ctx, tracker.Item{
		URL: "https://youtube.com/watch?v=x", Title: "V", Kind: tracker.KindVideo, Username: "alice", CapturedAt: time.Now(),
	}))

	cmd := &StatusCommand{version: "test", globals: &GlobalFlags{}}
	output := captureStdout(t, func() {
		require.NoError(t, cmd.executeWithStore(cfg, store, db))
	})

	assert.Contains(t, output, "Queued:        2 (1 articles, 1 videos)")
	assert.Contains(t, output, "Queued By:")
	assert.Contains(t, output, "alice")
}

func TestStatusJSONOutput(t *testing.T) {
	cfg, store, db := statusFixture(t)

	require.NoError(t, store.Append(context.Background(), tracker.Item{
		URL: "https://example.com/a", Title: "A", Kind: tracker.KindArticle, CapturedAt: time.Now(),
	}))

	cmd := &StatusCommand{version: "1.0.0", globals: &GlobalFlags{JSON: true}}
	output := captureStdout(t, func() {
		require.NoError(t, cmd.executeWithStore(cfg, store, db))
	})

	assert.Contains(t, output, `"version": "1.0.0"`)
	assert.Contains(t, output, `"queued_items": 1`)
	assert.Contains(t, output, `"daemon_running": false`)
	assert.Contains(t, output, `"logged_in": false`)
}

func TestStatusShowsRetention(t *testing.T) {
	cfg, store, db := statusFixture(t)
	cfg.Retention.Days = 14

	cmd := &StatusCommand{version: "test", globals: &GlobalFlags{}}
	output := captureStdout(t, func() {
		require.NoError(t, cmd.executeWithStore(cfg, store, db))
	})

	assert.Contains(t, output, "Retention:     14 days")
}
