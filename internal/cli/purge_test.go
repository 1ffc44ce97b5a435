package cli

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anshita195/share-reading-watch-lists/internal/fallback"
	"github.com/anshita195/share-reading-watch-lists/internal/tracker"
)

// openTestDB opens a migrated in-memory database for purge tests that need
// the raw connection injected.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, fallback.NewMigrationRunner(db).Run())
	return db
}

func seedDB(t *testing.T, db *sql.DB, n int) {
	t.Helper()
	store, err := fallback.NewSQLiteStore(db, nil)
	require.NoError(t, err)
	defer store.Close()
	for i := 0; i < n; i++ {
		require.NoError(t, store.Append(context.Background(), tracker.Item{
			URL:        "https://example.com/a",
			Title:      "Seeded",
			Kind:       tracker.KindArticle,
			CapturedAt: time.Now(),
		}))
	}
}

func countItems(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM items").Scan(&n))
	return n
}

func TestPurgeRequiresAllFlag(t *testing.T) {
	cmd := &PurgeCommand{globals: &GlobalFlags{}}
	err := cmd.Execute(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--all")
}

func TestPurgeWithForceDeletesEverything(t *testing.T) {
	db := openTestDB(t)
	seedDB(t, db, 3)

	cmd := &PurgeCommand{All: true, Force: true, globals: &GlobalFlags{}}
	cmd.setDB(db)

	output := captureStdout(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})

	assert.Contains(t, output, "Purged the local queue.")
	assert.Equal(t, 0, countItems(t, db))
}

func TestPurgeJSONOutput(t *testing.T) {
	db := openTestDB(t)
	seedDB(t, db, 1)

	cmd := &PurgeCommand{All: true, Force: true, globals: &GlobalFlags{JSON: true}}
	cmd.setDB(db)

	output := captureStdout(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})

	assert.Contains(t, output, `"purged":true`)
	assert.Equal(t, 0, countItems(t, db))
}

func TestPurgeEmptyQueue(t *testing.T) {
	db := openTestDB(t)

	cmd := &PurgeCommand{All: true, Force: true, globals: &GlobalFlags{}}
	cmd.setDB(db)

	require.NoError(t, cmd.Execute(nil))
	assert.Equal(t, 0, countItems(t, db))
}
