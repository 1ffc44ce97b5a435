package fallback

import "database/sql"

// migrateV001 creates the initial schema for the local fallback queue.
// Every statement uses IF NOT EXISTS for idempotency.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		// seq preserves insertion order for ReadAll.
		`CREATE TABLE IF NOT EXISTS items (
			seq         INTEGER PRIMARY KEY AUTOINCREMENT,
			id          TEXT NOT NULL UNIQUE,
			url         TEXT NOT NULL,
			title       TEXT NOT NULL DEFAULT '',
			kind        TEXT NOT NULL CHECK (kind IN ('article', 'video')),
			username    TEXT NOT NULL,
			captured_at DATETIME NOT NULL,
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_items_captured_at ON items(captured_at)`,
		`CREATE INDEX IF NOT EXISTS idx_items_kind        ON items(kind)`,
		`CREATE INDEX IF NOT EXISTS idx_items_username    ON items(username)`,
		`CREATE INDEX IF NOT EXISTS idx_items_url         ON items(url)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
