// Package fallback is the durable local queue for items that could not be
// submitted to the backend. The daemon writes, UI surfaces read; entries are
// only ever appended at tracking time and removed by explicit prune/purge.
package fallback

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/anshita195/share-reading-watch-lists/internal/tracker"
)

// Store defines the local fallback queue operations.
type Store interface {
	Append(ctx context.Context, item tracker.Item) error
	ReadAll(ctx context.Context) ([]tracker.Item, error)
	List(ctx context.Context, query ListQuery) ([]tracker.Item, error)
	Prune(ctx context.Context, olderThan time.Time) (int64, error)
	PurgeAll(ctx context.Context) error
	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB

	// Prepared statements
	insertItem *sql.Stmt

	// Optional: notified after every successful append.
	broker *Broker
}

// NewSQLiteStore creates a SQLiteStore from an already-opened and migrated
// database. broker may be nil when nothing listens for tracked-item
// notifications (one-shot CLI commands).
func NewSQLiteStore(db *sql.DB, broker *Broker) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db, broker: broker}

	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.insertItem, err = s.db.Prepare(`
		INSERT INTO items (id, url, title, kind, username, captured_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}

	return nil
}

// generateID creates a queue entry ID: RWL- + 8 random hex chars.
func generateID() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "RWL-" + hex.EncodeToString(b), nil
}

// parseTimestamp tries several common SQLite timestamp formats.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}

// Append adds item to the queue and notifies subscribers. The item's ID is
// populated automatically; a zero CapturedAt defaults to now. No dedup is
// attempted against items already on the backend; display-time merging owns
// that.
func (s *SQLiteStore) Append(ctx context.Context, item tracker.Item) error {
	id, err := generateID()
	if err != nil {
		return fmt.Errorf("generate ID: %w", err)
	}
	item.ID = id

	if item.CapturedAt.IsZero() {
		item.CapturedAt = time.Now()
	}

	_, err = s.insertItem.ExecContext(ctx,
		item.ID, item.URL, item.Title, string(item.Kind), item.Username,
		item.CapturedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}

	if s.broker != nil {
		s.broker.Publish(item)
	}

	return nil
}

// ReadAll returns a snapshot of the whole queue in insertion order.
func (s *SQLiteStore) ReadAll(ctx context.Context) ([]tracker.Item, error) {
	return s.scanItems(ctx,
		"SELECT id, url, title, kind, username, captured_at FROM items ORDER BY seq",
	)
}

// List queries queued items with optional filters, newest first.
func (s *SQLiteStore) List(ctx context.Context, q ListQuery) ([]tracker.Item, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}

	builder := sq.Select("id", "url", "title", "kind", "username", "captured_at").
		From("items").
		OrderBy("captured_at DESC, seq DESC").
		Limit(uint64(q.Limit)).
		Offset(uint64(q.Offset))

	if q.Kind != "" {
		builder = builder.Where(sq.Eq{"kind": q.Kind})
	}
	if q.Username != "" {
		builder = builder.Where(sq.Eq{"username": q.Username})
	}
	if !q.Since.IsZero() {
		builder = builder.Where(sq.GtOrEq{"captured_at": q.Since.UTC().Format(time.RFC3339)})
	}
	if !q.Until.IsZero() {
		builder = builder.Where(sq.LtOrEq{"captured_at": q.Until.UTC().Format(time.RFC3339)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	return s.scanItems(ctx, query, args...)
}

// scanItems executes a query and scans results into Item slices.
func (s *SQLiteStore) scanItems(ctx context.Context, query string, args ...interface{}) ([]tracker.Item, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []tracker.Item
	for rows.Next() {
		var it tracker.Item
		var kind, tsStr string
		if err := rows.Scan(&it.ID, &it.URL, &it.Title, &kind, &it.Username, &tsStr); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		it.Kind = tracker.Kind(kind)
		it.CapturedAt, _ = parseTimestamp(tsStr)
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Return empty slice rather than nil
	if items == nil {
		items = []tracker.Item{}
	}

	return items, nil
}

// Prune deletes queued items captured at or before olderThan. The cutoff
// is inclusive so a dry run over the same instant reports exactly the rows
// a real run removes.
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM items WHERE captured_at <= ?",
		olderThan.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("prune items: %w", err)
	}
	return res.RowsAffected()
}

// PurgeAll deletes every queued item.
func (s *SQLiteStore) PurgeAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM items"); err != nil {
		return fmt.Errorf("purge items: %w", err)
	}
	return nil
}

// GetStats returns aggregate statistics about the queue.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&stats.TotalItems)
	if err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM items WHERE kind = 'article'",
	).Scan(&stats.Articles)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}
	stats.Videos = stats.TotalItems - stats.Articles

	// Oldest and newest (handle empty queue)
	if stats.TotalItems > 0 {
		var oldestStr, newestStr string
		err = s.db.QueryRowContext(ctx,
			"SELECT MIN(captured_at), MAX(captured_at) FROM items",
		).Scan(&oldestStr, &newestStr)
		if err != nil {
			return nil, fmt.Errorf("item time range: %w", err)
		}
		stats.OldestItem, _ = parseTimestamp(oldestStr)
		stats.NewestItem, _ = parseTimestamp(newestStr)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT username, COUNT(*) as cnt FROM items GROUP BY username ORDER BY cnt DESC LIMIT 10",
	)
	if err != nil {
		return nil, fmt.Errorf("top usernames: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var uc UserCount
		if err := rows.Scan(&uc.Username, &uc.Count); err != nil {
			return nil, err
		}
		stats.TopUsernames = append(stats.TopUsernames, uc)
	}

	return stats, rows.Err()
}

// Close releases all prepared statements. The underlying *sql.DB is NOT
// closed — that is the caller's responsibility.
func (s *SQLiteStore) Close() error {
	stmts := []*sql.Stmt{s.insertItem}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}
