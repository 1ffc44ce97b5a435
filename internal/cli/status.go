package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/anshita195/share-reading-watch-lists/internal/config"
	"github.com/anshita195/share-reading-watch-lists/internal/fallback"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version           string          `json:"version"`
	DatabasePath      string          `json:"database_path"`
	DatabaseSizeBytes int64           `json:"database_size_bytes"`
	QueuedItems       int64           `json:"queued_items"`
	QueuedArticles    int64           `json:"queued_articles"`
	QueuedVideos      int64           `json:"queued_videos"`
	OldestItem        string          `json:"oldest_item,omitempty"`
	NewestItem        string          `json:"newest_item,omitempty"`
	RetentionDays     int             `json:"retention_days"`
	TopUsernames      []userCountJSON `json:"top_usernames"`
	DaemonRunning     bool            `json:"daemon_running"`
	Username          string          `json:"username,omitempty"`
	LoggedIn          bool            `json:"logged_in"`
}

type userCountJSON struct {
	Username string `json:"username"`
	Count    int64  `json:"count"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	cfg, _, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	store, db, err := openStore(cfg, nil)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithStore(cfg, store, db)
}

// executeWithStore runs status against a provided store and db (for testing).
func (c *StatusCommand) executeWithStore(cfg *config.Config, store *fallback.SQLiteStore, db *sql.DB) error {
	ctx := context.Background()

	stats, err := store.GetStats(ctx)
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	dbPath, _ := cfg.DatabasePath()
	dbSize := getDatabaseSize(db, dbPath)
	daemonRunning := checkDaemon(cfg)

	loggedIn := false
	username := cfg.Backend.Username
	if username != "" {
		if client, err := newBackendClient(cfg); err == nil {
			if err := client.Login(ctx, username, cfg.Backend.Password); err == nil {
				loggedIn = true
			}
		}
	}

	if c.globals != nil && c.globals.JSON {
		return c.printStatusJSON(cfg, stats, dbPath, dbSize, daemonRunning, username, loggedIn)
	}
	return c.printStatusHuman(cfg, stats, dbPath, dbSize, daemonRunning, username, loggedIn)
}

func (c *StatusCommand) printStatusHuman(cfg *config.Config, stats *fallback.Stats, dbPath string, dbSize int64, daemonRunning bool, username string, loggedIn bool) error {
	fmt.Println("Readwatch Status")
	fmt.Println("================")
	fmt.Printf("Version:       %s\n", c.version)
	fmt.Printf("Database:      %s (%s)\n", dbPath, formatBytes(dbSize))
	fmt.Printf("Queued:        %s (%s articles, %s videos)\n",
		formatNumber(stats.TotalItems), formatNumber(stats.Articles), formatNumber(stats.Videos))

	if stats.TotalItems > 0 {
		fmt.Printf("Oldest:        %s\n", stats.OldestItem.Local().Format("2006-01-02"))
		fmt.Printf("Newest:        %s\n", stats.NewestItem.Local().Format("2006-01-02"))
	}

	fmt.Printf("Retention:     %d days\n", cfg.Retention.Days)

	if len(stats.TopUsernames) > 0 {
		fmt.Println()
		fmt.Println("Queued By:")
		for _, u := range stats.TopUsernames {
			fmt.Printf("  %-20s %s\n", u.Username, formatNumber(u.Count))
		}
	}

	fmt.Println()
	if daemonRunning {
		fmt.Println("Daemon:        running")
	} else {
		fmt.Println("Daemon:        not running")
	}
	switch {
	case loggedIn:
		fmt.Printf("Session:       logged in as %s\n", username)
	case username != "":
		fmt.Printf("Session:       stored credentials for %s are not working, please log in again\n", username)
	default:
		fmt.Println("Session:       not logged in (run: readwatch login)")
	}

	return nil
}

func (c *StatusCommand) printStatusJSON(cfg *config.Config, stats *fallback.Stats, dbPath string, dbSize int64, daemonRunning bool, username string, loggedIn bool) error {
	out := statusJSON{
		Version:           c.version,
		DatabasePath:      dbPath,
		DatabaseSizeBytes: dbSize,
		QueuedItems:       stats.TotalItems,
		QueuedArticles:    stats.Articles,
		QueuedVideos:      stats.Videos,
		RetentionDays:     cfg.Retention.Days,
		TopUsernames:      make([]userCountJSON, len(stats.TopUsernames)),
		DaemonRunning:     daemonRunning,
		Username:          username,
		LoggedIn:          loggedIn,
	}

	if stats.TotalItems > 0 {
		out.OldestItem = stats.OldestItem.UTC().Format(time.RFC3339)
		out.NewestItem = stats.NewestItem.UTC().Format(time.RFC3339)
	}

	for i, u := range stats.TopUsernames {
		out.TopUsernames[i] = userCountJSON{Username: u.Username, Count: u.Count}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// getDatabaseSize returns the database file size in bytes.
// For on-disk databases, it uses os.Stat. For in-memory databases,
// it queries page_count * page_size.
func getDatabaseSize(db *sql.DB, dbPath string) int64 {
	// Try file stat first
	if info, err := os.Stat(dbPath); err == nil {
		return info.Size()
	}

	// Fallback: query SQLite for in-memory or unavailable file
	var pageCount, pageSize int64
	if err := db.QueryRow("PRAGMA page_count").Scan(&pageCount); err != nil {
		return 0
	}
	if err := db.QueryRow("PRAGMA page_size").Scan(&pageSize); err != nil {
		return 0
	}
	return pageCount * pageSize
}

// checkDaemon attempts an HTTP GET to the configured daemon endpoint.
// Returns true if the daemon responds within 1 second.
func checkDaemon(cfg *config.Config) bool {
	client := &http.Client{Timeout: 1 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://%s:%d/healthz", cfg.Daemon.Host, cfg.Daemon.Port))
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
