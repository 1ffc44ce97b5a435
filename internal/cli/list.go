package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/anshita195/share-reading-watch-lists/internal/fallback"
	"github.com/anshita195/share-reading-watch-lists/internal/tracker"
)

// Execute implements the go-flags Commander interface for ListCommand.
func (c *ListCommand) Execute(args []string) error {
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

	ctx := context.Background()

	var remote []tracker.Item
	if !c.Local && cfg.Backend.Username != "" {
		client, err := newBackendClient(cfg)
		if err != nil {
			return err
		}
		if err := client.Login(ctx, cfg.Backend.Username, cfg.Backend.Password); err == nil {
			remote, err = client.UserItems(ctx, cfg.Backend.Username)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: backend unavailable, showing local items only: %v\n", err)
				remote = nil
			}
		}
	}

	return c.executeWithItems(ctx, store, remote)
}

// executeWithItems merges and prints against a provided store and remote
// snapshot (used by tests).
func (c *ListCommand) executeWithItems(ctx context.Context, store fallback.Store, remote []tracker.Item) error {
	query := fallback.ListQuery{Kind: c.Kind, Limit: c.Limit}
	if c.Since != "" {
		d, err := parseDuration(c.Since)
		if err != nil {
			return err
		}
		query.Since = time.Now().Add(-d)
	}

	local, err := store.List(ctx, query)
	if err != nil {
		return fmt.Errorf("reading local queue: %w", err)
	}

	items := tracker.Merge(remote, local)
	if c.Kind != "" {
		filtered := items[:0]
		for _, it := range items {
			if string(it.Kind) == c.Kind {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}
	if c.Limit > 0 && len(items) > c.Limit {
		items = items[:c.Limit]
	}

	if c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	if len(items) == 0 {
		fmt.Println("No tracked items.")
		return nil
	}

	for _, it := range items {
		ts := ""
		if !it.CapturedAt.IsZero() {
			ts = it.CapturedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Printf("%-7s %-16s %s\n", it.Kind, ts, it.Title)
		fmt.Printf("        %s\n", it.URL)
	}
	fmt.Printf("\n%d items\n", len(items))
	return nil
}
