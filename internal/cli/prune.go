package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/anshita195/share-reading-watch-lists/internal/fallback"
)

// Execute implements the go-flags Commander interface for PruneCommand.
func (c *PruneCommand) Execute(args []string) error {
	cfg, _, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	retention := time.Duration(cfg.Retention.Days) * 24 * time.Hour
	if c.OlderThan != "" {
		retention, err = parseDuration(c.OlderThan)
		if err != nil {
			return err
		}
	}

	store, db, err := openStore(cfg, nil)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	return c.executeWithStore(store, retention)
}

// executeWithStore runs the prune against a provided store (used by tests).
func (c *PruneCommand) executeWithStore(store fallback.Store, retention time.Duration) error {
	ctx := context.Background()
	cutoff := time.Now().Add(-retention)

	var pruned int64
	var err error
	if c.DryRun {
		matching, listErr := store.List(ctx, fallback.ListQuery{Until: cutoff, Limit: 1 << 30})
		if listErr != nil {
			return fmt.Errorf("counting prunable items: %w", listErr)
		}
		pruned = int64(len(matching))
	} else {
		pruned, err = store.Prune(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("pruning: %w", err)
		}
	}

	if c.globals.JSON {
		out := map[string]interface{}{
			"pruned":  pruned,
			"cutoff":  cutoff.UTC().Format(time.RFC3339),
			"dry_run": c.DryRun,
		}
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(out)
	}

	if c.DryRun {
		fmt.Printf("Would prune %d items older than %s\n", pruned, cutoff.Local().Format("2006-01-02"))
		return nil
	}
	fmt.Printf("Pruned %d items older than %s\n", pruned, cutoff.Local().Format("2006-01-02"))
	return nil
}
