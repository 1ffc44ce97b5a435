package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/anshita195/share-reading-watch-lists/internal/fallback"
	"github.com/anshita195/share-reading-watch-lists/internal/logging"
	"github.com/anshita195/share-reading-watch-lists/internal/page"
	"github.com/anshita195/share-reading-watch-lists/internal/tracker"
)

// Execute implements the go-flags Commander interface for AddCommand.
func (c *AddCommand) Execute(args []string) error {
	if c.URL == "" {
		return fmt.Errorf("--url is required for add command")
	}

	// Validate URL format up front; the engine would drop it silently,
	// but the CLI user wants an explicit error.
	parsed, err := url.ParseRequestURI(c.URL)
	if err != nil || parsed.Host == "" {
		return fmt.Errorf("invalid URL: %s", c.URL)
	}

	cfg, _, err := loadConfig(c.globals)
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if c.globals.Verbose {
		level = "debug"
	}
	logger := logging.New(level)

	store, db, err := openStore(cfg, nil)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	defer store.Close()

	client, err := newBackendClient(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if cfg.Backend.Username != "" {
		if err := client.Login(ctx, cfg.Backend.Username, cfg.Backend.Password); err != nil {
			logger.Warn("backend login failed", "error", err)
		}
	}

	title := c.Title
	if c.Fetch {
		info, err := page.NewProber(nil).Probe(ctx, c.URL)
		if err != nil {
			return fmt.Errorf("fetching page: %w", err)
		}
		if title == "" {
			title = info.Title
		}
	}

	engine := tracker.NewEngine(tracker.Rules{
		VideoDomains:        cfg.Tracking.VideoDomains,
		SearchEngineDomains: cfg.Tracking.SearchEngineDomains,
		TitleWordThreshold:  cfg.Tracking.TitleWordThreshold,
	}, cfg.Tracking.DedupWindow(), logger.With("component", "engine"))

	pipeline := tracker.NewPipeline(engine, client, store, client, logger.With("component", "pipeline"))

	return c.executeWithPipeline(ctx, pipeline, tracker.PageEvent{
		URL:        c.URL,
		Title:      title,
		ObservedAt: time.Now(),
	}, store)
}

// executeWithPipeline runs the add logic against a provided pipeline (used by tests).
func (c *AddCommand) executeWithPipeline(ctx context.Context, pipeline *tracker.Pipeline, ev tracker.PageEvent, store fallback.Store) error {
	decision := pipeline.Handle(ctx, ev)

	if c.globals.JSON {
		out := map[string]interface{}{
			"url":     ev.URL,
			"title":   ev.Title,
			"tracked": decision.Track,
			"kind":    string(decision.Kind),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if !decision.Track {
		fmt.Printf("Not tracked: %s\n", ev.URL)
		return nil
	}

	fmt.Printf("Tracked %s (%s)\n", ev.URL, decision.Kind)
	if ev.Title != "" {
		fmt.Printf("  Title: %s\n", ev.Title)
	}
	return nil
}
