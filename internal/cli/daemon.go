package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/anshita195/share-reading-watch-lists/internal/config"
	"github.com/anshita195/share-reading-watch-lists/internal/daemon"
	"github.com/anshita195/share-reading-watch-lists/internal/fallback"
	"github.com/anshita195/share-reading-watch-lists/internal/logging"
	"github.com/anshita195/share-reading-watch-lists/internal/tracker"
)

// Execute implements the go-flags Commander interface for DaemonCommand.
func (c *DaemonCommand) Execute(args []string) error {
	cfg, cfgPath, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	if c.Host != "" {
		cfg.Daemon.Host = c.Host
	}
	if c.Port != 0 {
		cfg.Daemon.Port = c.Port
	}

	level := cfg.Logging.Level
	if c.globals.Verbose {
		level = "debug"
	}
	logger := logging.New(level)

	broker := fallback.NewBroker()
	store, db, err := openStore(cfg, broker)
	if err != nil {
		return err
	}
	defer db.Close()
	defer store.Close()

	client, err := newBackendClient(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Best effort: a failed login means the daemon runs unauthenticated
	// and drops tracked items until credentials work.
	if cfg.Backend.Username != "" {
		if err := client.Login(ctx, cfg.Backend.Username, cfg.Backend.Password); err != nil {
			logger.Warn("backend login failed, tracking disabled until login succeeds",
				"username", cfg.Backend.Username, "error", err)
		}
	} else {
		logger.Info("no stored credentials, tracked items will be dropped (run: readwatch login)")
	}

	engine := tracker.NewEngine(tracker.Rules{
		VideoDomains:        cfg.Tracking.VideoDomains,
		SearchEngineDomains: cfg.Tracking.SearchEngineDomains,
		TitleWordThreshold:  cfg.Tracking.TitleWordThreshold,
	}, cfg.Tracking.DedupWindow(), logger.With("component", "engine"))

	pipeline := tracker.NewPipeline(engine, client, store, client, logger.With("component", "pipeline"))

	// Rule changes (domain lists, threshold) apply without a restart.
	go func() {
		err := config.Watch(ctx, cfgPath, logger.With("component", "config"), func(next *config.Config) {
			engine.SwapRules(tracker.Rules{
				VideoDomains:        next.Tracking.VideoDomains,
				SearchEngineDomains: next.Tracking.SearchEngineDomains,
				TitleWordThreshold:  next.Tracking.TitleWordThreshold,
			})
		})
		if err != nil && ctx.Err() == nil {
			logger.Warn("config watcher stopped", "error", err)
		}
	}()

	srv := daemon.New(cfg.Daemon, pipeline, store, broker, client, logger.With("component", "daemon"))
	return srv.Run(ctx)
}
