// Package daemon runs the local HTTP service the browser extension talks
// to: it ingests page events, serves a merged view of remote and queued
// items, and streams tracked-item notifications for live UI refresh.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/anshita195/share-reading-watch-lists/internal/config"
	"github.com/anshita195/share-reading-watch-lists/internal/fallback"
	"github.com/anshita195/share-reading-watch-lists/internal/tracker"
)

// Remote is the slice of the backend client the daemon reads from.
type Remote interface {
	Username() string
	UserItems(ctx context.Context, username string) ([]tracker.Item, error)
}

// Server is the local ingest daemon.
type Server struct {
	cfg      config.DaemonConfig
	pipeline *tracker.Pipeline
	store    fallback.Store
	broker   *fallback.Broker
	remote   Remote
	logger   *slog.Logger
	limiter  *rate.Limiter
}

// New wires a Server. The broker must be the one the fallback store
// publishes to, so /updates sees every locally queued item.
func New(cfg config.DaemonConfig, pipeline *tracker.Pipeline, store fallback.Store, broker *fallback.Broker, remote Remote, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	eps := cfg.EventsPerSecond
	if eps <= 0 {
		eps = 5
	}
	burst := cfg.EventBurst
	if burst <= 0 {
		burst = 10
	}
	return &Server{
		cfg:      cfg,
		pipeline: pipeline,
		store:    store,
		broker:   broker,
		remote:   remote,
		logger:   logger,
		limiter:  rate.NewLimiter(rate.Limit(eps), burst),
	}
}

// Handler builds the instrumented HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /event", s.handleEvent)
	mux.HandleFunc("GET /items", s.handleItems)
	mux.HandleFunc("GET /updates", s.handleUpdates)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return otelhttp.NewHandler(mux, "readwatch-daemon")
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprintf("%d", s.cfg.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("daemon listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// handleEvent ingests one PageEvent from the extension. The response tells
// the extension what happened, but tracking failures are never an error
// status: tracking is best-effort and must not disturb browsing.
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		http.Error(w, `{"error":"too many events"}`, http.StatusTooManyRequests)
		return
	}

	var ev tracker.PageEvent
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&ev); err != nil {
		http.Error(w, `{"error":"bad event payload"}`, http.StatusBadRequest)
		return
	}
	if ev.URL == "" {
		http.Error(w, `{"error":"url is required"}`, http.StatusBadRequest)
		return
	}
	if ev.ObservedAt.IsZero() {
		ev.ObservedAt = time.Now()
	}

	decision := s.pipeline.Handle(r.Context(), ev)

	writeJSON(w, http.StatusOK, map[string]any{
		"tracked": decision.Track,
		"kind":    decision.Kind,
	})
}

// handleItems serves the read-through merge: backend items first, then
// local-only queued items, deduplicated by URL with remote precedence.
// With the backend unreachable the local queue alone is served.
func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	local, err := s.store.ReadAll(ctx)
	if err != nil {
		s.logger.Error("reading local queue", "error", err)
		local = nil
	}

	var remote []tracker.Item
	if username := s.remote.Username(); username != "" {
		remote, err = s.remote.UserItems(ctx, username)
		if err != nil {
			s.logger.Warn("backend unavailable, serving local items only", "error", err)
			remote = nil
		}
	}

	writeJSON(w, http.StatusOK, tracker.Merge(remote, local))
}

// handleUpdates streams tracked-item notifications as server-sent events.
func (s *Server) handleUpdates(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch, cancel := s.broker.Subscribe(16)
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case item, ok := <-ch:
			if !ok {
				return
			}
			payload, err := json.Marshal(item)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: tracked\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
