package tracker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// ErrUnauthenticated marks a submission rejected because there is no valid
// session. Submitters report it (wrapped is fine) so Handle can drop the
// item instead of queuing it; a queued item would later replay against the
// backend with nobody to own it.
var ErrUnauthenticated = errors.New("not logged in")

// Submitter sends a tracked item to the remote backend. One attempt only;
// any failure is reported to the caller, which decides the fallback.
type Submitter interface {
	CreateItem(ctx context.Context, item Item) error
}

// Fallback persists items locally when the backend is unreachable.
type Fallback interface {
	Append(ctx context.Context, item Item) error
}

// Identity resolves the authenticated username at submission time.
// An empty string means no session.
type Identity interface {
	Username() string
}

// Pipeline drives a PageEvent through evaluation, submission, and local
// fallback. Tracking is best-effort: no outcome of Handle ever propagates
// as a failure to the event source.
type Pipeline struct {
	engine   *Engine
	submit   Submitter
	fallback Fallback
	identity Identity
	logger   *slog.Logger
	now      func() time.Time
}

// NewPipeline wires the engine driver. A nil now defaults to time.Now.
func NewPipeline(engine *Engine, submit Submitter, fallback Fallback, identity Identity, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		engine:   engine,
		submit:   submit,
		fallback: fallback,
		identity: identity,
		logger:   logger,
		now:      time.Now,
	}
}

// Handle evaluates one event and, when it passes the gate, submits the
// resulting item, falling back to the local store on transport failure.
// An unauthenticated session drops the item outright; it is never queued.
func (p *Pipeline) Handle(ctx context.Context, ev PageEvent) Decision {
	ctx, span := otel.Tracer("tracker").Start(ctx, "pipeline.handle")
	defer span.End()

	decision := p.engine.Evaluate(ev)
	span.SetAttributes(
		attribute.Bool("track", decision.Track),
		attribute.String("kind", string(decision.Kind)),
	)
	if !decision.Track {
		return decision
	}

	username := p.identity.Username()
	if username == "" {
		p.logger.Info("no session, dropping item", "url", ev.URL)
		return decision
	}

	item := Item{
		URL:        ev.URL,
		Title:      ev.Title,
		Kind:       decision.Kind,
		Username:   username,
		CapturedAt: p.now(),
	}

	if err := p.submit.CreateItem(ctx, item); err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			// The session died between the identity check and the
			// submit. Same rule as no session at all: drop, never queue.
			p.logger.Warn("session rejected, dropping item", "url", item.URL, "error", err)
			return decision
		}
		p.logger.Warn("backend submit failed, queuing locally", "url", item.URL, "error", err)
		if ferr := p.fallback.Append(ctx, item); ferr != nil {
			// Accepted data loss: the local write was the last resort.
			p.logger.Error("fallback write failed, item lost", "url", item.URL, "error", ferr)
		}
		return decision
	}

	p.logger.Debug("item submitted", "url", item.URL, "kind", item.Kind)
	return decision
}
