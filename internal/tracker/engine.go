package tracker

import (
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Rules holds the classification policy the engine evaluates against.
// Instances are treated as immutable; SwapRules replaces the whole set.
type Rules struct {
	VideoDomains        []string
	SearchEngineDomains []string
	TitleWordThreshold  int
}

// Engine decides, per page event, whether a page should be tracked and how
// it is classified. It owns the dedup cache for the life of the process.
type Engine struct {
	mu     sync.Mutex
	rules  Rules
	dedup  *dedupCache
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the dedup cache clock. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.dedup.now = now }
}

// NewEngine creates an Engine with the given rules and dedup window.
func NewEngine(rules Rules, window time.Duration, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		rules:  rules,
		dedup:  newDedupCache(window, nil),
		logger: logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SwapRules replaces the rule set. Dedup state is kept; a rule change does
// not make recently tracked URLs eligible again.
func (e *Engine) SwapRules(rules Rules) {
	e.mu.Lock()
	e.rules = rules
	e.mu.Unlock()
}

// Evaluate applies the tracking policy to a single event:
// dedup gate, search-engine suppression, video-site match, then the
// title word-count heuristic. Tracking outcomes record a dedup entry;
// every call opportunistically purges expired entries.
func (e *Engine) Evaluate(ev PageEvent) Decision {
	e.mu.Lock()
	defer e.mu.Unlock()

	u, err := url.Parse(ev.URL)
	if err != nil || u.Host == "" {
		e.logger.Debug("dropping unparseable url", "url", ev.URL)
		return Decision{Track: false, Kind: KindNone}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		// Browser-internal pages (chrome://, about:, …) are never content.
		e.logger.Debug("dropping non-web scheme", "url", ev.URL)
		return Decision{Track: false, Kind: KindNone}
	}

	if e.dedup.Seen(ev.URL) {
		return Decision{Track: false, Kind: KindNone}
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")

	if matchDomain(host, e.rules.SearchEngineDomains) && isSearchResults(u) {
		return Decision{Track: false, Kind: KindNone}
	}

	if matchDomain(host, e.rules.VideoDomains) {
		e.dedup.Mark(ev.URL)
		return Decision{Track: true, Kind: KindVideo}
	}

	if len(strings.Fields(ev.Title)) > e.rules.TitleWordThreshold {
		e.dedup.Mark(ev.URL)
		return Decision{Track: true, Kind: KindArticle}
	}

	return Decision{Track: false, Kind: KindNone}
}

// DedupLen reports the number of live dedup entries (for status output).
func (e *Engine) DedupLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dedup.purge()
	return e.dedup.len()
}

// matchDomain reports whether host equals one of the configured domains or
// is a subdomain of one.
func matchDomain(host string, domains []string) bool {
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// isSearchResults reports whether the URL looks like a search results page:
// a path segment named "search", or a q/query parameter.
func isSearchResults(u *url.URL) bool {
	for _, seg := range strings.Split(strings.Trim(u.Path, "/"), "/") {
		if seg == "search" {
			return true
		}
	}
	q := u.Query()
	return q.Has("q") || q.Has("query")
}
