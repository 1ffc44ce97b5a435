package tracker

import "time"

// dedupCache suppresses repeated events for the same URL within a TTL window.
// It lives for the process lifetime only and is never persisted. The clock is
// injectable so tests can advance time without sleeping.
type dedupCache struct {
	window  time.Duration
	now     func() time.Time
	entries map[string]time.Time
}

func newDedupCache(window time.Duration, now func() time.Time) *dedupCache {
	if now == nil {
		now = time.Now
	}
	return &dedupCache{
		window:  window,
		now:     now,
		entries: make(map[string]time.Time),
	}
}

// Seen reports whether url has a live entry, purging expired entries first.
// The purge is amortized over evaluations; there is no background timer.
func (c *dedupCache) Seen(url string) bool {
	c.purge()
	_, ok := c.entries[url]
	return ok
}

// Mark records url as tracked now, replacing any previous entry.
func (c *dedupCache) Mark(url string) {
	c.entries[url] = c.now()
}

func (c *dedupCache) purge() {
	cutoff := c.now().Add(-c.window)
	for url, ts := range c.entries {
		if ts.Before(cutoff) || ts.Equal(cutoff) {
			delete(c.entries, url)
		}
	}
}

func (c *dedupCache) len() int {
	return len(c.entries)
}
