package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDedupCache_SeenAndMark(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	cache := newDedupCache(2*time.Minute, clock.now)

	assert.False(t, cache.Seen("https://a.com"))

	cache.Mark("https://a.com")
	assert.True(t, cache.Seen("https://a.com"))
	assert.False(t, cache.Seen("https://b.com"))
}

func TestDedupCache_ExpiryIsExclusive(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	cache := newDedupCache(2*time.Minute, clock.now)

	cache.Mark("https://a.com")

	clock.advance(2*time.Minute - time.Second)
	assert.True(t, cache.Seen("https://a.com"), "just inside the window")

	clock.advance(time.Second)
	assert.False(t, cache.Seen("https://a.com"), "at window age the entry is gone")
}

func TestDedupCache_MarkRefreshesEntry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	cache := newDedupCache(2*time.Minute, clock.now)

	cache.Mark("https://a.com")
	clock.advance(90 * time.Second)
	cache.Mark("https://a.com")
	assert.Equal(t, 1, cache.len(), "at most one live entry per URL")

	clock.advance(90 * time.Second)
	assert.True(t, cache.Seen("https://a.com"), "refresh restarts the window")
}

func TestDedupCache_PurgeIsAmortized(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	cache := newDedupCache(2*time.Minute, clock.now)

	cache.Mark("https://a.com")
	cache.Mark("https://b.com")
	clock.advance(3 * time.Minute)
	cache.Mark("https://c.com")

	// Any Seen call drops every expired entry, not just the queried one.
	cache.Seen("https://z.com")
	assert.Equal(t, 1, cache.len())
}
