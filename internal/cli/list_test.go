package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anshita195/share-reading-watch-lists/internal/tracker"
)

func TestListShowsLocalItems(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, tracker.Item{
		URL: "https://example.com/a", Title: "Queued Article", Kind: tracker.KindArticle, Username: "alice",
	}))

	cmd := &ListCommand{Limit: 50, globals: &GlobalFlags{}}
	output := captureStdout(t, func() {
		require.NoError(t, cmd.executeWithItems(ctx, store, nil))
	})

	assert.Contains(t, output, "Queued Article")
	assert.Contains(t, output, "https://example.com/a")
	assert.Contains(t, output, "1 items")
}

func TestListMergesRemoteFirst(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, tracker.Item{
		URL: "https://example.com/shared", Title: "Local Copy", Kind: tracker.KindArticle,
	}))

	remote := []tracker.Item{
		{ID: "1", URL: "https://example.com/shared", Title: "Remote Copy", Kind: tracker.KindArticle, CapturedAt: time.Now()},
	}

	cmd := &ListCommand{Limit: 50, globals: &GlobalFlags{}}
	output := captureStdout(t, func() {
		require.NoError(t, cmd.executeWithItems(ctx, store, remote))
	})

	assert.Contains(t, output, "Remote Copy")
	assert.NotContains(t, output, "Local Copy")
	assert.Contains(t, output, "1 items")
}

func TestListFilterByKind(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, tracker.Item{
		URL: "https://example.com/a", Title: "An Article", Kind: tracker.KindArticle,
	}))
	require.NoError(t, store.Append(ctx, tracker.Item{
		URL: "https://youtube.com/watch?v=x", Title: "A Video", Kind: tracker.KindVideo,
	}))

	cmd := &ListCommand{Kind: "video", Limit: 50, globals: &GlobalFlags{}}
	output := captureStdout(t, func() {
		require.NoError(t, cmd.executeWithItems(ctx, store, nil))
	})

	assert.Contains(t, output, "A Video")
	assert.NotContains(t, output, "An Article")
}

func TestListLimit(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	for _, url := range []string{"https://a.example.com", "https://b.example.com", "https://c.example.com"} {
		require.NoError(t, store.Append(ctx, tracker.Item{URL: url, Title: "T", Kind: tracker.KindArticle}))
	}

	cmd := &ListCommand{Limit: 2, globals: &GlobalFlags{}}
	output := captureStdout(t, func() {
		require.NoError(t, cmd.executeWithItems(ctx, store, nil))
	})

	assert.Contains(t, output, "2 items")
}

func TestListEmpty(t *testing.T) {
	store := testStore(t)

	cmd := &ListCommand{Limit: 50, globals: &GlobalFlags{}}
	output := captureStdout(t, func() {
		require.NoError(t, cmd.executeWithItems(context.Background(), store, nil))
	})

	assert.Contains(t, output, "No tracked items.")
}

func TestListJSONOutput(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, tracker.Item{
		URL: "https://example.com/a", Title: "Queued Article", Kind: tracker.KindArticle,
	}))

	cmd := &ListCommand{Limit: 50, globals: &GlobalFlags{JSON: true}}
	output := captureStdout(t, func() {
		require.NoError(t, cmd.executeWithItems(ctx, store, nil))
	})

	assert.Contains(t, output, `"url": "https://example.com/a"`)
	assert.Contains(t, output, `"type": "article"`)
}

func TestListInvalidSince(t *testing.T) {
	store := testStore(t)

	cmd := &ListCommand{Since: "bogus", Limit: 50, globals: &GlobalFlags{}}
	err := cmd.executeWithItems(context.Background(), store, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}
