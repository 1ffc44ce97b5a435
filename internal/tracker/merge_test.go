package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge_RemoteWinsOnURL(t *testing.T) {
	remote := []Item{
		{ID: "1", URL: "https://a.com", Title: "Remote A", Kind: KindArticle},
		{ID: "2", URL: "https://b.com", Title: "Remote B", Kind: KindVideo},
	}
	local := []Item{
		{URL: "https://a.com", Title: "Local A", Kind: KindArticle},
		{URL: "https://c.com", Title: "Local C", Kind: KindArticle},
	}

	merged := Merge(remote, local)

	assert.Len(t, merged, 3)
	assert.Equal(t, "Remote A", merged[0].Title, "remote copy takes precedence")
	assert.Equal(t, "Remote B", merged[1].Title)
	assert.Equal(t, "Local C", merged[2].Title, "local-only items keep insertion order")
}

func TestMerge_EmptyInputs(t *testing.T) {
	assert.Empty(t, Merge(nil, nil))
	assert.Len(t, Merge(nil, []Item{{URL: "https://a.com"}}), 1)
	assert.Len(t, Merge([]Item{{URL: "https://a.com"}}, nil), 1)
}

func TestMerge_DuplicatesWithinOneSide(t *testing.T) {
	remote := []Item{
		{URL: "https://a.com", Title: "First"},
		{URL: "https://a.com", Title: "Second"},
	}
	merged := Merge(remote, nil)
	assert.Len(t, merged, 1)
	assert.Equal(t, "First", merged[0].Title)
}
