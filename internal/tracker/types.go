package tracker

import "time"

// Kind classifies a tracked page.
type Kind string

const (
	KindArticle Kind = "article"
	KindVideo   Kind = "video"
	KindNone    Kind = "none"
)

// PageEvent is one observed navigation, delivered by the browser extension
// (or by manual CLI ingestion).
type PageEvent struct {
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	ObservedAt time.Time `json:"observed_at"`
}

// Decision is the outcome of evaluating a single PageEvent.
type Decision struct {
	Track bool
	Kind  Kind
}

// Item is a tracked article or video attributed to a user. Immutable once
// created; persisted either on the backend or in the local fallback store.
type Item struct {
	ID         string    `json:"id,omitempty"`
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	Kind       Kind      `json:"type"`
	Username   string    `json:"username,omitempty"`
	CapturedAt time.Time `json:"captured_at,omitempty"`
}
