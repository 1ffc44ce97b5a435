package fallback

import "time"

// ListQuery defines optional filters for listing queued items.
type ListQuery struct {
	Kind     string
	Username string
	Since    time.Time
	Until    time.Time
	Limit    int
	Offset   int
}

// Stats holds aggregate statistics about the local fallback queue.
type Stats struct {
	TotalItems   int64
	Articles     int64
	Videos       int64
	OldestItem   time.Time
	NewestItem   time.Time
	TopUsernames []UserCount
}

// UserCount pairs a username with its queued item count.
type UserCount struct {
	Username string
	Count    int64
}
