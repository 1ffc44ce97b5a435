package tracker

// Merge combines the remote and local item lists for display, deduplicating
// by URL with remote taking precedence. Order is remote items first (as
// returned by the backend), then local-only items in insertion order.
func Merge(remote, local []Item) []Item {
	merged := make([]Item, 0, len(remote)+len(local))
	seen := make(map[string]struct{}, len(remote))

	for _, it := range remote {
		if _, ok := seen[it.URL]; ok {
			continue
		}
		seen[it.URL] = struct{}{}
		merged = append(merged, it)
	}
	for _, it := range local {
		if _, ok := seen[it.URL]; ok {
			continue
		}
		seen[it.URL] = struct{}{}
		merged = append(merged, it)
	}

	return merged
}
