package store

import "time"

// VideoSource maps a short identifier to a registered source URL.
// Immutable once created.
type VideoSource struct {
	ID        string
	SourceURL string
	CreatedAt time.Time
}
