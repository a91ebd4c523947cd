package source

import "errors"

// Sentinel errors for source resolution.
var (
	// ErrNotFound covers both an unknown identifier and a stored URL
	// whose video reference cannot be extracted.
	ErrNotFound = errors.New("url not found")
	// ErrUpstream covers metadata service failures. Never silently
	// swallowed into a default value.
	ErrUpstream = errors.New("upstream metadata query failed")
)
