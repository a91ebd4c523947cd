package streaming

import "errors"

// ErrNoFormats signals an empty descriptor set.
var ErrNoFormats = errors.New("no formats available")

// Select picks the descriptor matching the requested quality label.
// When no label matches (including an empty label), it falls back to the
// FIRST descriptor in the set's original order, not the highest quality.
// The player sorts labels for display; the backend fallback is
// order-of-first-result and callers depend on that.
func Select(descriptors []QualityDescriptor, requestedLabel string) (QualityDescriptor, error) {
	if len(descriptors) == 0 {
		return QualityDescriptor{}, ErrNoFormats
	}

	for _, d := range descriptors {
		if d.Label == requestedLabel {
			return d, nil
		}
	}

	return descriptors[0], nil
}
