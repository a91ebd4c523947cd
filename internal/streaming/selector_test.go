package streaming

import (
	"errors"
	"testing"
)

func descriptors() []QualityDescriptor {
	return []QualityDescriptor{
		{Label: "360p", Container: "mp4", Bitrate: 800_000},
		{Label: "1080p", Container: "mp4", Bitrate: 4_000_000},
		{Label: "720p", Container: "webm", Bitrate: 2_500_000},
	}
}

func TestSelectExactMatch(t *testing.T) {
	for _, label := range []string{"360p", "1080p", "720p"} {
		t.Run(label, func(t *testing.T) {
			got, err := Select(descriptors(), label)
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			if got.Label != label {
				t.Errorf("Select(%q).Label = %q", label, got.Label)
			}
		})
	}
}

func TestSelectFallsBackToFirst(t *testing.T) {
	// The fallback is first-in-set order, never highest quality.
	tests := []struct {
		name  string
		label string
	}{
		{"absent label", "480p"},
		{"empty label", ""},
		{"garbage label", "best"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select(descriptors(), tt.label)
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			if got.Label != "360p" {
				t.Errorf("Select(%q).Label = %q, want first descriptor 360p", tt.label, got.Label)
			}
		})
	}
}

func TestSelectEmptySet(t *testing.T) {
	_, err := Select(nil, "1080p")
	if !errors.Is(err, ErrNoFormats) {
		t.Errorf("Select(nil) error = %v, want ErrNoFormats", err)
	}
}
