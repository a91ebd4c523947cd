package transcode

import "testing"

func TestBitrateToBandwidth(t *testing.T) {
	tests := []struct {
		bitrate string
		want    uint32
	}{
		{"1000k", 1_000_000},
		{"800K", 800_000},
		{"2M", 2_000_000},
		{"500000", 500_000},
		{"", 0},
		{"fast", 0},
	}

	for _, tt := range tests {
		t.Run(tt.bitrate, func(t *testing.T) {
			if got := bitrateToBandwidth(tt.bitrate); got != tt.want {
				t.Errorf("bitrateToBandwidth(%q) = %d, want %d", tt.bitrate, got, tt.want)
			}
		})
	}
}
