package streaming

import "testing"

func TestParseStart(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   int64
	}{
		{"open-ended range", "bytes=500-", 500},
		{"range with end", "bytes=500-1999", 5001999},
		{"zero start", "bytes=0-", 0},
		{"no digits", "bytes=-", 0},
		{"empty header", "", 0},
		{"large offset", "bytes=123456789-", 123456789},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseStart(tt.header); got != tt.want {
				t.Errorf("ParseStart(%q) = %d, want %d", tt.header, got, tt.want)
			}
		})
	}
}

func TestNewWindow(t *testing.T) {
	tests := []struct {
		name    string
		start   int64
		wantEnd int64
	}{
		{"start of file", 0, 999999},
		{"mid file", 500, 1000499},
		{"large offset", 50_000_000, 50_999_999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWindow(tt.start)
			if w.Start != tt.start {
				t.Errorf("Start = %d, want %d", w.Start, tt.start)
			}
			if w.End != tt.wantEnd {
				t.Errorf("End = %d, want %d", w.End, tt.wantEnd)
			}
			if w.Size() != WindowSize {
				t.Errorf("Size() = %d, want %d", w.Size(), WindowSize)
			}
		})
	}
}

func TestContentRange(t *testing.T) {
	tests := []struct {
		name  string
		w     ByteWindow
		total int64
		want  string
	}{
		{"known total", ByteWindow{Start: 500, End: 1000499}, 12345678, "bytes 500-1000499/12345678"},
		{"unknown total", ByteWindow{Start: 0, End: 999999}, 0, "bytes 0-999999/*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.w.ContentRange(tt.total); got != tt.want {
				t.Errorf("ContentRange(%d) = %q, want %q", tt.total, got, tt.want)
			}
		})
	}
}
