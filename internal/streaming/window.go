package streaming

import "strconv"

// WindowSize is the fixed number of bytes served per range request.
// The player keeps issuing successive range requests to continue
// playback, so the server never honors a client-supplied end offset.
const WindowSize int64 = 1_000_000

// ByteWindow is the byte range the server commits to fetching and
// returning for one request. Start and End are inclusive.
type ByteWindow struct {
	Start int64
	End   int64
}

// Size returns the number of bytes in the window.
func (w ByteWindow) Size() int64 {
	return w.End - w.Start + 1
}

// NewWindow computes the fixed-size window beginning at start.
func NewWindow(start int64) ByteWindow {
	return ByteWindow{Start: start, End: start + WindowSize - 1}
}

// ParseStart extracts the starting byte offset from a Range header value
// by stripping every non-digit character. "bytes=500-" parses to 500.
// This is a single leading numeric token policy, not RFC 7233 range-set
// parsing; multi-range requests collapse into one number.
func ParseStart(rangeHeader string) int64 {
	var digits []byte
	for i := 0; i < len(rangeHeader); i++ {
		if c := rangeHeader[i]; c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}

	if len(digits) == 0 {
		return 0
	}

	start, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		return 0
	}

	return start
}

// ContentRange formats the Content-Range header for a window. An unknown
// total length (zero) is emitted as "*" per RFC 9110.
func (w ByteWindow) ContentRange(totalLength int64) string {
	total := "*"
	if totalLength > 0 {
		total = strconv.FormatInt(totalLength, 10)
	}
	return "bytes " + strconv.FormatInt(w.Start, 10) + "-" + strconv.FormatInt(w.End, 10) + "/" + total
}
