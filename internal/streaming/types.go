package streaming

// QualityDescriptor describes one encoded stream available for a video.
// A fresh set is produced on every metadata query; descriptors are unique
// by label within one result and keep the upstream's reporting order.
type QualityDescriptor struct {
	Label         string // quality label, e.g. "1080p"
	Container     string // container format, e.g. "mp4"
	Bitrate       int
	ContentLength int64 // 0 when upstream does not report it
	HasVideo      bool
	HasAudio      bool

	// StreamURL is the underlying media stream on the external host.
	// Never serialized to clients.
	StreamURL string `json:"-"`
}
