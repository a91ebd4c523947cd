package youtube

// Format is one stream rendition reported by the player endpoint.
type Format struct {
	Itag          int
	Label         string // quality label, e.g. "1080p"
	MimeType      string
	Bitrate       int
	ContentLength int64 // 0 when the endpoint omits it
	HasVideo      bool
	HasAudio      bool
	URL           string
}

// VideoInfo is the aggregate metadata for one video.
type VideoInfo struct {
	ID        string
	Title     string
	Thumbnail string
	Formats   []Format
}

// playerResponse mirrors the subset of the Innertube player payload we need.
type playerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	VideoDetails struct {
		VideoID   string `json:"videoId"`
		Title     string `json:"title"`
		Thumbnail struct {
			Thumbnails []struct {
				URL    string `json:"url"`
				Width  int    `json:"width"`
				Height int    `json:"height"`
			} `json:"thumbnails"`
		} `json:"thumbnail"`
	} `json:"videoDetails"`
	StreamingData struct {
		Formats         []rawFormat `json:"formats"`
		AdaptiveFormats []rawFormat `json:"adaptiveFormats"`
	} `json:"streamingData"`
}

type rawFormat struct {
	Itag          int    `json:"itag"`
	URL           string `json:"url"`
	MimeType      string `json:"mimeType"`
	Bitrate       int    `json:"bitrate"`
	ContentLength string `json:"contentLength"`
	QualityLabel  string `json:"qualityLabel"`
	AudioQuality  string `json:"audioQuality"`
}
