package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const playerURL = "https://www.youtube.com/youtubei/v1/player"

// The Android client gets direct stream URLs without signature deciphering.
const (
	clientName    = "ANDROID"
	clientVersion = "19.09.37"
	androidSDK    = 30
)

// Client queries the video host's player endpoint for metadata.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new metadata client
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetVideoInfo fetches title, thumbnail and the available stream formats
// for a video. Formats are returned in the order the endpoint reports them;
// callers depend on that order for fallback selection.
func (c *Client) GetVideoInfo(ctx context.Context, videoID string) (*VideoInfo, error) {
	payload := map[string]any{
		"videoId": videoID,
		"context": map[string]any{
			"client": map[string]any{
				"clientName":        clientName,
				"clientVersion":     clientVersion,
				"androidSdkVersion": androidSDK,
				"hl":                "en",
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode player request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, playerURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", fmt.Sprintf("com.google.android.youtube/%s (Linux; U; Android 11) gzip", clientVersion))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("player request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("player request failed: status %d", resp.StatusCode)
	}

	var pr playerResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("failed to decode player response: %w", err)
	}

	if pr.PlayabilityStatus.Status != "OK" {
		return nil, fmt.Errorf("video not playable: %s (%s)",
			pr.PlayabilityStatus.Status, pr.PlayabilityStatus.Reason)
	}

	info := &VideoInfo{
		ID:    pr.VideoDetails.VideoID,
		Title: pr.VideoDetails.Title,
	}

	// Highest-resolution thumbnail is listed last
	if thumbs := pr.VideoDetails.Thumbnail.Thumbnails; len(thumbs) > 0 {
		info.Thumbnail = thumbs[len(thumbs)-1].URL
	}

	// Muxed formats first, then adaptive, preserving endpoint order within each
	for _, rf := range pr.StreamingData.Formats {
		info.Formats = append(info.Formats, convertFormat(rf))
	}
	for _, rf := range pr.StreamingData.AdaptiveFormats {
		info.Formats = append(info.Formats, convertFormat(rf))
	}

	return info, nil
}

func convertFormat(rf rawFormat) Format {
	f := Format{
		Itag:     rf.Itag,
		Label:    rf.QualityLabel,
		MimeType: rf.MimeType,
		Bitrate:  rf.Bitrate,
		URL:      rf.URL,
		HasVideo: strings.HasPrefix(rf.MimeType, "video/"),
		HasAudio: rf.AudioQuality != "" || strings.HasPrefix(rf.MimeType, "audio/"),
	}

	if rf.ContentLength != "" {
		if n, err := strconv.ParseInt(rf.ContentLength, 10, 64); err == nil {
			f.ContentLength = n
		}
	}

	return f
}

// Container extracts the container name from a format's MIME type,
// e.g. "video/mp4; codecs=..." -> "mp4".
func Container(mimeType string) string {
	mt, _, _ := strings.Cut(mimeType, ";")
	_, sub, ok := strings.Cut(strings.TrimSpace(mt), "/")
	if !ok {
		return ""
	}
	return sub
}
