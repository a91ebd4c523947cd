package transcode

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// Manifest file names per packaging format.
const (
	dashManifest  = "manifest.mpd"
	hlsPlaylist   = "media.m3u8"
	hlsMaster     = "master.m3u8"
	hlsSegmentTpl = "segment_%05d.ts"
)

// Options are the encode parameters for one adaptive-bitrate package.
// Defaults match the single tier the service has always produced.
type Options struct {
	KeyframeInterval int
	Profile          string
	VideoBitrate     string
	Resolution       string
	FrameRate        int
	// Format selects the packaging: "dash" (manifest.mpd + m4s
	// segments) or "hls" (media.m3u8 + ts segments + master playlist).
	Format string
}

// DefaultOptions returns the historical fixed encode parameters.
func DefaultOptions() Options {
	return Options{
		KeyframeInterval: 48,
		Profile:          "main",
		VideoBitrate:     "1000k",
		Resolution:       "640x360",
		FrameRate:        30,
		Format:           "dash",
	}
}

// EngineError reports an external engine failure, carrying the engine's
// stderr so callers see the failure verbatim.
type EngineError struct {
	Err    error
	Stderr string
}

func (e *EngineError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("transcode engine: %v: %s", e.Err, e.Stderr)
	}
	return fmt.Sprintf("transcode engine: %v", e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// Converter drives the external transcoding engine (ffmpeg).
type Converter struct {
	ffmpegPath string
	opts       Options
	log        *slog.Logger
}

// NewConverter creates a converter invoking ffmpegPath with opts.
func NewConverter(ffmpegPath string, opts Options) *Converter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Converter{
		ffmpegPath: ffmpegPath,
		opts:       opts,
		log:        slog.With("component", "transcoder"),
	}
}

// Convert runs the engine on inputPath, producing a segmented
// adaptive-bitrate package in outputDir, and returns the paths of every
// file present there afterwards (manifest plus media segments). Invoking
// it against a non-empty outputDir is undefined: stale files end up in
// the returned listing.
func (c *Converter) Convert(ctx context.Context, inputPath, outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	args := c.args(inputPath, outputDir)

	c.log.Info("starting transcode",
		"input", inputPath,
		"output_dir", outputDir,
		"format", c.opts.Format,
	)

	cmd := exec.CommandContext(ctx, c.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &EngineError{Err: err, Stderr: stderr.String()}
	}

	if c.opts.Format == "hls" {
		if err := WriteMasterPlaylist(outputDir, hlsPlaylist, c.opts); err != nil {
			return nil, fmt.Errorf("failed to write master playlist: %w", err)
		}
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list output dir: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, filepath.Join(outputDir, entry.Name()))
	}

	c.log.Info("transcode complete", "input", inputPath, "files", len(files))

	return files, nil
}

func (c *Converter) args(inputPath, outputDir string) []string {
	gop := strconv.Itoa(c.opts.KeyframeInterval)

	args := []string{
		"-y",
		"-i", inputPath,
		"-preset", "fast",
		"-g", gop,
		"-keyint_min", gop,
		"-sc_threshold", "0",
		"-profile:v", c.opts.Profile,
		"-b:v", c.opts.VideoBitrate,
		"-s", c.opts.Resolution,
		"-r", strconv.Itoa(c.opts.FrameRate),
	}

	switch c.opts.Format {
	case "hls":
		args = append(args,
			"-f", "hls",
			"-hls_time", "4",
			"-hls_playlist_type", "vod",
			"-hls_segment_filename", filepath.Join(outputDir, hlsSegmentTpl),
			filepath.Join(outputDir, hlsPlaylist),
		)
	default: // dash
		args = append(args,
			"-use_template", "1",
			"-use_timeline", "1",
			"-b_strategy", "0",
			"-bf", "1",
			"-map", "0",
			"-f", "dash",
			filepath.Join(outputDir, dashManifest),
		)
	}

	return args
}
