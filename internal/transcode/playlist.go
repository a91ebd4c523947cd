package transcode

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/grafov/m3u8"
)

// WriteMasterPlaylist writes an HLS master playlist into dir referencing
// the media playlist, advertising the single bitrate tier the converter
// produces.
func WriteMasterPlaylist(dir, mediaURI string, opts Options) error {
	master := m3u8.NewMasterPlaylist()
	master.Append(mediaURI, nil, m3u8.VariantParams{
		Bandwidth:  bitrateToBandwidth(opts.VideoBitrate),
		Resolution: opts.Resolution,
		FrameRate:  float64(opts.FrameRate),
	})

	path := filepath.Join(dir, hlsMaster)
	if err := os.WriteFile(path, master.Encode().Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", hlsMaster, err)
	}

	return nil
}

// bitrateToBandwidth converts an ffmpeg bitrate string ("1000k", "2M",
// "800000") to bits per second. Unparseable values yield 0, which the
// playlist encoder omits.
func bitrateToBandwidth(bitrate string) uint32 {
	s := strings.TrimSpace(bitrate)
	if s == "" {
		return 0
	}

	mult := uint64(1)
	switch s[len(s)-1] {
	case 'k', 'K':
		mult = 1000
		s = s[:len(s)-1]
	case 'm', 'M':
		mult = 1000 * 1000
		s = s[:len(s)-1]
	}

	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}

	return uint32(n * mult)
}
