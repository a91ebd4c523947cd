package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shapedtime/vidrelay/internal/store"
	"github.com/shapedtime/vidrelay/internal/streaming"
	"github.com/shapedtime/vidrelay/internal/youtube"
)

const lowestTier = "144p"

// VideoSourceInfo is the resolved view of a registered video: its video
// reference on the external host plus the available quality formats.
type VideoSourceInfo struct {
	VideoID   string
	Title     string
	Thumbnail string
	Formats   []streaming.QualityDescriptor
}

// Labels returns the quality labels in descriptor order.
func (i *VideoSourceInfo) Labels() []string {
	labels := make([]string, 0, len(i.Formats))
	for _, f := range i.Formats {
		labels = append(labels, f.Label)
	}
	return labels
}

// Lookup finds a registered video source by identifier.
type Lookup interface {
	FindByID(id string) (*store.VideoSource, error)
}

// MetadataClient queries the external video host for stream metadata.
type MetadataClient interface {
	GetVideoInfo(ctx context.Context, videoID string) (*youtube.VideoInfo, error)
}

// MetadataCache is an optional read-through cache for resolved info.
type MetadataCache interface {
	Get(key string, out any) (bool, error)
	Set(key string, value any) error
}

// HitCounter counts metadata lookups answered from the cache.
// prometheus.Counter satisfies it.
type HitCounter interface {
	Inc()
}

// Resolver maps identifiers to video sources and their quality formats.
// Resolution has no side effects beyond the cache and is safe to run
// concurrently for different identifiers.
type Resolver struct {
	urls      Lookup
	meta      MetadataClient
	cache     MetadataCache // may be nil
	cacheHits HitCounter    // may be nil
	log       *slog.Logger
}

// NewResolver creates a resolver. cache may be nil to disable caching.
func NewResolver(urls Lookup, meta MetadataClient, cache MetadataCache) *Resolver {
	return &Resolver{
		urls:  urls,
		meta:  meta,
		cache: cache,
		log:   slog.With("component", "resolver"),
	}
}

// SetCacheHitCounter installs a counter incremented on every cache hit.
func (r *Resolver) SetCacheHitCounter(c HitCounter) {
	r.cacheHits = c
}

// Resolve looks up the identifier and queries the external host for the
// available formats. Unknown identifiers and unresolvable video
// references yield ErrNotFound; metadata failures yield ErrUpstream.
func (r *Resolver) Resolve(ctx context.Context, identifier string) (*VideoSourceInfo, error) {
	src, err := r.urls.FindByID(identifier)
	if err != nil {
		return nil, fmt.Errorf("store lookup failed: %w", err)
	}
	if src == nil {
		return nil, ErrNotFound
	}

	videoID, err := youtube.ExtractVideoID(src.SourceURL)
	if err != nil {
		// A stored URL we cannot extract a reference from is
		// indistinguishable from an unknown one to the client.
		r.log.Warn("unresolvable video reference", "id", identifier, "error", err)
		return nil, ErrNotFound
	}

	if r.cache != nil {
		cached := &VideoSourceInfo{}
		if ok, err := r.cache.Get(videoID, cached); err != nil {
			r.log.Warn("cache read failed", "video_id", videoID, "error", err)
		} else if ok {
			if r.cacheHits != nil {
				r.cacheHits.Inc()
			}
			return cached, nil
		}
	}

	meta, err := r.meta.GetVideoInfo(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	info := &VideoSourceInfo{
		VideoID:   videoID,
		Title:     meta.Title,
		Thumbnail: meta.Thumbnail,
		Formats:   buildDescriptors(meta.Formats),
	}

	if r.cache != nil {
		if err := r.cache.Set(videoID, info); err != nil {
			r.log.Warn("cache write failed", "video_id", videoID, "error", err)
		}
	}

	return info, nil
}

// buildDescriptors converts host formats to quality descriptors, keeping
// the upstream order. Only video-bearing formats are kept, labels are
// unique (first occurrence wins; adaptive sets repeat labels across
// containers), and the lowest tier (144p) is excluded unless it is the
// only video-bearing option.
func buildDescriptors(formats []youtube.Format) []streaming.QualityDescriptor {
	var descriptors []streaming.QualityDescriptor
	seen := make(map[string]bool)
	higherTierExists := false

	for _, f := range formats {
		if !f.HasVideo || seen[f.Label] {
			continue
		}
		seen[f.Label] = true
		if f.Label != lowestTier {
			higherTierExists = true
		}
		descriptors = append(descriptors, streaming.QualityDescriptor{
			Label:         f.Label,
			Container:     youtube.Container(f.MimeType),
			Bitrate:       f.Bitrate,
			ContentLength: f.ContentLength,
			HasVideo:      f.HasVideo,
			HasAudio:      f.HasAudio,
			StreamURL:     f.URL,
		})
	}

	if !higherTierExists {
		return descriptors
	}

	filtered := descriptors[:0]
	for _, d := range descriptors {
		if d.Label == lowestTier {
			continue
		}
		filtered = append(filtered, d)
	}

	return filtered
}
