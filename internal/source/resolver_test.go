package source

import (
	"context"
	"errors"
	"testing"

	"github.com/shapedtime/vidrelay/internal/store"
	"github.com/shapedtime/vidrelay/internal/youtube"
)

type fakeLookup struct {
	sources map[string]string
	err     error
}

func (f *fakeLookup) FindByID(id string) (*store.VideoSource, error) {
	if f.err != nil {
		return nil, f.err
	}
	url, ok := f.sources[id]
	if !ok {
		return nil, nil
	}
	return &store.VideoSource{ID: id, SourceURL: url}, nil
}

type fakeMetadata struct {
	info  *youtube.VideoInfo
	err   error
	calls int
}

func (f *fakeMetadata) GetVideoInfo(ctx context.Context, videoID string) (*youtube.VideoInfo, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.info, nil
}

type mapCache struct {
	values map[string]*VideoSourceInfo
}

func (c *mapCache) Get(key string, out any) (bool, error) {
	v, ok := c.values[key]
	if !ok {
		return false, nil
	}
	*(out.(*VideoSourceInfo)) = *v
	return true, nil
}

func (c *mapCache) Set(key string, value any) error {
	if c.values == nil {
		c.values = make(map[string]*VideoSourceInfo)
	}
	c.values[key] = value.(*VideoSourceInfo)
	return nil
}

type countingHits struct {
	n int
}

func (c *countingHits) Inc() {
	c.n++
}

const watchURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

func videoFormat(label string, contentLength int64) youtube.Format {
	return youtube.Format{
		Label:         label,
		MimeType:      "video/mp4; codecs=\"avc1.64001F\"",
		Bitrate:       1_000_000,
		ContentLength: contentLength,
		HasVideo:      true,
		HasAudio:      true,
		URL:           "https://host.example/stream/" + label,
	}
}

func audioFormat() youtube.Format {
	return youtube.Format{
		MimeType: "audio/mp4; codecs=\"mp4a.40.2\"",
		Bitrate:  128_000,
		HasAudio: true,
		URL:      "https://host.example/stream/audio",
	}
}

func TestResolveUnknownIdentifier(t *testing.T) {
	r := NewResolver(&fakeLookup{}, &fakeMetadata{}, nil)

	_, err := r.Resolve(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve() error = %v, want ErrNotFound", err)
	}
}

func TestResolveMalformedReference(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"no v parameter", "https://www.youtube.com/playlist?list=abc"},
		{"short reference", "https://www.youtube.com/watch?v=short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := &fakeMetadata{}
			r := NewResolver(&fakeLookup{sources: map[string]string{"abc": tt.url}}, meta, nil)

			_, err := r.Resolve(context.Background(), "abc")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Resolve() error = %v, want ErrNotFound", err)
			}
			if meta.calls != 0 {
				t.Errorf("metadata queried %d times for malformed reference", meta.calls)
			}
		})
	}
}

func TestResolveUpstreamFailure(t *testing.T) {
	lookup := &fakeLookup{sources: map[string]string{"abc": watchURL}}
	meta := &fakeMetadata{err: errors.New("connection refused")}
	r := NewResolver(lookup, meta, nil)

	_, err := r.Resolve(context.Background(), "abc")
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("Resolve() error = %v, want ErrUpstream", err)
	}
}

func TestResolveExcludesLowestTier(t *testing.T) {
	lookup := &fakeLookup{sources: map[string]string{"abc": watchURL}}
	meta := &fakeMetadata{info: &youtube.VideoInfo{
		ID:    "dQw4w9WgXcQ",
		Title: "test",
		Formats: []youtube.Format{
			videoFormat("360p", 100),
			videoFormat("144p", 50),
			videoFormat("720p", 200),
			audioFormat(),
		},
	}}
	r := NewResolver(lookup, meta, nil)

	info, err := r.Resolve(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	want := []string{"360p", "720p"}
	got := info.Labels()
	if len(got) != len(want) {
		t.Fatalf("Labels() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Labels()[%d] = %q, want %q (order must follow upstream)", i, got[i], want[i])
		}
	}
}

func TestResolveKeepsLowestTierWhenOnlyOption(t *testing.T) {
	lookup := &fakeLookup{sources: map[string]string{"abc": watchURL}}
	meta := &fakeMetadata{info: &youtube.VideoInfo{
		ID: "dQw4w9WgXcQ",
		Formats: []youtube.Format{
			audioFormat(),
			videoFormat("144p", 50),
		},
	}}
	r := NewResolver(lookup, meta, nil)

	info, err := r.Resolve(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if len(info.Formats) != 1 || info.Formats[0].Label != "144p" {
		t.Errorf("Labels() = %v, want [144p]", info.Labels())
	}
}

func TestResolveUsesCache(t *testing.T) {
	lookup := &fakeLookup{sources: map[string]string{"abc": watchURL}}
	meta := &fakeMetadata{info: &youtube.VideoInfo{
		ID:      "dQw4w9WgXcQ",
		Formats: []youtube.Format{videoFormat("720p", 200)},
	}}
	r := NewResolver(lookup, meta, &mapCache{})

	first, err := r.Resolve(context.Background(), "abc")
	if err != nil {
		t.Fatalf("first Resolve() error = %v", err)
	}

	second, err := r.Resolve(context.Background(), "abc")
	if err != nil {
		t.Fatalf("second Resolve() error = %v", err)
	}

	if meta.calls != 1 {
		t.Errorf("metadata queried %d times, want 1 (second hit cache)", meta.calls)
	}

	if len(first.Labels()) != len(second.Labels()) {
		t.Errorf("repeated resolves disagree: %v vs %v", first.Labels(), second.Labels())
	}
}

func TestResolveCountsCacheHits(t *testing.T) {
	lookup := &fakeLookup{sources: map[string]string{"abc": watchURL}}
	meta := &fakeMetadata{info: &youtube.VideoInfo{
		ID:      "dQw4w9WgXcQ",
		Formats: []youtube.Format{videoFormat("720p", 200)},
	}}
	hits := &countingHits{}
	r := NewResolver(lookup, meta, &mapCache{})
	r.SetCacheHitCounter(hits)

	if _, err := r.Resolve(context.Background(), "abc"); err != nil {
		t.Fatalf("first Resolve() error = %v", err)
	}
	if hits.n != 0 {
		t.Errorf("hits = %d after cold resolve, want 0", hits.n)
	}

	for i := 0; i < 2; i++ {
		if _, err := r.Resolve(context.Background(), "abc"); err != nil {
			t.Fatalf("cached Resolve() error = %v", err)
		}
	}
	if hits.n != 2 {
		t.Errorf("hits = %d, want 2", hits.n)
	}
}

func TestResolveDeduplicatesLabels(t *testing.T) {
	webm := videoFormat("720p", 150)
	webm.MimeType = "video/webm; codecs=\"vp9\""
	webm.URL = "https://host.example/stream/720p-webm"

	lookup := &fakeLookup{sources: map[string]string{"abc": watchURL}}
	meta := &fakeMetadata{info: &youtube.VideoInfo{
		ID: "dQw4w9WgXcQ",
		Formats: []youtube.Format{
			videoFormat("720p", 200),
			webm,
			videoFormat("360p", 100),
		},
	}}
	r := NewResolver(lookup, meta, nil)

	info, err := r.Resolve(context.Background(), "abc")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	want := []string{"720p", "360p"}
	got := info.Labels()
	if len(got) != len(want) {
		t.Fatalf("Labels() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Labels()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	// First occurrence wins: the mp4 variant keeps its slot.
	if info.Formats[0].Container != "mp4" {
		t.Errorf("Container = %q, want mp4 (first occurrence)", info.Formats[0].Container)
	}
}
