package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shapedtime/vidrelay/internal/source"
	"github.com/shapedtime/vidrelay/internal/streaming"
)

// getStream serves one fixed-size byte window of the selected format as a
// 206 partial-content response. The player continues playback by issuing
// successive range requests.
func (s *Server) getStream(c *gin.Context) {
	started := time.Now()
	if s.metrics != nil {
		s.metrics.StreamRequests.Inc()
	}

	// The server never assumes "bytes=0-" for a missing header.
	rangeHeader := c.GetHeader("Range")
	if rangeHeader == "" {
		c.String(http.StatusRequestedRangeNotSatisfiable, "Requires Range header")
		return
	}

	ctx := c.Request.Context()
	identifier := c.Param("id")

	info, err := s.resolver.Resolve(ctx, identifier)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			c.JSON(http.StatusNotFound, statusResponse{Status: "404", Message: "URL not found"})
			return
		}
		slog.Error("failed to resolve source", "id", identifier, "error", err)
		if s.metrics != nil {
			s.metrics.UpstreamErrors.Inc()
		}
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	desc, err := streaming.Select(info.Formats, c.Query("quality"))
	if err != nil {
		slog.Error("no formats available", "id", identifier, "video_id", info.VideoID)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	window := streaming.NewWindow(streaming.ParseStart(rangeHeader))

	// A start beyond the content length is passed through untouched;
	// the external host rejects it.
	upstream, err := s.opener.OpenRange(ctx, desc.StreamURL, window.Start, window.End)
	if err != nil {
		slog.Error("failed to open upstream range",
			"id", identifier,
			"video_id", info.VideoID,
			"quality", desc.Label,
			"start", window.Start,
			"error", err,
		)
		if s.metrics != nil {
			s.metrics.UpstreamErrors.Inc()
		}
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	defer upstream.Close()

	c.Header("Content-Range", window.ContentRange(desc.ContentLength))
	c.Header("Accept-Ranges", "bytes")
	c.Header("Content-Length", strconv.FormatInt(window.Size(), 10))
	c.Header("Content-Type", "video/mp4")
	c.Status(http.StatusPartialContent)

	if s.metrics != nil {
		s.metrics.OpenStreams.Inc()
		defer s.metrics.OpenStreams.Dec()
	}

	n, err := io.Copy(c.Writer, upstream)

	if s.metrics != nil {
		s.metrics.StreamBytes.Add(float64(n))
		s.metrics.StreamDuration.Observe(time.Since(started).Seconds())
	}

	if err != nil {
		// Headers are flushed; nothing left but to drop the
		// connection. The short body makes the server close it.
		slog.Error("stream terminated mid-pipe",
			"id", identifier,
			"video_id", info.VideoID,
			"bytes_piped", n,
			"error", err,
		)
		c.Abort()
	}
}

type videoInfoData struct {
	Title     string   `json:"title"`
	Thumbnail string   `json:"thumbnail"`
	Qualities []string `json:"qualities"`
}

// getInfo reports title, thumbnail and available quality labels for an
// identifier.
func (s *Server) getInfo(c *gin.Context) {
	identifier := c.Param("id")

	info, err := s.resolver.Resolve(c.Request.Context(), identifier)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			c.JSON(http.StatusNotFound, statusResponse{Status: "404", Message: "URL not found"})
			return
		}
		slog.Error("failed to resolve source", "id", identifier, "error", err)
		if s.metrics != nil {
			s.metrics.UpstreamErrors.Inc()
		}
		c.JSON(http.StatusInternalServerError, statusResponse{Status: "500", Message: "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, statusResponse{
		Status:  "200",
		Message: "URL found",
		Data: videoInfoData{
			Title:     info.Title,
			Thumbnail: info.Thumbnail,
			Qualities: info.Labels(),
		},
	})
}
