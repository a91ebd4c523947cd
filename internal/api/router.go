package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shapedtime/vidrelay/internal/metrics"
	"github.com/shapedtime/vidrelay/internal/source"
	"github.com/shapedtime/vidrelay/internal/store"
	"github.com/shapedtime/vidrelay/internal/transcode"
)

// Resolver maps an identifier to its video source info.
type Resolver interface {
	Resolve(ctx context.Context, identifier string) (*source.VideoSourceInfo, error)
}

// StreamOpener opens a bounded byte-range read against the external host.
type StreamOpener interface {
	OpenRange(ctx context.Context, streamURL string, start, end int64) (io.ReadCloser, error)
}

// Server represents the REST API server
type Server struct {
	router   *gin.Engine
	urls     *store.URLRepository
	resolver Resolver
	opener   StreamOpener
	runner   *transcode.Runner // Optional: nil disables transcode endpoints
	metrics  *metrics.Metrics  // Optional: nil disables instrumentation
}

// NewServer creates a new API server
func NewServer(
	urls *store.URLRepository,
	resolver Resolver,
	opener StreamOpener,
	runner *transcode.Runner, // Can be nil
	m *metrics.Metrics, // Can be nil
) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		router:   gin.New(),
		urls:     urls,
		resolver: resolver,
		opener:   opener,
		runner:   runner,
		metrics:  m,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.router.Use(gin.Recovery())

	// Logging middleware
	s.router.Use(func(c *gin.Context) {
		c.Next()
		slog.Info("API request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
		)
	})

	// CORS so the player can call from any origin
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Range")
		c.Header("Access-Control-Expose-Headers", "Content-Range, Accept-Ranges, Content-Length")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	})
}

func (s *Server) setupRoutes() {
	// Streaming
	s.router.GET("/stream/:id", s.getStream)
	s.router.GET("/info/:id", s.getInfo)

	// Registration
	s.router.POST("/generate-url", s.createURL)

	// Transcoding
	if s.runner != nil {
		s.router.POST("/transcode", s.createTranscode)
		s.router.GET("/transcode/:id", s.getTranscode)
	}
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// statusResponse is the fixed-shape JSON envelope the player expects.
// Status codes are carried as strings.
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
