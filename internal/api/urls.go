package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type createURLRequest struct {
	URL string `json:"url"`
}

type urlData struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// createURL registers a source URL and returns its short identifier.
func (s *Server) createURL(c *gin.Context) {
	var req createURLRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.String(http.StatusUnauthorized, "Invalid Request")
		return
	}

	src, err := s.urls.Create(req.URL)
	if err != nil {
		slog.Error("failed to create url", "error", err)
		c.JSON(http.StatusInternalServerError, statusResponse{Status: "500", Message: "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, statusResponse{
		Status:  "200",
		Message: "URL created successfully",
		Data: urlData{
			ID:        src.ID,
			URL:       src.SourceURL,
			CreatedAt: src.CreatedAt,
		},
	})
}
