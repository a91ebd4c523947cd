package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shapedtime/vidrelay/internal/transcode"
)

type createTranscodeRequest struct {
	InputPath string `json:"input_path" binding:"required"`
	OutputDir string `json:"output_dir" binding:"required"`
}

type transcodeJobData struct {
	JobID  string   `json:"job_id"`
	Status string   `json:"status"`
	Files  []string `json:"files,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// createTranscode starts an asynchronous adaptive-bitrate conversion of a
// local file.
func (s *Server) createTranscode(c *gin.Context) {
	var req createTranscodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, statusResponse{Status: "400", Message: err.Error()})
		return
	}

	job, err := s.runner.Submit(c.Request.Context(), req.InputPath, req.OutputDir)
	if err != nil {
		if errors.Is(err, transcode.ErrBusy) {
			c.JSON(http.StatusServiceUnavailable, statusResponse{Status: "503", Message: "Transcoder busy"})
			return
		}
		slog.Error("failed to submit transcode", "input", req.InputPath, "error", err)
		c.JSON(http.StatusInternalServerError, statusResponse{Status: "500", Message: "Internal Server Error"})
		return
	}

	c.JSON(http.StatusAccepted, statusResponse{
		Status:  "202",
		Message: "Transcode started",
		Data:    transcodeJobData{JobID: job.ID, Status: string(job.Status())},
	})
}

// getTranscode reports the state of a submitted transcode job.
func (s *Server) getTranscode(c *gin.Context) {
	job, ok := s.runner.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, statusResponse{Status: "404", Message: "Job not found"})
		return
	}

	data := transcodeJobData{JobID: job.ID, Status: string(job.Status())}
	if files, err := job.Result(); err != nil {
		data.Error = err.Error()
	} else {
		data.Files = files
	}

	c.JSON(http.StatusOK, statusResponse{Status: "200", Message: "Job found", Data: data})
}
