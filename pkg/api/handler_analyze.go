package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/queue"
)

// handleSubmit enqueues an analysis and returns its task id. The result is
// retrieved later via the task status endpoint or streamed live over the
// WebSocket feed.
func (s *Server) handleSubmit(c *gin.Context) {
	var body analyzeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := body.toModel(s.cfg.DefaultMode)
	if err := req.Validate(s.cfg.MaxFileSizeBytes); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, models.ErrFileTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	taskID, err := s.tasks.Submit(req)
	if err != nil {
		switch {
		case errors.Is(err, queue.ErrQueueFull):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "queue is full, retry later"})
		case errors.Is(err, queue.ErrQueueClosed):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service is shutting down"})
		default:
			s.logger.Error("task submit failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	s.logger.Info("analysis task submitted",
		"task_id", taskID, "kind", req.Kind, "mode", req.Mode, "client_id", req.ClientID)

	c.JSON(http.StatusAccepted, gin.H{"task_id": taskID})
}

// handleTaskStatus reports queue-level lifecycle state for a task, plus the
// result once completed.
func (s *Server) handleTaskStatus(c *gin.Context) {
	task, ok := s.tasks.Status(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	resp := taskResponse{
		TaskID:    task.ID,
		Status:    string(task.Status),
		Priority:  task.Priority,
		CreatedAt: task.CreatedAt,
		Error:     task.Err,
	}
	if !task.StartedAt.IsZero() {
		resp.StartedAt = &task.StartedAt
	}
	if !task.CompletedAt.IsZero() {
		resp.CompletedAt = &task.CompletedAt
	}
	if task.Status == queue.StatusCompleted {
		resp.Result = string(task.Result)
	}

	c.JSON(http.StatusOK, resp)
}

// handleCancelTask cancels a pending or running task.
func (s *Server) handleCancelTask(c *gin.Context) {
	id := c.Param("id")

	if s.pool.Cancel(id, "user requested") {
		c.JSON(http.StatusOK, gin.H{"cancelled": true})
		return
	}

	// Distinguish unknown tasks from already-terminal ones
	if task, ok := s.tasks.Status(id); ok {
		c.JSON(http.StatusConflict, gin.H{
			"cancelled": false,
			"error":     "task is not in a cancellable state",
			"status":    string(task.Status),
		})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
}

// handleAnalysisStatus returns the live progress snapshot for a running
// analysis.
func (s *Server) handleAnalysisStatus(c *gin.Context) {
	sm, ok := s.engine.Status(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found or already finished"})
		return
	}
	c.JSON(http.StatusOK, sm.Snapshot())
}
