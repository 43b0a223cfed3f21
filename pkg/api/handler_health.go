package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/database"
)

// handleHealth reports worker pool, queue, token, and database health.
func (s *Server) handleHealth(c *gin.Context) {
	poolHealth := s.pool.Health()

	payload := gin.H{
		"status":        "healthy",
		"workers":       poolHealth,
		"active_tokens": s.cancels.ActiveCount(),
	}

	healthy := poolHealth.Healthy

	if s.db != nil {
		ctx, cancelFn := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancelFn()

		dbHealth := database.Health(ctx, s.db.DB())
		payload["database"] = dbHealth
		healthy = healthy && dbHealth.Healthy
	}

	if !healthy {
		payload["status"] = "unhealthy"
		c.JSON(http.StatusServiceUnavailable, payload)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// handleCacheStats exposes hit/miss counters for the result cache.
func (s *Server) handleCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Stats())
}
