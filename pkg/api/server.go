// Package api exposes the analysis service over HTTP: a REST control
// surface, a Server-Sent Events stream for live analysis output, and a
// WebSocket feed of status snapshots.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/cache"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/cancel"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/config"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/database"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/dispatch"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/queue"
)

// Server wires the dispatch engine, task queue, and supporting services
// into HTTP handlers.
type Server struct {
	cfg     *config.Config
	engine  *dispatch.Engine
	tasks   *queue.Queue
	pool    *queue.Pool
	cancels *cancel.Manager
	store   *cache.Cache
	db      *database.Client // nil when the audit store is disabled
	logger  *slog.Logger
}

// NewServer creates a new API server. db may be nil.
func NewServer(
	cfg *config.Config,
	engine *dispatch.Engine,
	tasks *queue.Queue,
	pool *queue.Pool,
	cancels *cancel.Manager,
	store *cache.Cache,
	db *database.Client,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:     cfg,
		engine:  engine,
		tasks:   tasks,
		pool:    pool,
		cancels: cancels,
		store:   store,
		db:      db,
		logger:  logger.With("component", "api"),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	{
		v1.POST("/analyze", s.handleSubmit)
		v1.POST("/analyze/stream", s.handleAnalyzeStream)

		v1.GET("/tasks/:id", s.handleTaskStatus)
		v1.POST("/tasks/:id/cancel", s.handleCancelTask)

		v1.GET("/analyses/:id/status", s.handleAnalysisStatus)
		v1.GET("/ws/analyses/:id/status", s.handleStatusWS)

		v1.GET("/estimates/compare", s.handleCompare)
		v1.GET("/estimates/recommend", s.handleRecommend)

		v1.GET("/system/health", s.handleHealth)
		v1.GET("/system/cache/stats", s.handleCacheStats)
	}

	return r
}

// HTTPServer wraps the router in an http.Server bound to the configured
// address, ready for graceful shutdown from main.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Shutdown drains in-flight requests with a bounded deadline.
func Shutdown(ctx context.Context, srv *http.Server, timeout time.Duration) error {
	shutdownCtx, cancelFn := context.WithTimeout(ctx, timeout)
	defer cancelFn()
	return srv.Shutdown(shutdownCtx)
}
