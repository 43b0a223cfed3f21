package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/dispatch"
)

// heartbeatInterval keeps SSE connections alive through proxies with idle
// timeouts. Heartbeats are comments, not events; the core event contract
// (Start first, one terminal event last) is untouched.
const heartbeatInterval = 15 * time.Second

// handleAnalyzeStream runs an analysis synchronously and streams its events
// over Server-Sent Events.
func (s *Server) handleAnalyzeStream(c *gin.Context) {
	var body analyzeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req := body.toModel(s.cfg.DefaultMode)

	w := c.Writer
	flusher, ok := w.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming not supported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	// Validation and everything downstream surface as events on this
	// channel; the engine guarantees exactly one terminal event.
	events := s.engine.Analyze(c.Request.Context(), req, nil)

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, open := <-events:
			if !open {
				return
			}
			if err := writeSSE(w, ev); err != nil {
				s.logger.Debug("SSE client went away", "error", err)
				return
			}
			flusher.Flush()
			if dispatch.Terminal(ev) {
				return
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": heartbeat\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}

func writeSSE(w http.ResponseWriter, ev dispatch.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", dispatch.Type(ev), data)
	return err
}
