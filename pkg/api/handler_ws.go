package api

import (
	"encoding/json"
	"net/http"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/status"
)

// snapshotBuffer bounds the per-connection snapshot queue. Status
// subscribers must not block, so when a slow client falls behind we drop
// intermediate snapshots; only the freshest state matters.
const snapshotBuffer = 16

// handleStatusWS upgrades to WebSocket and pushes status snapshots for one
// analysis until it finishes or the client disconnects.
func (s *Server) handleStatusWS(c *gin.Context) {
	sm, ok := s.engine.Status(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found or already finished"})
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		// Origin validation is handled by the deployment's ingress; the
		// feed is read-only status data.
		InsecureSkipVerify: true,
	})
	if err != nil {
		s.logger.Debug("WebSocket upgrade failed", "error", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	ctx := c.Request.Context()

	snapshots := make(chan status.Snapshot, snapshotBuffer)
	unsubscribe := sm.Subscribe(func(snap status.Snapshot) {
		select {
		case snapshots <- snap:
		default: // slow client, drop
		}
	})
	defer unsubscribe()

	for {
		select {
		case snap := <-snapshots:
			data, err := json.Marshal(snap)
			if err != nil {
				s.logger.Error("snapshot marshal failed", "error", err)
				return
			}
			if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
