package database

import (
	"context"
	stdsql "database/sql"
	"time"
)

// HealthStatus describes the connection pool state.
type HealthStatus struct {
	Healthy        bool   `json:"healthy"`
	Error          string `json:"error,omitempty"`
	OpenConns      int    `json:"open_connections"`
	InUseConns     int    `json:"in_use_connections"`
	IdleConns      int    `json:"idle_connections"`
	WaitCount      int64  `json:"wait_count"`
	WaitDurationMS int64  `json:"wait_duration_ms"`
}

// Health pings the database and reports pool statistics.
func Health(ctx context.Context, db *stdsql.DB) HealthStatus {
	status := HealthStatus{}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		status.Healthy = false
		status.Error = err.Error()
		return status
	}

	stats := db.Stats()
	status.Healthy = true
	status.OpenConns = stats.OpenConnections
	status.InUseConns = stats.InUse
	status.IdleConns = stats.Idle
	status.WaitCount = stats.WaitCount
	status.WaitDurationMS = stats.WaitDuration.Milliseconds()

	return status
}
