// Package cleanup provides data retention and cleanup services.
package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/audit"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/cache"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/cancel"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/queue"
)

// Config holds retention policy knobs.
type Config struct {
	// Interval between cleanup passes.
	Interval time.Duration `yaml:"interval"`
	// TaskRetention is how long terminal tasks stay queryable in the queue.
	TaskRetention time.Duration `yaml:"task_retention"`
	// TokenRetention is how long cancelled/orphaned tokens stay registered.
	TokenRetention time.Duration `yaml:"token_retention"`
	// AuditRetention is how long terminal audit records are kept. Zero
	// disables audit pruning.
	AuditRetention time.Duration `yaml:"audit_retention"`
}

// DefaultConfig returns the retention defaults.
func DefaultConfig() Config {
	return Config{
		Interval:       10 * time.Minute,
		TaskRetention:  time.Hour,
		TokenRetention: time.Hour,
		AuditRetention: 30 * 24 * time.Hour,
	}
}

// Service periodically enforces retention policies:
//   - Drops terminal tasks from the queue's status map
//   - Removes settled cancellation tokens
//   - Evicts expired cache entries from both tiers
//   - Prunes terminal audit records past their retention window
//
// All operations are idempotent.
type Service struct {
	config Config
	tasks  *queue.Queue
	tokens *cancel.Manager
	cache  *cache.Cache
	audit  *audit.Service // nil when persistence is disabled

	cancel context.CancelFunc
	done   chan struct{}
}

// NewService creates a new cleanup service. audit may be nil.
func NewService(cfg Config, tasks *queue.Queue, tokens *cancel.Manager, store *cache.Cache, auditSvc *audit.Service) *Service {
	return &Service{
		config: cfg,
		tasks:  tasks,
		tokens: tokens,
		cache:  store,
		audit:  auditSvc,
	}
}

// Start launches the background cleanup loop.
func (s *Service) Start(ctx context.Context) {
	if s.cancel != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go s.run(ctx)

	slog.Info("Cleanup service started",
		"interval", s.config.Interval,
		"task_retention", s.config.TaskRetention,
		"token_retention", s.config.TokenRetention,
		"audit_retention", s.config.AuditRetention)
}

// Stop signals the cleanup loop to exit and waits for it to finish.
func (s *Service) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	slog.Info("Cleanup service stopped")
}

func (s *Service) run(ctx context.Context) {
	defer close(s.done)

	s.runAll(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runAll(ctx)
		}
	}
}

func (s *Service) runAll(ctx context.Context) {
	s.purgeTasks()
	s.purgeTokens()
	s.sweepCache()
	s.pruneAuditRecords(ctx)
}

func (s *Service) purgeTasks() {
	count := s.tasks.PurgeCompleted(s.config.TaskRetention)
	if count > 0 {
		slog.Info("Retention: purged terminal tasks", "count", count)
	}
}

func (s *Service) purgeTokens() {
	count := s.tokens.CleanupOlderThan(s.config.TokenRetention)
	if count > 0 {
		slog.Info("Retention: removed settled cancellation tokens", "count", count)
	}
}

func (s *Service) sweepCache() {
	count, err := s.cache.Sweep()
	if err != nil {
		slog.Error("Retention: cache sweep failed", "error", err)
		return
	}
	if count > 0 {
		slog.Info("Retention: evicted expired cache entries", "count", count)
	}
}

func (s *Service) pruneAuditRecords(_ context.Context) {
	if s.audit == nil || s.config.AuditRetention <= 0 {
		return
	}
	cutoff := time.Now().Add(-s.config.AuditRetention)
	count, err := s.audit.DeleteOlderThan(context.Background(), cutoff)
	if err != nil {
		slog.Error("Retention: audit record cleanup failed", "error", err)
		return
	}
	if count > 0 {
		slog.Info("Retention: pruned audit records", "count", count)
	}
}
