// Package audit persists one record per analysis attempt so that cost and
// failure history survives restarts.
package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/ent"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/ent/analysisrecord"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/dispatch"
)

// ErrNotFound indicates a requested record does not exist.
var ErrNotFound = errors.New("audit record not found")

// writeTimeout bounds audit writes. Writes run on a background context so a
// cancelled analysis still gets its terminal row.
const writeTimeout = 5 * time.Second

// Service implements dispatch.Auditor over the Ent client.
type Service struct {
	client *ent.Client
}

// NewService creates a new audit Service.
func NewService(client *ent.Client) *Service {
	return &Service{client: client}
}

// Begin creates the running row for one analysis attempt.
func (s *Service) Begin(ctx context.Context, rec dispatch.AuditRecord) error {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	_, err := s.client.AnalysisRecord.Create().
		SetID(rec.AnalysisID).
		SetKind(analysisrecord.Kind(rec.Kind)).
		SetMode(analysisrecord.Mode(rec.Mode)).
		SetProvider(string(rec.Provider)).
		SetModel(rec.Model).
		SetContentHash(rec.ContentHash).
		SetContentSize(rec.ContentSize).
		SetStartedAt(time.Now()).
		Save(writeCtx)
	if err != nil {
		return fmt.Errorf("failed to create analysis record: %w", err)
	}
	return nil
}

// Finalize sets the terminal status and usage totals exactly once.
func (s *Service) Finalize(ctx context.Context, analysisID, status string, tokensIn, tokensOut int, costUSD float64, errText string) error {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	builder := s.client.AnalysisRecord.UpdateOneID(analysisID).
		SetStatus(analysisrecord.Status(status)).
		SetCompletedAt(time.Now()).
		SetInputTokens(tokensIn).
		SetOutputTokens(tokensOut).
		SetCostUsd(costUSD)

	if errText != "" {
		builder = builder.SetErrorMessage(errText)
	}

	if _, err := builder.Save(writeCtx); err != nil {
		if ent.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to finalize analysis record: %w", err)
	}
	return nil
}

// GetRecord retrieves one analysis record by ID.
func (s *Service) GetRecord(ctx context.Context, analysisID string) (*ent.AnalysisRecord, error) {
	rec, err := s.client.AnalysisRecord.Get(ctx, analysisID)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get analysis record: %w", err)
	}
	return rec, nil
}

// ListRecent retrieves the most recently started records, newest first.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*ent.AnalysisRecord, error) {
	records, err := s.client.AnalysisRecord.Query().
		Order(ent.Desc(analysisrecord.FieldStartedAt)).
		Limit(limit).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis records: %w", err)
	}
	return records, nil
}

// ListByContentHash retrieves all attempts for one piece of content.
func (s *Service) ListByContentHash(ctx context.Context, contentHash string) ([]*ent.AnalysisRecord, error) {
	records, err := s.client.AnalysisRecord.Query().
		Where(analysisrecord.ContentHashEQ(contentHash)).
		Order(ent.Asc(analysisrecord.FieldStartedAt)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis records by hash: %w", err)
	}
	return records, nil
}

// DeleteOlderThan removes terminal records whose started_at predates cutoff.
// Running records are never deleted. Returns the number of rows removed.
func (s *Service) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	n, err := s.client.AnalysisRecord.Delete().
		Where(
			analysisrecord.StartedAtLT(cutoff),
			analysisrecord.StatusNEQ(analysisrecord.StatusRunning),
		).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old analysis records: %w", err)
	}
	return n, nil
}
