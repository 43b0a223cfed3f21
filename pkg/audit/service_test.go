package audit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/ent/analysisrecord"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/dispatch"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/test/util"
)

func newTestService(t *testing.T) *Service {
	entClient, _ := util.SetupTestDatabase(t)
	return NewService(entClient)
}

func newAuditRecord() dispatch.AuditRecord {
	return dispatch.AuditRecord{
		AnalysisID:  uuid.New().String(),
		Kind:        models.LogKindANR,
		Mode:        models.ModeIntelligent,
		Provider:    models.ProviderAnthropic,
		Model:       "claude-sonnet-4-5",
		ContentHash: "a3f5b8c2d1e4f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1d2e3f4a5b6c7d8e9f0a1",
		ContentSize: 48_000,
	}
}

func TestBeginCreatesRunningRecord(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rec := newAuditRecord()
	require.NoError(t, svc.Begin(ctx, rec))

	stored, err := svc.GetRecord(ctx, rec.AnalysisID)
	require.NoError(t, err)

	assert.Equal(t, analysisrecord.StatusRunning, stored.Status)
	assert.Equal(t, analysisrecord.KindAnr, stored.Kind)
	assert.Equal(t, analysisrecord.ModeIntelligent, stored.Mode)
	assert.Equal(t, "anthropic", stored.Provider)
	assert.Equal(t, "claude-sonnet-4-5", stored.Model)
	assert.Equal(t, rec.ContentHash, stored.ContentHash)
	assert.Equal(t, 48_000, stored.ContentSize)
	assert.Nil(t, stored.CompletedAt)
	assert.Nil(t, stored.InputTokens)
	assert.Nil(t, stored.ErrorMessage)
}

func TestFinalizeCompleted(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rec := newAuditRecord()
	require.NoError(t, svc.Begin(ctx, rec))

	err := svc.Finalize(ctx, rec.AnalysisID, dispatch.AuditStatusCompleted, 12_000, 3_200, 0.084, "")
	require.NoError(t, err)

	stored, err := svc.GetRecord(ctx, rec.AnalysisID)
	require.NoError(t, err)

	assert.Equal(t, analysisrecord.StatusCompleted, stored.Status)
	require.NotNil(t, stored.CompletedAt)
	require.NotNil(t, stored.InputTokens)
	assert.Equal(t, 12_000, *stored.InputTokens)
	require.NotNil(t, stored.OutputTokens)
	assert.Equal(t, 3_200, *stored.OutputTokens)
	require.NotNil(t, stored.CostUsd)
	assert.InDelta(t, 0.084, *stored.CostUsd, 1e-9)
	assert.Nil(t, stored.ErrorMessage)
}

func TestFinalizeFailedKeepsErrorMessage(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rec := newAuditRecord()
	require.NoError(t, svc.Begin(ctx, rec))

	err := svc.Finalize(ctx, rec.AnalysisID, dispatch.AuditStatusFailed, 500, 0, 0.0015, "provider stream closed unexpectedly")
	require.NoError(t, err)

	stored, err := svc.GetRecord(ctx, rec.AnalysisID)
	require.NoError(t, err)

	assert.Equal(t, analysisrecord.StatusFailed, stored.Status)
	require.NotNil(t, stored.ErrorMessage)
	assert.Equal(t, "provider stream closed unexpectedly", *stored.ErrorMessage)
}

func TestFinalizeUnknownIDReturnsNotFound(t *testing.T) {
	svc := newTestService(t)

	err := svc.Finalize(context.Background(), uuid.New().String(), dispatch.AuditStatusCancelled, 0, 0, 0, "user requested")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetRecordNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetRecord(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByContentHash(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first := newAuditRecord()
	second := newAuditRecord()
	second.ContentHash = first.ContentHash
	other := newAuditRecord()
	other.ContentHash = "0000000000000000000000000000000000000000000000000000000000000000"

	require.NoError(t, svc.Begin(ctx, first))
	require.NoError(t, svc.Begin(ctx, second))
	require.NoError(t, svc.Begin(ctx, other))

	records, err := svc.ListByContentHash(ctx, first.ContentHash)
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestListRecentOrdersNewestFirst(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Begin(ctx, newAuditRecord()))
		time.Sleep(10 * time.Millisecond)
	}

	records, err := svc.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, !records[0].StartedAt.Before(records[1].StartedAt))
}

func TestDeleteOlderThanSparesRunning(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	finished := newAuditRecord()
	running := newAuditRecord()
	require.NoError(t, svc.Begin(ctx, finished))
	require.NoError(t, svc.Begin(ctx, running))
	require.NoError(t, svc.Finalize(ctx, finished.AnalysisID, dispatch.AuditStatusCompleted, 10, 10, 0.001, ""))

	deleted, err := svc.DeleteOlderThan(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = svc.GetRecord(ctx, running.AnalysisID)
	assert.NoError(t, err)
}
