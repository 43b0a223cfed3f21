package cleanup

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/cache"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/cancel"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/queue"
)

func newFixtures(t *testing.T) (*queue.Queue, *cancel.Manager, *cache.Cache) {
	t.Helper()
	store, err := cache.New(cache.Config{Dir: t.TempDir(), DefaultTTL: time.Hour}, slog.Default())
	require.NoError(t, err)
	return queue.New(16), cancel.NewManager(), store
}

func TestRunAllPurgesTerminalTasks(t *testing.T) {
	tasks, tokens, store := newFixtures(t)

	id, err := tasks.Submit(models.AnalysisRequest{
		Content: []byte("some anr text"),
		Kind:    models.LogKindANR,
		Mode:    models.ModeQuick,
	})
	require.NoError(t, err)

	_, ok := tasks.Cancel(id)
	require.True(t, ok)

	svc := NewService(Config{TaskRetention: 0, TokenRetention: 0}, tasks, tokens, store, nil)
	svc.runAll(context.Background())

	_, ok = tasks.Status(id)
	assert.False(t, ok, "terminal task should be purged")
}

func TestRunAllRemovesSettledTokens(t *testing.T) {
	tasks, tokens, store := newFixtures(t)

	tokens.NewToken("a")
	tokens.Cancel("a", "user requested")
	tokens.NewToken("b") // still live, must survive

	svc := NewService(Config{TaskRetention: time.Hour, TokenRetention: 0}, tasks, tokens, store, nil)
	svc.runAll(context.Background())

	assert.Nil(t, tokens.Get("a"))
	assert.NotNil(t, tokens.Get("b"))
}

func TestStartStop(t *testing.T) {
	tasks, tokens, store := newFixtures(t)

	svc := NewService(DefaultConfig(), tasks, tokens, store, nil)
	svc.Start(context.Background())
	svc.Stop()

	// Stop again is a no-op only after Start; a second Stop must not hang.
	done := make(chan struct{})
	go func() {
		svc.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second Stop blocked")
	}
}
