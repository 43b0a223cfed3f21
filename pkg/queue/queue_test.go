package queue

import (
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/cancel"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func request(priority int) models.AnalysisRequest {
	return models.AnalysisRequest{
		Content:  []byte("trace"),
		Kind:     models.LogKindANR,
		Mode:     models.ModeQuick,
		Priority: priority,
		ClientID: "test",
	}
}

func TestSubmit_QueueFull(t *testing.T) {
	q := New(2)
	_, err := q.Submit(request(1))
	require.NoError(t, err)
	_, err = q.Submit(request(1))
	require.NoError(t, err)

	_, err = q.Submit(request(1))
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestPool_PriorityOrdering(t *testing.T) {
	q := New(10)

	var mu sync.Mutex
	var order []int
	started := make(chan struct{})
	release := make(chan struct{})

	handler := func(task Task, token *cancel.Token) ([]byte, error) {
		// The first task parks so the rest can be enqueued behind it.
		select {
		case started <- struct{}{}:
			<-release
		default:
		}
		mu.Lock()
		order = append(order, task.Priority)
		mu.Unlock()
		return nil, nil
	}

	cancels := cancel.NewManager()
	p := NewPool(q, cancels, handler, 1, testLogger())
	p.Start()
	defer p.Shutdown("test done")

	// Park the single worker on a filler task, then enqueue out of order.
	_, err := q.Submit(request(9))
	require.NoError(t, err)
	<-started

	_, err = q.Submit(request(5))
	require.NoError(t, err)
	_, err = q.Submit(request(1))
	require.NoError(t, err)
	_, err = q.Submit(request(3))
	require.NoError(t, err)
	close(release)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(order) == 4
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{9, 1, 3, 5}, order)
}

func TestPool_FIFOWithinEqualPriority(t *testing.T) {
	q := New(10)

	var mu sync.Mutex
	var order []string
	started := make(chan struct{})
	release := make(chan struct{})

	handler := func(task Task, token *cancel.Token) ([]byte, error) {
		select {
		case started <- struct{}{}:
			<-release
		default:
		}
		mu.Lock()
		order = append(order, task.ID)
		mu.Unlock()
		return nil, nil
	}

	p := NewPool(q, cancel.NewManager(), handler, 1, testLogger())
	p.Start()
	defer p.Shutdown("test done")

	_, err := q.Submit(request(9))
	require.NoError(t, err)
	<-started

	first, err := q.Submit(request(1))
	require.NoError(t, err)
	second, err := q.Submit(request(1))
	require.NoError(t, err)
	close(release)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(order) == 3
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{first, second}, order[1:])
}

func TestCancel_PendingTask(t *testing.T) {
	q := New(10)
	id, err := q.Submit(request(1))
	require.NoError(t, err)

	p := NewPool(q, cancel.NewManager(), nil, 0, testLogger())
	assert.True(t, p.Cancel(id, "user"))
	assert.False(t, p.Cancel(id, "user"), "second cancel is a no-op")

	task, ok := q.Status(id)
	require.True(t, ok)
	assert.Equal(t, StatusCancelled, task.Status)
	assert.Equal(t, 0, q.PendingCount())
}

func TestCancel_RunningTaskCancelsToken(t *testing.T) {
	q := New(10)
	cancels := cancel.NewManager()

	running := make(chan string)
	handler := func(task Task, token *cancel.Token) ([]byte, error) {
		running <- task.ID
		for {
			if err := token.Check(); err != nil {
				return nil, err
			}
			time.Sleep(5 * time.Millisecond)
		}
	}

	p := NewPool(q, cancels, handler, 1, testLogger())
	p.Start()
	defer p.Shutdown("test done")

	id, err := q.Submit(request(1))
	require.NoError(t, err)
	<-running

	assert.True(t, p.Cancel(id, "user"))

	require.Eventually(t, func() bool {
		task, ok := q.Status(id)
		return ok && task.Status == StatusCancelled
	}, 2*time.Second, 10*time.Millisecond)
}

func TestCancel_BetweenPopAndTokenBind(t *testing.T) {
	q := New(10)
	cancels := cancel.NewManager()

	var ran atomic.Bool
	handler := func(Task, *cancel.Token) ([]byte, error) {
		ran.Store(true)
		return nil, nil
	}
	p := NewPool(q, cancels, handler, 0, testLogger())

	id, err := q.Submit(request(1))
	require.NoError(t, err)

	// The worker has popped the task but not yet bound its token when the
	// cancel lands.
	task := q.pop()
	require.NotNil(t, task)
	assert.True(t, p.Cancel(id, "user"))

	p.runTask(task, testLogger())

	assert.False(t, ran.Load(), "handler must not run a cancelled task")
	got, ok := q.Status(id)
	require.True(t, ok)
	assert.Equal(t, StatusCancelled, got.Status)
	assert.Equal(t, 0, cancels.ActiveCount(), "task token released")
}

func TestPool_ConcurrencyBound(t *testing.T) {
	const workers = 3
	q := New(50)

	var current, peak atomic.Int64
	handler := func(Task, *cancel.Token) ([]byte, error) {
		n := current.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		current.Add(-1)
		return nil, nil
	}

	p := NewPool(q, cancel.NewManager(), handler, workers, testLogger())
	p.Start()

	for i := 0; i < 20; i++ {
		_, err := q.Submit(request(i % 5))
		require.NoError(t, err)
	}

	require.Eventually(t, func() bool {
		return q.PendingCount() == 0 && p.Health().Running == 0
	}, 5*time.Second, 20*time.Millisecond)
	p.Shutdown("test done")

	assert.LessOrEqual(t, peak.Load(), int64(workers))
}

func TestPool_HandlerPanicFailsTask(t *testing.T) {
	q := New(10)
	handler := func(Task, *cancel.Token) ([]byte, error) {
		panic("boom")
	}
	p := NewPool(q, cancel.NewManager(), handler, 1, testLogger())
	p.Start()
	defer p.Shutdown("test done")

	id, err := q.Submit(request(1))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		task, ok := q.Status(id)
		return ok && task.Status == StatusFailed
	}, 2*time.Second, 10*time.Millisecond)
	task, _ := q.Status(id)
	assert.Contains(t, task.Err, "panicked")
}

func TestPurgeCompleted(t *testing.T) {
	q := New(10)
	handler := func(Task, *cancel.Token) ([]byte, error) { return []byte("ok"), nil }
	p := NewPool(q, cancel.NewManager(), handler, 1, testLogger())
	p.Start()

	id, err := q.Submit(request(1))
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		task, ok := q.Status(id)
		return ok && task.Status == StatusCompleted
	}, 2*time.Second, 10*time.Millisecond)
	p.Shutdown("test done")

	assert.Equal(t, 0, q.PurgeCompleted(time.Hour), "too recent to purge")
	assert.Equal(t, 1, q.PurgeCompleted(0))
	_, ok := q.Status(id)
	assert.False(t, ok)
}

func TestShutdown_DrainsWorkers(t *testing.T) {
	q := New(10)
	handler := func(task Task, token *cancel.Token) ([]byte, error) {
		for {
			if err := token.Check(); err != nil {
				return nil, err
			}
			time.Sleep(5 * time.Millisecond)
		}
	}
	p := NewPool(q, cancel.NewManager(), handler, 2, testLogger())
	p.Start()

	id, err := q.Submit(request(1))
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		task, ok := q.Status(id)
		return ok && task.Status == StatusRunning
	}, 2*time.Second, 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		p.Shutdown("shutting down")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("shutdown did not drain")
	}

	task, ok := q.Status(id)
	require.True(t, ok)
	assert.Equal(t, StatusCancelled, task.Status)
	assert.False(t, p.Health().Healthy)
}
