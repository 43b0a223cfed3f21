package queue

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/cancel"
)

// Handler runs one task to completion under its cancellation token. The
// dispatch engine supplies this.
type Handler func(task Task, token *cancel.Token) ([]byte, error)

// Health is a point-in-time view of the pool, surfaced on the health
// endpoint.
type Health struct {
	Healthy bool `json:"healthy"`
	Workers int  `json:"workers"`
	Pending int  `json:"pending"`
	Running int  `json:"running"`
}

// Pool drains the queue with a fixed number of workers. At most Workers
// tasks run concurrently.
type Pool struct {
	queue   *Queue
	cancels *cancel.Manager
	handler Handler
	workers int
	logger  *slog.Logger

	running  atomic.Int64
	wg       sync.WaitGroup
	stopOnce sync.Once
	stopped  atomic.Bool
}

// NewPool wires a pool over the queue. Workers are not started until Start.
func NewPool(q *Queue, cancels *cancel.Manager, handler Handler, workers int, logger *slog.Logger) *Pool {
	return &Pool{
		queue:   q,
		cancels: cancels,
		handler: handler,
		workers: workers,
		logger:  logger.With("component", "worker_pool"),
	}
}

// Start launches the workers.
func (p *Pool) Start() {
	p.logger.Info("starting workers", "count", p.workers)
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	log := p.logger.With("worker", id)
	for {
		t := p.queue.pop()
		if t == nil {
			return
		}
		p.runTask(t, log)
	}
}

func (p *Pool) runTask(t *Task, log *slog.Logger) {
	p.running.Add(1)
	defer p.running.Add(-1)

	token := p.cancels.NewToken(t.ID)
	snapshot := p.queue.bindToken(t, token.ID())
	defer p.cancels.Remove(token.ID())

	// A cancel that landed between pop and bindToken has already marked
	// the task; never run the handler for it.
	if snapshot.Status == StatusCancelled {
		log.Info("task cancelled before start", "task_id", snapshot.ID)
		return
	}

	log.Info("task started", "task_id", snapshot.ID, "priority", snapshot.Priority)
	start := time.Now()

	result, err := p.run(snapshot, token)
	switch {
	case err == nil:
		p.queue.finish(t, result, StatusCompleted, "")
		log.Info("task completed", "task_id", t.ID, "duration", time.Since(start))
	case errors.Is(err, cancel.ErrCancelled):
		p.queue.finish(t, nil, StatusCancelled, err.Error())
		log.Info("task cancelled", "task_id", t.ID, "reason", token.Reason())
	default:
		p.queue.finish(t, nil, StatusFailed, err.Error())
		log.Error("task failed", "task_id", t.ID, "error", err)
	}
}

// run isolates handler panics so a bad task cannot take down a worker.
func (p *Pool) run(t Task, token *cancel.Token) (result []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task handler panicked: %v", r)
		}
	}()
	return p.handler(t, token)
}

// Cancel cancels a task by id: a pending task leaves the queue, a running
// task has its token cancelled so the handler observes it at the next
// check. Reports whether a state change occurred.
func (p *Pool) Cancel(id, reason string) bool {
	_, changed := p.queue.Cancel(id)
	if !changed {
		return false
	}
	// The token id equals the task id, so this also covers a worker that
	// popped the task but has not bound the token yet.
	p.cancels.Cancel(id, reason)
	return true
}

// Health reports pool liveness and load.
func (p *Pool) Health() Health {
	return Health{
		Healthy: !p.stopped.Load(),
		Workers: p.workers,
		Pending: p.queue.PendingCount(),
		Running: int(p.running.Load()),
	}
}

// Shutdown cancels every active token, closes the queue, and waits for
// workers to drain.
func (p *Pool) Shutdown(reason string) {
	p.stopOnce.Do(func() {
		p.stopped.Store(true)
		n := p.cancels.CancelAll(reason)
		if n > 0 {
			p.logger.Info("cancelled in-flight tasks", "count", n)
		}
		p.queue.Close()
		p.wg.Wait()
		p.logger.Info("workers stopped")
	})
}
