// Package queue schedules analysis tasks through a bounded priority queue
// drained by a fixed-size worker pool. Lower priority values run first;
// ties run in submission order.
package queue

import (
	"container/heap"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
)

var (
	// ErrQueueFull is returned by Submit when the pending count is at
	// capacity. Submission never blocks.
	ErrQueueFull = errors.New("queue full")

	// ErrQueueClosed is returned by Submit after Close.
	ErrQueueClosed = errors.New("queue closed")
)

// TaskStatus is the lifecycle state of a queued task.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusRunning   TaskStatus = "running"
	StatusCompleted TaskStatus = "completed"
	StatusFailed    TaskStatus = "failed"
	StatusCancelled TaskStatus = "cancelled"
)

// Terminal reports whether no further transitions are possible.
func (s TaskStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// Task is one scheduled analysis. Fields are owned by the queue; callers
// receive copies from Status.
type Task struct {
	ID          string
	Request     models.AnalysisRequest
	Status      TaskStatus
	Priority    int
	CreatedAt   time.Time
	StartedAt   time.Time
	CompletedAt time.Time
	Result      []byte
	Err         string
	TokenID     string

	seq   uint64
	index int
}

// taskHeap orders by priority ascending, then submission sequence.
type taskHeap []*Task

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority < h[j].Priority
	}
	return h[i].seq < h[j].seq
}

func (h taskHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *taskHeap) Push(x any) {
	t := x.(*Task)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// Queue is the pending-task store. A single mutex guards the heap and the
// id map; the condition variable wakes blocked workers.
type Queue struct {
	mu         sync.Mutex
	cond       *sync.Cond
	pending    taskHeap
	tasks      map[string]*Task
	maxPending int
	nextSeq    uint64
	closed     bool
	now        func() time.Time
}

// New creates a queue holding at most maxPending tasks in Pending state.
func New(maxPending int) *Queue {
	q := &Queue{
		tasks:      make(map[string]*Task),
		maxPending: maxPending,
		now:        time.Now,
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Submit enqueues a request and returns the new task id. Fails with
// ErrQueueFull when at capacity.
func (q *Queue) Submit(req models.AnalysisRequest) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return "", ErrQueueClosed
	}
	if q.maxPending > 0 && len(q.pending) >= q.maxPending {
		return "", ErrQueueFull
	}

	t := &Task{
		ID:        uuid.NewString(),
		Request:   req,
		Status:    StatusPending,
		Priority:  req.Priority,
		CreatedAt: q.now(),
		seq:       q.nextSeq,
	}
	q.nextSeq++
	q.tasks[t.ID] = t
	heap.Push(&q.pending, t)
	q.cond.Signal()
	return t.ID, nil
}

// pop blocks until a pending task is available or the queue is closed,
// transitions the task to Running, and returns it. Returns nil once closed
// and drained.
func (q *Queue) pop() *Task {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.pending) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.pending) == 0 {
		return nil
	}
	t := heap.Pop(&q.pending).(*Task)
	t.Status = StatusRunning
	t.StartedAt = q.now()
	return t
}

// finish records the terminal state of a running task. A task already moved
// to Cancelled keeps that status.
func (q *Queue) finish(t *Task, result []byte, status TaskStatus, errText string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if t.Status.Terminal() {
		return
	}
	t.Status = status
	t.Result = result
	t.Err = errText
	t.CompletedAt = q.now()
}

// Cancel removes a Pending task outright or flags a Running one as
// Cancelled; the worker pool cancels the running task's token. Reports
// whether a state change occurred.
func (q *Queue) Cancel(id string) (Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	t, ok := q.tasks[id]
	if !ok || t.Status.Terminal() {
		return Task{}, false
	}
	if t.Status == StatusPending {
		heap.Remove(&q.pending, t.index)
	}
	t.Status = StatusCancelled
	t.CompletedAt = q.now()
	return *t, true
}

// bindToken records the cancellation token backing a running task and
// returns a stable copy for the worker to act on.
func (q *Queue) bindToken(t *Task, tokenID string) Task {
	q.mu.Lock()
	defer q.mu.Unlock()
	t.TokenID = tokenID
	return *t
}

// Status returns a copy of the task, if known.
func (q *Queue) Status(id string) (Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	t, ok := q.tasks[id]
	if !ok {
		return Task{}, false
	}
	return *t, true
}

// PurgeCompleted drops terminal tasks older than the given age and returns
// how many were removed.
func (q *Queue) PurgeCompleted(olderThan time.Duration) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	cutoff := q.now().Add(-olderThan)
	removed := 0
	for id, t := range q.tasks {
		if t.Status.Terminal() && !t.CompletedAt.IsZero() && t.CompletedAt.Before(cutoff) {
			delete(q.tasks, id)
			removed++
		}
	}
	return removed
}

// PendingCount returns how many tasks await a worker.
func (q *Queue) PendingCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Close stops accepting submissions and wakes blocked workers. Pending
// tasks already in the queue are still handed out.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.cond.Broadcast()
}
