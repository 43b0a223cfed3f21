// Package cancel provides cooperative, token-based cancellation for streaming
// analyses. A Token is handed to every helper on the dispatch path; helpers
// call Check before and after each suspension point and return ErrCancelled
// instead of unwinding.
package cancel

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrCancelled is the sentinel wrapped by every cancellation failure.
var ErrCancelled = errors.New("cancelled")

// CancelledError reports that a token was cancelled and why.
type CancelledError struct {
	TokenID string
	Reason  string
}

// Error returns the formatted message.
func (e *CancelledError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("token %s cancelled", e.TokenID)
	}
	return fmt.Sprintf("token %s cancelled: %s", e.TokenID, e.Reason)
}

// Unwrap returns ErrCancelled so callers can errors.Is against it.
func (e *CancelledError) Unwrap() error { return ErrCancelled }

// Callback is invoked synchronously when a token is cancelled.
type Callback func(reason string)

// Token is a cooperative cancellation flag. The transition is monotonic:
// once cancelled it never reverts, and the timestamp is set exactly once.
type Token struct {
	id string

	mu          sync.Mutex
	cancelled   bool
	reason      string
	cancelledAt time.Time
	callbacks   []Callback
}

// NewToken creates a fresh live token. The id is auto-generated when empty.
func NewToken(id string) *Token {
	if id == "" {
		id = uuid.New().String()
	}
	return &Token{id: id}
}

// ID returns the token identifier.
func (t *Token) ID() string { return t.id }

// Cancel flips the token to cancelled and fires every registered callback in
// registration order. Idempotent: only the first call has any effect.
func (t *Token) Cancel(reason string) {
	t.mu.Lock()
	if t.cancelled {
		t.mu.Unlock()
		return
	}
	t.cancelled = true
	t.reason = reason
	t.cancelledAt = time.Now()
	callbacks := t.callbacks
	t.callbacks = nil
	t.mu.Unlock()

	// Callbacks run outside the lock so they may interact with the token.
	for _, cb := range callbacks {
		t.fire(cb, reason)
	}
}

// fire invokes one callback, isolating panics so a failing callback cannot
// block its siblings or the cancel call itself.
func (t *Token) fire(cb Callback, reason string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Cancellation callback panicked",
				"token_id", t.id, "reason", reason, "panic", r)
		}
	}()
	cb(reason)
}

// Check fails with a CancelledError if the token has been cancelled.
func (t *Token) Check() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancelled {
		return &CancelledError{TokenID: t.id, Reason: t.reason}
	}
	return nil
}

// Cancelled reports whether the token has been cancelled.
func (t *Token) Cancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelled
}

// Reason returns the cancellation reason, empty while the token is live.
func (t *Token) Reason() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reason
}

// CancelledAt returns when the token was cancelled (zero while live).
func (t *Token) CancelledAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelledAt
}

// AddCallback registers a fire-on-cancel callback. If the token is already
// cancelled the callback is invoked synchronously before AddCallback returns.
func (t *Token) AddCallback(cb Callback) {
	t.mu.Lock()
	if t.cancelled {
		reason := t.reason
		t.mu.Unlock()
		t.fire(cb, reason)
		return
	}
	t.callbacks = append(t.callbacks, cb)
	t.mu.Unlock()
}
