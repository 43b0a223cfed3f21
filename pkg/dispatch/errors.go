package dispatch

import (
	"errors"
	"fmt"
	"time"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/cancel"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/provider"
)

// ErrorKind classifies dispatch failures for the terminal Error event.
type ErrorKind string

const (
	KindInvalidKind       ErrorKind = "invalid_kind"
	KindInvalidMode       ErrorKind = "invalid_mode"
	KindFileTooLarge      ErrorKind = "file_too_large"
	KindNoProvider        ErrorKind = "no_provider"
	KindBudgetExceeded    ErrorKind = "budget_exceeded"
	KindRateLimited       ErrorKind = "rate_limited"
	KindProviderTransient ErrorKind = "provider_transient"
	KindProviderFatal     ErrorKind = "provider_fatal"
	KindTimeout           ErrorKind = "timeout"
	KindCancelled         ErrorKind = "cancelled"
	KindInternal          ErrorKind = "internal"
)

// ErrRateLimited is returned when the per-request wait budget is exhausted.
var ErrRateLimited = errors.New("rate limited")

// RateLimitedError carries the upstream-suggested retry delay to the
// terminal Error event.
type RateLimitedError struct{ RetryAfter time.Duration }

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}
func (e *RateLimitedError) Unwrap() error { return ErrRateLimited }

// ErrBudgetExceeded is returned when the pre-flight cost estimate exceeds
// the request budget.
var ErrBudgetExceeded = errors.New("budget exceeded")

// transientError wraps a provider failure eligible for one retry.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Classify maps an error onto its terminal event kind.
func Classify(err error) ErrorKind {
	var transient *transientError
	switch {
	case errors.Is(err, models.ErrInvalidKind):
		return KindInvalidKind
	case errors.Is(err, models.ErrInvalidMode):
		return KindInvalidMode
	case errors.Is(err, models.ErrFileTooLarge), errors.Is(err, models.ErrEmptyContent):
		return KindFileTooLarge
	case errors.Is(err, provider.ErrNoProvider):
		return KindNoProvider
	case errors.Is(err, ErrBudgetExceeded):
		return KindBudgetExceeded
	case errors.Is(err, ErrRateLimited):
		return KindRateLimited
	case errors.Is(err, cancel.ErrCancelled):
		return KindCancelled
	case errors.As(err, &transient):
		return KindProviderTransient
	case err != nil:
		return KindProviderFatal
	default:
		return KindInternal
	}
}
