package cancel

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_CheckAfterCancel(t *testing.T) {
	tok := NewToken("")
	require.NoError(t, tok.Check())

	tok.Cancel("user")

	err := tok.Check()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCancelled))

	var cerr *CancelledError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "user", cerr.Reason)

	// Every subsequent check keeps failing.
	assert.Error(t, tok.Check())
}

func TestToken_CancelIsIdempotent(t *testing.T) {
	tok := NewToken("t1")
	tok.Cancel("first")
	at := tok.CancelledAt()

	tok.Cancel("second")

	assert.Equal(t, "first", tok.Reason())
	assert.Equal(t, at, tok.CancelledAt(), "cancelled_at is set exactly once")
}

func TestToken_CallbacksFireInOrderExactlyOnce(t *testing.T) {
	tok := NewToken("")
	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		tok.AddCallback(func(string) { order = append(order, i) })
	}

	tok.Cancel("done")
	tok.Cancel("again")

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestToken_PanickingCallbackIsIsolated(t *testing.T) {
	tok := NewToken("")
	fired := false
	tok.AddCallback(func(string) { panic("boom") })
	tok.AddCallback(func(string) { fired = true })

	require.NotPanics(t, func() { tok.Cancel("x") })
	assert.True(t, fired, "sibling callback must still fire")
}

func TestToken_AddCallbackAfterCancelFiresSynchronously(t *testing.T) {
	tok := NewToken("")
	tok.Cancel("early")

	var got string
	tok.AddCallback(func(reason string) { got = reason })
	assert.Equal(t, "early", got)
}

func TestToken_ConcurrentCancelAndCheck(t *testing.T) {
	tok := NewToken("")
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		tok.Cancel("race")
	}()
	go func() {
		defer wg.Done()
		for range 100 {
			_ = tok.Check()
		}
	}()
	wg.Wait()

	assert.Error(t, tok.Check())
}

func TestManager_CancelByID(t *testing.T) {
	m := NewManager()
	tok := m.NewToken("abc")

	assert.True(t, m.Cancel("abc", "user"))
	assert.False(t, m.Cancel("abc", "again"), "second cancel is a no-op")
	assert.False(t, m.Cancel("missing", "x"))
	assert.Error(t, tok.Check())
}

func TestManager_CancelAllAndActiveCount(t *testing.T) {
	m := NewManager()
	m.NewToken("")
	m.NewToken("")
	m.NewToken("").Cancel("pre")

	assert.Equal(t, 2, m.ActiveCount())
	assert.Equal(t, 2, m.CancelAll("shutdown"))
	assert.Equal(t, 0, m.ActiveCount())
}

func TestManager_CleanupOlderThan(t *testing.T) {
	m := NewManager()
	old := m.NewToken("old")
	old.Cancel("done")
	live := m.NewToken("live")

	// Old enough that a zero-age cutoff removes it.
	time.Sleep(5 * time.Millisecond)
	removed := m.CleanupOlderThan(time.Millisecond)

	assert.Equal(t, 1, removed)
	assert.Nil(t, m.Get("old"))
	assert.Same(t, live, m.Get("live"), "live tokens survive cleanup")
}
