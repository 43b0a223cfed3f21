package status

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribe_ReceivesCurrentThenUpdates(t *testing.T) {
	m := NewManager()

	var mu sync.Mutex
	var got []Snapshot
	unsub := m.Subscribe(func(s Snapshot) {
		mu.Lock()
		got = append(got, s)
		mu.Unlock()
	})
	defer unsub()

	m.SetPhase(PhaseAnalyzing)
	m.UpdateProgress(1, 3, 500, 3000)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 3, "initial snapshot plus two mutations")
	assert.Equal(t, PhaseIdle, got[0].Phase)
	assert.Equal(t, PhaseAnalyzing, got[1].Phase)
	assert.Equal(t, 1, got[2].Progress.CurrentChunk)
	assert.Equal(t, 3, got[2].Progress.TotalChunks)
}

func TestUnsubscribe_StopsDelivery(t *testing.T) {
	m := NewManager()

	count := 0
	unsub := m.Subscribe(func(Snapshot) { count++ })
	unsub()
	m.SetPhase(PhaseCompleted)

	assert.Equal(t, 1, count, "only the initial snapshot")
}

func TestSnapshot_IsACopy(t *testing.T) {
	m := NewManager()
	m.RecordMessage(LevelInfo, "first", nil)

	snap := m.Snapshot()
	m.RecordMessage(LevelInfo, "second", nil)

	require.Len(t, snap.Messages, 1, "retained snapshot does not see later mutations")
	assert.Equal(t, "first", snap.Messages[0].Text)
}

func TestRecordUsage_Accumulates(t *testing.T) {
	m := NewManager()
	m.RecordUsage(1000, 400, 0.009)
	m.RecordUsage(2000, 800, 0.018)

	u := m.Snapshot().Usage
	assert.Equal(t, 2, u.Requests)
	assert.Equal(t, 3000, u.InputTokens)
	assert.Equal(t, 1200, u.OutputTokens)
	assert.InDelta(t, 0.027, u.CostUSD, 1e-9)
}

func TestRecordCancellation_SetsTerminalPhase(t *testing.T) {
	m := NewManager()
	m.SetPhase(PhaseAnalyzing)
	m.RecordCancellation("user")

	snap := m.Snapshot()
	assert.Equal(t, PhaseCancelled, snap.Phase)
	assert.Equal(t, 1, snap.Usage.Cancellations)
	require.NotEmpty(t, snap.Messages)
	assert.Contains(t, snap.Messages[len(snap.Messages)-1].Text, "user")
}

func TestMessageRing_Bounded(t *testing.T) {
	m := NewManager()
	for i := 0; i < messageRingSize+20; i++ {
		m.RecordMessage(LevelInfo, "msg", nil)
	}
	assert.Len(t, m.Snapshot().Messages, messageRingSize)
}

func TestSubscriberCanMutateWithoutDeadlock(t *testing.T) {
	m := NewManager()

	reentered := false
	m.Subscribe(func(s Snapshot) {
		// Reading from inside a callback must not deadlock since
		// notification happens outside the lock.
		if s.Phase == PhaseAnalyzing && !reentered {
			reentered = true
			_ = m.Snapshot()
		}
	})

	done := make(chan struct{})
	go func() {
		m.SetPhase(PhaseAnalyzing)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("notification deadlocked")
	}
	assert.True(t, reentered)
}
