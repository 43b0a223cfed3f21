package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	valid := AnalysisRequest{
		Content: []byte("some anr content"),
		Kind:    LogKindANR,
		Mode:    ModeQuick,
	}

	tests := []struct {
		name     string
		mutate   func(r *AnalysisRequest)
		maxBytes int64
		wantErr  error
	}{
		{name: "valid", mutate: func(*AnalysisRequest) {}},
		{
			name:    "unknown kind",
			mutate:  func(r *AnalysisRequest) { r.Kind = "logcat" },
			wantErr: ErrInvalidKind,
		},
		{
			name:    "unknown mode",
			mutate:  func(r *AnalysisRequest) { r.Mode = "telepathic" },
			wantErr: ErrInvalidMode,
		},
		{
			name:    "empty content",
			mutate:  func(r *AnalysisRequest) { r.Content = nil },
			wantErr: ErrEmptyContent,
		},
		{
			name:     "over size cap",
			mutate:   func(*AnalysisRequest) {},
			maxBytes: 4,
			wantErr:  ErrFileTooLarge,
		},
		{
			name:     "zero cap disables the size check",
			mutate:   func(*AnalysisRequest) {},
			maxBytes: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			err := r.Validate(tt.maxBytes)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestProgressPercent(t *testing.T) {
	assert.Zero(t, ProgressState{}.Percent())
	assert.InDelta(t, 50.0, ProgressState{CurrentChunk: 1, TotalChunks: 2}.Percent(), 1e-9)
	assert.InDelta(t, 100.0, ProgressState{CurrentChunk: 3, TotalChunks: 3}.Percent(), 1e-9)
}

func TestEstimatedRemaining(t *testing.T) {
	start := time.Now()
	p := ProgressState{CurrentChunk: 1, TotalChunks: 3, StartedAt: start}

	// One chunk took a minute, two remain
	got := p.EstimatedRemaining(start.Add(time.Minute))
	assert.Equal(t, 2*time.Minute, got)

	assert.Zero(t, ProgressState{TotalChunks: 3, StartedAt: start}.EstimatedRemaining(start.Add(time.Minute)))
}
