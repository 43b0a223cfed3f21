package dispatch

import "time"

// Event is the interface for all outbound analysis event types. Consumers
// receive events strictly in order: Start first, exactly one terminal
// event (Complete, Cancelled, or Error) last.
type Event interface {
	eventType() EventType
}

// EventType identifies the kind of outbound event.
type EventType string

const (
	EventTypeStart     EventType = "start"
	EventTypeContent   EventType = "content"
	EventTypeProgress  EventType = "progress"
	EventTypeMessage   EventType = "message"
	EventTypeCancelled EventType = "cancelled"
	EventTypeError     EventType = "error"
	EventTypeComplete  EventType = "complete"
)

// StartEvent opens every analysis stream.
type StartEvent struct {
	AnalysisID string `json:"analysis_id"`
}

// ContentEvent carries one fragment of analysis output.
type ContentEvent struct {
	Text string `json:"text"`
}

// ProgressEvent reports chunk and token advancement. Percent is
// non-decreasing over the lifetime of a dispatch.
type ProgressEvent struct {
	Percent         float64 `json:"percent"`
	CurrentChunk    int     `json:"current_chunk"`
	TotalChunks     int     `json:"total_chunks"`
	ProcessedTokens int     `json:"processed_tokens"`
}

// MessageEvent surfaces an informational annotation.
type MessageEvent struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// CancelledEvent terminates a cancelled analysis.
type CancelledEvent struct {
	Reason string `json:"reason"`
}

// ErrorEvent terminates a failed analysis.
type ErrorEvent struct {
	Kind       ErrorKind     `json:"kind"`
	Text       string        `json:"text"`
	RetryAfter time.Duration `json:"retry_after,omitempty"`
}

// CompleteEvent terminates a successful analysis with usage totals.
type CompleteEvent struct {
	TokensIn  int     `json:"tokens_in"`
	TokensOut int     `json:"tokens_out"`
	CostUSD   float64 `json:"cost_usd"`
	Cached    bool    `json:"cached"`
}

func (e *StartEvent) eventType() EventType     { return EventTypeStart }
func (e *ContentEvent) eventType() EventType   { return EventTypeContent }
func (e *ProgressEvent) eventType() EventType  { return EventTypeProgress }
func (e *MessageEvent) eventType() EventType   { return EventTypeMessage }
func (e *CancelledEvent) eventType() EventType { return EventTypeCancelled }
func (e *ErrorEvent) eventType() EventType     { return EventTypeError }
func (e *CompleteEvent) eventType() EventType  { return EventTypeComplete }

// Type returns the wire name of an event.
func Type(ev Event) EventType { return ev.eventType() }

// Terminal reports whether ev ends the stream.
func Terminal(ev Event) bool {
	switch ev.(type) {
	case *CancelledEvent, *ErrorEvent, *CompleteEvent:
		return true
	}
	return false
}
