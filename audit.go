package navguard

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"
)

const (
	eventNavigationAllowed    = "navigation_allowed"
	eventNavigationCancelled  = "navigation_cancelled"
	eventNavigationRedirected = "navigation_redirected"
	eventGuardFailure         = "guard_failure"
)

// AuditConfig controls the asynchronous audit dispatcher.
type AuditConfig struct {
	Enabled bool
	// BufferSize is the dispatcher channel capacity.
	BufferSize int
	// DropIfFull drops events under backpressure instead of blocking the
	// navigation until the sink catches up. Dropped events are counted and
	// reported through [Pipeline.AuditDropped].
	DropIfFull bool
}

// NavigationEvent is one audited navigation decision or failure.
type NavigationEvent struct {
	Timestamp    time.Time `json:"timestamp"`
	EventType    string    `json:"event_type"`
	NavigationID string    `json:"navigation_id"`
	ToPath       string    `json:"to_path,omitempty"`
	ToName       string    `json:"to_name,omitempty"`
	FromPath     string    `json:"from_path,omitempty"`
	// GuardIndex is the chain position of the deciding or failing guard,
	// or -1 when the navigation was allowed through without a decision.
	GuardIndex int    `json:"guard_index"`
	Error      string `json:"error,omitempty"`
}

// Sink receives audit events from the dispatcher goroutine. Emit must be
// safe for concurrent use and should not block longer than the caller's ctx
// allows.
type Sink interface {
	Emit(ctx context.Context, event NavigationEvent)
}

// NoOpSink discards every event.
type NoOpSink struct{}

// Emit implements [Sink].
func (NoOpSink) Emit(context.Context, NavigationEvent) {}

// ChannelSink forwards events into a buffered channel for the application
// to consume.
type ChannelSink struct {
	events chan NavigationEvent
}

// NewChannelSink builds a ChannelSink with the given buffer.
func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan NavigationEvent, buffer),
	}
}

// Emit implements [Sink].
func (s *ChannelSink) Emit(ctx context.Context, event NavigationEvent) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

// Events returns the receive side of the sink.
func (s *ChannelSink) Events() <-chan NavigationEvent {
	return s.events
}

// JSONWriterSink writes one JSON object per line to an io.Writer.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONWriterSink builds a JSONWriterSink around w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{
		writer: w,
	}
}

// Emit implements [Sink].
func (s *JSONWriterSink) Emit(ctx context.Context, event NavigationEvent) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}
