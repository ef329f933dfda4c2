// Package sink provides per-consumer event delivery buffers.
package sink

import (
	"context"
	"log/slog"

	"teamline/domain/event"
	"teamline/observability"
)

// SessionSink buffers outbound events for one connection. The write
// pump drains Events; when the buffer is full, new events are
// dropped and counted rather than stalling the broadcaster; a slow
// client must never hold up a room.
type SessionSink struct {
	Events  chan event.Event
	log     *slog.Logger
	monitor *observability.Monitor
}

func NewSessionSink(log *slog.Logger, monitor *observability.Monitor, bufferSize int) *SessionSink {
	return &SessionSink{
		Events:  make(chan event.Event, bufferSize),
		log:     log,
		monitor: monitor,
	}
}

// Consume implements contract.EventSink.
func (s *SessionSink) Consume(ctx context.Context, e event.Event) error {
	select {
	case s.Events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		s.monitor.EventDropped()
		s.log.Debug("Session buffer full, dropping event", "event", e.Name())
		return nil
	}
}
