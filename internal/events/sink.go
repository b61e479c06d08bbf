package events

import (
	"context"
	"sync"
)

// Sink receives emitted events. Implementations must not block the caller:
// Append runs inside the registry's exclusive mutation section.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// MemorySink collects events in memory. Used in dev mode and tests.
type MemorySink struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a snapshot of everything appended so far, in emission order.
func (s *MemorySink) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events...)
}

// ChannelSink feeds a worker through a buffered channel. Append never blocks;
// when the buffer is full the event is dropped and counted, because stalling
// the registry's critical section is worse than losing an observer-facing
// notification.
type ChannelSink struct {
	ch      chan Event
	metrics *Metrics
}

func NewChannelSink(buffer int, metrics *Metrics) *ChannelSink {
	return &ChannelSink{
		ch:      make(chan Event, buffer),
		metrics: metrics,
	}
}

// Inbox exposes the channel for the consuming worker.
func (s *ChannelSink) Inbox() <-chan Event {
	return s.ch
}

func (s *ChannelSink) Append(_ context.Context, event Event) error {
	select {
	case s.ch <- event:
		s.metrics.IncEnqueued()
	default:
		s.metrics.IncDropped()
	}
	return nil
}
