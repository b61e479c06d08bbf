package events

import (
	"context"
	"time"
)

// Publisher stamps and appends change notifications. The card service calls
// Emit inside the same exclusive section that committed the state change, so
// an event is never emitted without its mutation and vice versa.
type Publisher struct {
	sink Sink
}

func NewPublisher(sink Sink) *Publisher {
	return &Publisher{sink: sink}
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return p.sink.Append(ctx, event)
}
