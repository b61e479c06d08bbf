package events

import (
	"context"
	"log/slog"
)

// Producer delivers a single event to an external broker.
type Producer interface {
	Produce(ctx context.Context, event Event) error
}

// Worker drains the channel sink and hands events to the producer. It keeps
// broker latency out of the registry's critical section. Delivery is
// at-least-once; a failed produce is logged and counted, never retried here,
// because the notification contract is fire-and-forget.
type Worker struct {
	inbox    <-chan Event
	producer Producer
	logger   *slog.Logger
	metrics  *Metrics
}

func NewWorker(inbox <-chan Event, producer Producer, logger *slog.Logger, metrics *Metrics) *Worker {
	return &Worker{
		inbox:    inbox,
		producer: producer,
		logger:   logger,
		metrics:  metrics,
	}
}

// Run consumes until the context is cancelled, then drains whatever is still
// buffered so a clean shutdown does not strand notifications.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return ctx.Err()
		case event := <-w.inbox:
			w.publish(ctx, event)
		}
	}
}

func (w *Worker) drain() {
	// Shutdown path: use a fresh context so pending events still go out.
	ctx := context.Background()
	for {
		select {
		case event := <-w.inbox:
			w.publish(ctx, event)
		default:
			return
		}
	}
}

func (w *Worker) publish(ctx context.Context, event Event) {
	if err := w.producer.Produce(ctx, event); err != nil {
		w.metrics.IncFailed()
		w.logger.ErrorContext(ctx, "failed to publish notification",
			"action", event.Action,
			"card_id", event.CardID,
			"error", err,
		)
		return
	}
	w.metrics.IncPublished()
}
