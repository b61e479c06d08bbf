package events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the notification pipeline.
type Metrics struct {
	Enqueued  prometheus.Counter
	Dropped   prometheus.Counter
	Published prometheus.Counter
	Failed    prometheus.Counter
}

// New creates a new Metrics instance with all event pipeline metrics registered.
func New() *Metrics {
	return &Metrics{
		Enqueued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "devdeck_events_enqueued_total",
			Help: "Total notifications accepted into the outbound buffer",
		}),
		Dropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "devdeck_events_dropped_total",
			Help: "Total notifications dropped because the outbound buffer was full",
		}),
		Published: promauto.NewCounter(prometheus.CounterOpts{
			Name: "devdeck_events_published_total",
			Help: "Total notifications delivered to the broker",
		}),
		Failed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "devdeck_events_publish_failures_total",
			Help: "Total notification deliveries that failed",
		}),
	}
}

func (m *Metrics) IncEnqueued() {
	if m != nil {
		m.Enqueued.Inc()
	}
}

func (m *Metrics) IncDropped() {
	if m != nil {
		m.Dropped.Inc()
	}
}

func (m *Metrics) IncPublished() {
	if m != nil {
		m.Published.Inc()
	}
}

func (m *Metrics) IncFailed() {
	if m != nil {
		m.Failed.Inc()
	}
}
