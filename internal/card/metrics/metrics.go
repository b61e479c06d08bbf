package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the card registry module.
type Metrics struct {
	// Cards created since process start
	CardsCreated prometheus.Counter

	// Operation latency by operation name
	OperationLatency *prometheus.HistogramVec

	// Rejected operations by failure code
	Rejections *prometheus.CounterVec
}

// New creates a new Metrics instance with all card module metrics registered.
func New() *Metrics {
	return &Metrics{
		CardsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "devdeck_cards_created_total",
			Help: "Total number of cards created in the registry",
		}),

		OperationLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "devdeck_card_operation_duration_seconds",
			Help:    "Duration of card registry operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}), // operation: "create", "update_description", "update_portfolio", "deactivate", "get"

		Rejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "devdeck_card_rejections_total",
			Help: "Total rejected card operations by failure code",
		}, []string{"code"}),
	}
}

// IncrementCardsCreated records a successful card creation.
func (m *Metrics) IncrementCardsCreated() {
	if m != nil {
		m.CardsCreated.Inc()
	}
}

// ObserveOperation records the duration of one registry operation.
func (m *Metrics) ObserveOperation(operation string, d time.Duration) {
	if m != nil {
		m.OperationLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

// IncrementRejection records a rejected operation.
func (m *Metrics) IncrementRejection(code string) {
	if m != nil {
		m.Rejections.WithLabelValues(code).Inc()
	}
}
