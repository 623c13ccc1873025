package events

import (
	"context"
	"encoding/json"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// orderPayload is the slice of the order.received payload the metrics
// notifier cares about.
type orderPayload struct {
	Total int64 `json:"total"`
	Units int   `json:"units"`
}

// MetricsNotifier counts received orders and logs each event.
type MetricsNotifier struct {
	logger zerolog.Logger

	ordersTotal *prometheus.CounterVec
	orderValue  prometheus.Counter
	orderUnits  prometheus.Counter
}

// NewMetricsNotifier registers the order counters and returns the notifier.
// A nil registerer uses the default prometheus registry.
func NewMetricsNotifier(namespace string, reg prometheus.Registerer, logger zerolog.Logger) *MetricsNotifier {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	n := &MetricsNotifier{
		logger: logger,
		ordersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Domain events emitted, by topic.",
		}, []string{"topic"}),
		orderValue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_value_total",
			Help:      "Cumulative value of mocked orders in currency minor units.",
		}),
		orderUnits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_units_total",
			Help:      "Cumulative units across mocked orders.",
		}),
	}
	reg.MustRegister(n.ordersTotal, n.orderValue, n.orderUnits)
	return n
}

// Notify implements Notifier.
func (n *MetricsNotifier) Notify(_ context.Context, ev Event) error {
	n.ordersTotal.WithLabelValues(ev.Topic).Inc()

	if ev.Topic == TopicOrderReceived {
		var payload orderPayload
		if err := json.Unmarshal(ev.Payload, &payload); err == nil {
			n.orderValue.Add(float64(payload.Total))
			n.orderUnits.Add(float64(payload.Units))
		}
	}

	n.logger.Info().
		Str("event_id", ev.ID).
		Str("topic", ev.Topic).
		Str("aggregate_id", ev.AggregateID).
		Msg("domain event")
	return nil
}
