package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ticketOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_operations_total",
			Help: "Ticket inventory operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	ticketsSold = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_sold_total",
			Help: "Tickets created by committed purchases",
		},
	)

	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ticket_operation_duration_seconds",
			Help:    "Duration of ticket operations including time spent waiting on row locks",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 14),
		},
		[]string{"operation"},
	)

	inventoryDrift = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "event_inventory_drift",
			Help: "tickets_available minus the expected value derived from live tickets",
		},
		[]string{"event_id"},
	)

	driftedEvents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "event_inventory_drifted_events",
			Help: "Number of events whose inventory disagreed with live tickets at the last reconcile",
		},
	)
)

// Monitor records inventory metrics. The zero value is ready to use.
type Monitor struct{}

func NewMonitor() *Monitor {
	return &Monitor{}
}

func (m *Monitor) TrackOperation(operation, outcome string, started time.Time) {
	ticketOperations.WithLabelValues(operation, outcome).Inc()
	operationDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func (m *Monitor) TrackTicketsSold(n int) {
	ticketsSold.Add(float64(n))
}

func (m *Monitor) TrackDrift(eventID string, delta int) {
	inventoryDrift.WithLabelValues(eventID).Set(float64(delta))
}

// ResetDrift clears per-event drift series before a new reconcile pass reports.
func (m *Monitor) ResetDrift(total int) {
	inventoryDrift.Reset()
	driftedEvents.Set(float64(total))
}
