// Package metrics provides Prometheus metrics for AgentHub delivery and
// fan-out observability. Fan-out operations report boolean success to callers;
// per-target outcomes surface here and in logs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Delivery kinds recorded by the stores.
const (
	KindMessage   = "message"
	KindBroadcast = "broadcast"
	KindRequest   = "request"
	KindResponse  = "response"
	KindEvent     = "event"
	KindKnowledge = "knowledge"
)

// Delivery outcomes.
const (
	OutcomeDelivered = "delivered"
	OutcomeRejected  = "rejected"
)

// Metrics holds all Prometheus metrics for the hub. A nil *Metrics is valid
// and records nothing, so stores can be used without a registry.
type Metrics struct {
	DeliveriesTotal *prometheus.CounterVec
	FanOutTargets   prometheus.Histogram
	EvictionsTotal  *prometheus.CounterVec
	PendingWaits    prometheus.Gauge
}

// New creates and registers all hub metrics on the given registerer. Pass
// prometheus.DefaultRegisterer for process-global metrics or a fresh registry
// in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		DeliveriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agenthub_deliveries_total",
				Help: "Total number of per-target message deliveries by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		FanOutTargets: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "agenthub_fanout_targets",
				Help:    "Number of targets per fan-out operation",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
		EvictionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agenthub_evictions_total",
				Help: "Total number of entries dropped by bounded-store FIFO eviction",
			},
			[]string{"store"},
		),
		PendingWaits: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "agenthub_pending_waits",
				Help: "Number of in-flight WaitForResponse calls",
			},
		),
	}
}

// RecordDelivery counts one per-target delivery attempt.
func (m *Metrics) RecordDelivery(kind string, delivered bool) {
	if m == nil {
		return
	}
	outcome := OutcomeDelivered
	if !delivered {
		outcome = OutcomeRejected
	}
	m.DeliveriesTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordFanOut records the size of a fan-out target set.
func (m *Metrics) RecordFanOut(targets int) {
	if m == nil {
		return
	}
	m.FanOutTargets.Observe(float64(targets))
}

// RecordEviction counts one FIFO eviction in the named store.
func (m *Metrics) RecordEviction(store string) {
	if m == nil {
		return
	}
	m.EvictionsTotal.WithLabelValues(store).Inc()
}

// WaitStarted marks a WaitForResponse call entering its poll loop.
func (m *Metrics) WaitStarted() {
	if m == nil {
		return
	}
	m.PendingWaits.Inc()
}

// WaitFinished marks a WaitForResponse call leaving its poll loop.
func (m *Metrics) WaitFinished() {
	if m == nil {
		return
	}
	m.PendingWaits.Dec()
}
