// SPDX-License-Identifier: MIT

// Package metrics provides a Prometheus implementation of assign.Metrics.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/chorewheel/assign"
)

// PrometheusCollector implements assign.Metrics backed by Prometheus.
//
// Collectors are created and registered lazily on first use, so building one
// that is never exercised leaves the registry untouched.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	rounds        *prometheus.CounterVec
	roundDuration *prometheus.HistogramVec
	assignments   prometheus.Counter
	lowConfidence prometheus.Counter
}

// Compile-time assertion that PrometheusCollector implements assign.Metrics.
var _ assign.Metrics = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "chorewheel" if empty)
//
// Returns:
//   - *PrometheusCollector: an assign.Metrics implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "chorewheel"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.rounds = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "rounds_total",
			Help:      "Total assignment rounds by outcome (success,invalid_input,malformed_graph,error).",
		}, []string{"outcome"})

		p.roundDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "round_duration_seconds",
			Help:      "Wall time of assignment rounds in seconds by outcome.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs .. ~26s
		}, []string{"outcome"})

		p.assignments = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "assignments_total",
			Help:      "Total chores assigned across successful rounds.",
		})

		p.lowConfidence = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "low_confidence_assignments_total",
			Help:      "Assignments priced at the unassignable sentinel.",
		})

		p.reg.MustRegister(p.rounds, p.roundDuration, p.assignments, p.lowConfidence)
	})
}

// RecordRound implements assign.Metrics.
func (p *PrometheusCollector) RecordRound(outcome string, seconds float64) {
	p.ensureRegistered()
	p.rounds.WithLabelValues(outcome).Inc()
	p.roundDuration.WithLabelValues(outcome).Observe(seconds)
}

// RecordAssignments implements assign.Metrics.
func (p *PrometheusCollector) RecordAssignments(assigned, lowConfidence int) {
	p.ensureRegistered()
	p.assignments.Add(float64(assigned))
	p.lowConfidence.Add(float64(lowConfidence))
}
