// Package metrics defines the per-module metrics interfaces plus their
// prometheus and no-op implementations. Each module records operation
// attempts, outcomes, and durations under its own subsystem label.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OperationMetrics is the shared surface every module's metrics embed.
type OperationMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)
	RecordHandlerAttempt(handlerName string)
	RecordHandlerSuccess(handlerName string)
	RecordHandlerFailure(handlerName string)
	RecordHandlerDuration(handlerName string, seconds float64)
}

type promMetrics struct {
	operationAttempts  *prometheus.CounterVec
	operationOutcomes  *prometheus.CounterVec
	operationDurations *prometheus.HistogramVec
	handlerAttempts    *prometheus.CounterVec
	handlerOutcomes    *prometheus.CounterVec
	handlerDurations   *prometheus.HistogramVec
}

// NewOperationMetrics registers and returns prometheus-backed metrics for the
// named module subsystem.
func NewOperationMetrics(registry *prometheus.Registry, subsystem string) OperationMetrics {
	m := &promMetrics{
		operationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fairway",
			Subsystem: subsystem,
			Name:      "operation_attempts_total",
			Help:      "Number of service operation invocations.",
		}, []string{"operation"}),
		operationOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fairway",
			Subsystem: subsystem,
			Name:      "operation_outcomes_total",
			Help:      "Service operation outcomes by result.",
		}, []string{"operation", "outcome"}),
		operationDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fairway",
			Subsystem: subsystem,
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		handlerAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fairway",
			Subsystem: subsystem,
			Name:      "handler_attempts_total",
			Help:      "Number of message handler invocations.",
		}, []string{"handler"}),
		handlerOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fairway",
			Subsystem: subsystem,
			Name:      "handler_outcomes_total",
			Help:      "Message handler outcomes by result.",
		}, []string{"handler", "outcome"}),
		handlerDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fairway",
			Subsystem: subsystem,
			Name:      "handler_duration_seconds",
			Help:      "Message handler latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"handler"}),
	}

	registry.MustRegister(
		m.operationAttempts,
		m.operationOutcomes,
		m.operationDurations,
		m.handlerAttempts,
		m.handlerOutcomes,
		m.handlerDurations,
	)
	return m
}

func (m *promMetrics) RecordOperationAttempt(_ context.Context, operation string) {
	m.operationAttempts.WithLabelValues(operation).Inc()
}

func (m *promMetrics) RecordOperationSuccess(_ context.Context, operation string) {
	m.operationOutcomes.WithLabelValues(operation, "success").Inc()
}

func (m *promMetrics) RecordOperationFailure(_ context.Context, operation string) {
	m.operationOutcomes.WithLabelValues(operation, "failure").Inc()
}

func (m *promMetrics) RecordOperationDuration(_ context.Context, operation string, duration time.Duration) {
	m.operationDurations.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *promMetrics) RecordHandlerAttempt(handlerName string) {
	m.handlerAttempts.WithLabelValues(handlerName).Inc()
}

func (m *promMetrics) RecordHandlerSuccess(handlerName string) {
	m.handlerOutcomes.WithLabelValues(handlerName, "success").Inc()
}

func (m *promMetrics) RecordHandlerFailure(handlerName string) {
	m.handlerOutcomes.WithLabelValues(handlerName, "failure").Inc()
}

func (m *promMetrics) RecordHandlerDuration(handlerName string, seconds float64) {
	m.handlerDurations.WithLabelValues(handlerName).Observe(seconds)
}

// NoOp discards every metric. Used in unit tests.
type NoOp struct{}

var _ OperationMetrics = NoOp{}

func (NoOp) RecordOperationAttempt(context.Context, string) {}

func (NoOp) RecordOperationSuccess(context.Context, string) {}

func (NoOp) RecordOperationFailure(context.Context, string) {}

func (NoOp) RecordOperationDuration(context.Context, string, time.Duration) {}

func (NoOp) RecordHandlerAttempt(string) {}

func (NoOp) RecordHandlerSuccess(string) {}

func (NoOp) RecordHandlerFailure(string) {}

func (NoOp) RecordHandlerDuration(string, float64) {}
