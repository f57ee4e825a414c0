// Package metrics provides internal metrics collection.
// This package is internal and should not be imported by external projects.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Collector records Prometheus metrics for the instrumentation pipeline.
type Collector struct {
	// stream lifecycle
	streamsTotal   *prometheus.CounterVec
	streamDuration *prometheus.HistogramVec

	// classification
	eventsClassified *prometheus.CounterVec
	fragmentsDropped *prometheus.CounterVec

	// duplication
	teeFallbacksTotal prometheus.Counter
	observerBacklog   *prometheus.GaugeVec

	// usage
	tokensObserved *prometheus.CounterVec

	// non-streaming calls
	invocationsTotal *prometheus.CounterVec

	logger *zap.Logger
}

// NewCollector registers the pipeline metrics under namespace on the
// default registry.
func NewCollector(namespace string, logger *zap.Logger) *Collector {
	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	c.streamsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "streams_total",
			Help:      "Total number of instrumented streams by outcome",
		},
		[]string{"vendor", "outcome"}, // outcome: completed, error, cancelled
	)

	c.streamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stream_duration_seconds",
			Help:      "Wall time from first to last observed stream item",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"vendor"},
	)

	c.eventsClassified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_classified_total",
			Help:      "Canonical events produced by the classifier",
		},
		[]string{"vendor", "event"},
	)

	c.fragmentsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fragments_dropped_total",
			Help:      "Stream fragments dropped as noise or malformed JSON",
		},
		[]string{"vendor", "reason"}, // reason: malformed, unrecognized
	)

	c.teeFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tee_fallbacks_total",
			Help:      "Streams passed through unobserved after duplication setup failed",
		},
	)

	c.observerBacklog = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "observer_backlog_items",
			Help:      "Items buffered for the observation branch",
		},
		[]string{"vendor"},
	)

	c.tokensObserved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_observed_total",
			Help:      "Token usage reported by vendors on observed calls",
		},
		[]string{"vendor", "type"}, // type: input, output
	)

	c.invocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invocations_total",
			Help:      "Total number of instrumented non-streaming calls",
		},
		[]string{"vendor", "status"},
	)

	return c
}

// RecordStream records one finished stream.
func (c *Collector) RecordStream(vendor, outcome string, duration time.Duration) {
	c.streamsTotal.WithLabelValues(vendor, outcome).Inc()
	c.streamDuration.WithLabelValues(vendor).Observe(duration.Seconds())
}

// RecordEvent counts one classified canonical event.
func (c *Collector) RecordEvent(vendor, event string) {
	c.eventsClassified.WithLabelValues(vendor, event).Inc()
}

// RecordDroppedFragment counts one fragment dropped during decoding or
// classification.
func (c *Collector) RecordDroppedFragment(vendor, reason string) {
	c.fragmentsDropped.WithLabelValues(vendor, reason).Inc()
}

// RecordTeeFallback counts a stream that ran unobserved.
func (c *Collector) RecordTeeFallback() {
	c.teeFallbacksTotal.Inc()
}

// SetObserverBacklog reports the current observation-branch backlog.
func (c *Collector) SetObserverBacklog(vendor string, n int) {
	c.observerBacklog.WithLabelValues(vendor).Set(float64(n))
}

// RecordTokens adds observed token usage.
func (c *Collector) RecordTokens(vendor string, inputTokens, outputTokens int64) {
	if inputTokens > 0 {
		c.tokensObserved.WithLabelValues(vendor, "input").Add(float64(inputTokens))
	}
	if outputTokens > 0 {
		c.tokensObserved.WithLabelValues(vendor, "output").Add(float64(outputTokens))
	}
}

// RecordInvocation records one finished non-streaming call.
func (c *Collector) RecordInvocation(vendor, status string) {
	c.invocationsTotal.WithLabelValues(vendor, status).Inc()
}
