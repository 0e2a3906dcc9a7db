package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultDurationBuckets suit in-memory rule checks plus one database write
var DefaultDurationBuckets = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25}

// RequestMetricsCollector times every mediator request and counts outcomes.
// The outcome label reuses the action outcomes: accepted, a violation class, or error.
type RequestMetricsCollector struct {
	duration *prometheus.HistogramVec
	total    *prometheus.CounterVec
}

// NewRequestMetricsCollector uses DefaultDurationBuckets when buckets is empty
func NewRequestMetricsCollector(buckets []float64) *RequestMetricsCollector {
	if len(buckets) == 0 {
		buckets = DefaultDurationBuckets
	}
	return &RequestMetricsCollector{
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "Time spent handling game commands and queries",
				Buckets:   buckets,
			},
			[]string{"request", "kind"},
		),
		total: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Game commands and queries handled, by outcome",
			},
			[]string{"request", "kind", "outcome"},
		),
	}
}

// Register is a no-op until InitRegistry has run
func (c *RequestMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}
	for _, metric := range []prometheus.Collector{c.duration, c.total} {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

// RecordRequest records one handled request
func (c *RequestMetricsCollector) RecordRequest(name, kind string, seconds float64, err error) {
	c.duration.WithLabelValues(name, kind).Observe(seconds)
	c.total.WithLabelValues(name, kind, outcome(err)).Inc()
}
