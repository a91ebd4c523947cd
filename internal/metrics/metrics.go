package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds streaming metrics for direct instrumentation in the API layer.
type Metrics struct {
	StreamRequests    prometheus.Counter
	StreamBytes       prometheus.Counter
	StreamDuration    prometheus.Histogram
	UpstreamErrors    prometheus.Counter
	OpenStreams       prometheus.Gauge
	MetadataCacheHits prometheus.Counter
}

// New creates and registers streaming metrics with the given registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StreamRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vidrelay",
			Subsystem: "streaming",
			Name:      "requests_total",
			Help:      "Total range stream requests served.",
		}),
		StreamBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vidrelay",
			Subsystem: "streaming",
			Name:      "piped_bytes_total",
			Help:      "Total bytes piped from the upstream host to clients.",
		}),
		StreamDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vidrelay",
			Subsystem: "streaming",
			Name:      "request_duration_seconds",
			Help:      "Duration of range stream requests.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		UpstreamErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vidrelay",
			Subsystem: "streaming",
			Name:      "upstream_errors_total",
			Help:      "Metadata or byte-fetch failures from the external host.",
		}),
		OpenStreams: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vidrelay",
			Subsystem: "streaming",
			Name:      "open_streams",
			Help:      "Number of range responses currently being piped.",
		}),
		MetadataCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vidrelay",
			Subsystem: "streaming",
			Name:      "metadata_cache_hits_total",
			Help:      "Metadata lookups answered from the cache.",
		}),
	}

	reg.MustRegister(
		m.StreamRequests,
		m.StreamBytes,
		m.StreamDuration,
		m.UpstreamErrors,
		m.OpenStreams,
		m.MetadataCacheHits,
	)

	return m
}
