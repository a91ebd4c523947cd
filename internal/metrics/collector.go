package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/shapedtime/vidrelay/internal/transcode"
)

// JobStatsSource reports transcode runner statistics.
type JobStatsSource interface {
	Stats() transcode.Stats
}

// TranscodeCollector implements prometheus.Collector for transcode job
// stats. It polls the runner lazily on each Prometheus scrape rather than
// maintaining duplicate state.
type TranscodeCollector struct {
	source JobStatsSource

	jobsRunning   *prometheus.Desc
	jobsSubmitted *prometheus.Desc
	jobsSucceeded *prometheus.Desc
	jobsFailed    *prometheus.Desc
	jobsRejected  *prometheus.Desc
}

// NewTranscodeCollector creates a collector that scrapes runner stats on demand.
func NewTranscodeCollector(source JobStatsSource) *TranscodeCollector {
	return &TranscodeCollector{
		source: source,

		jobsRunning: prometheus.NewDesc(
			"vidrelay_transcode_jobs_running",
			"Transcode jobs currently running.",
			nil, nil,
		),
		jobsSubmitted: prometheus.NewDesc(
			"vidrelay_transcode_jobs_submitted_total",
			"Transcode jobs accepted by the runner.",
			nil, nil,
		),
		jobsSucceeded: prometheus.NewDesc(
			"vidrelay_transcode_jobs_succeeded_total",
			"Transcode jobs that completed successfully.",
			nil, nil,
		),
		jobsFailed: prometheus.NewDesc(
			"vidrelay_transcode_jobs_failed_total",
			"Transcode jobs that failed.",
			nil, nil,
		),
		jobsRejected: prometheus.NewDesc(
			"vidrelay_transcode_jobs_rejected_total",
			"Transcode submissions rejected because the runner was full.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *TranscodeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.jobsRunning
	ch <- c.jobsSubmitted
	ch <- c.jobsSucceeded
	ch <- c.jobsFailed
	ch <- c.jobsRejected
}

// Collect implements prometheus.Collector.
func (c *TranscodeCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.Stats()

	ch <- prometheus.MustNewConstMetric(c.jobsRunning, prometheus.GaugeValue, float64(stats.Running))
	ch <- prometheus.MustNewConstMetric(c.jobsSubmitted, prometheus.CounterValue, float64(stats.Submitted))
	ch <- prometheus.MustNewConstMetric(c.jobsSucceeded, prometheus.CounterValue, float64(stats.Succeeded))
	ch <- prometheus.MustNewConstMetric(c.jobsFailed, prometheus.CounterValue, float64(stats.Failed))
	ch <- prometheus.MustNewConstMetric(c.jobsRejected, prometheus.CounterValue, float64(stats.Rejected))
}
