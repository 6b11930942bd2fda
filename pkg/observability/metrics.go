package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/platinummonkey/xdepend/pkg/errkind"
)

// Metrics holds the Prometheus collectors for a scan.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	FilesParsedTotal          *prometheus.CounterVec
	ParseErrorsTotal          *prometheus.CounterVec
	ParseDuration             *prometheus.HistogramVec
	DependenciesReportedTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates and registers all scan metrics on registry
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		FilesParsedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xdepend_files_parsed_total",
				Help: "Total number of project and solution files parsed",
			},
			[]string{"kind"},
		),
		ParseErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xdepend_parse_errors_total",
				Help: "Total number of failed file parses",
			},
			[]string{"kind", "error_kind"},
		),
		ParseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "xdepend_parse_duration_seconds",
				Help:    "Time spent parsing a single file",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"kind"},
		),
		DependenciesReportedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xdepend_dependencies_reported_total",
				Help: "Total number of dependency entries reported",
			},
			[]string{"mode"},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.FilesParsedTotal,
		m.ParseErrorsTotal,
		m.ParseDuration,
		m.DependenciesReportedTotal,
	)

	return m
}

// ObserveParse records one parse of a file of the given kind ("project" or "solution")
func (m *Metrics) ObserveParse(kind string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.ParseDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	if err != nil {
		m.ParseErrorsTotal.WithLabelValues(kind, string(errkind.KindOf(err))).Inc()
		return
	}
	m.FilesParsedTotal.WithLabelValues(kind).Inc()
}

// ObserveResult records the number of entries reported for a mode
func (m *Metrics) ObserveResult(mode string, count int) {
	if m == nil {
		return
	}
	m.DependenciesReportedTotal.WithLabelValues(mode).Add(float64(count))
}

// WriteTextfile writes all metrics to path in the text exposition format,
// for collection by a node-exporter textfile collector
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
