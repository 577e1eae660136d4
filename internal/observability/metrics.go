package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for one
// analysis run.
type Metrics struct {
	RowsLoaded  prometheus.Counter
	RowsDropped prometheus.Counter

	// Per-column and per-artifact breakdowns.
	ValuesImputed    *prometheus.CounterVec // label: column={temperature,rainfall,humidity}
	ArtifactsWritten *prometheus.CounterVec // label: kind={chart,report,dataset}

	StageDuration *prometheus.HistogramVec // label: stage={load,clean,aggregate,report}
	LastRun       prometheus.Gauge
}

// NewMetrics creates and registers all analysis metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RowsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_analysis",
			Name:      "rows_loaded_total",
			Help:      "Total data rows parsed from the input file.",
		}),
		RowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_analysis",
			Name:      "rows_dropped_total",
			Help:      "Rows discarded during cleaning because the date failed to parse.",
		}),
		ValuesImputed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_analysis",
			Name:      "values_imputed_total",
			Help:      "Missing numeric cells replaced with the column mean.",
		}, []string{"column"}),
		ArtifactsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_analysis",
			Name:      "artifacts_written_total",
			Help:      "Output files written, by artifact kind.",
		}, []string{"kind"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_analysis",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		}, []string{"stage"}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_analysis",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix timestamp of the last completed analysis run.",
		}),
	}

	prometheus.MustRegister(
		m.RowsLoaded,
		m.RowsDropped,
		m.ValuesImputed,
		m.ArtifactsWritten,
		m.StageDuration,
		m.LastRun,
	)

	return m
}

// NewMetricsForTesting creates Metrics with no registration to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RowsLoaded:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_analysis", Name: "rows_loaded_total"}),
		RowsDropped:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_analysis", Name: "rows_dropped_total"}),
		ValuesImputed:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_analysis", Name: "values_imputed_total"}, []string{"column"}),
		ArtifactsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_analysis", Name: "artifacts_written_total"}, []string{"kind"}),
		StageDuration:    prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "weather_analysis", Name: "stage_duration_seconds"}, []string{"stage"}),
		LastRun:          prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_analysis", Name: "last_run_timestamp_seconds"}),
	}
}

// WriteTextfile writes the default registry in the Prometheus text exposition
// format, the layout the node_exporter textfile collector reads. The library
// writes through a temp file and rename, so readers never see a partial file.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
