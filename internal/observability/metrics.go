package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sun_table_etl"

// Metrics holds the Prometheus counters, histograms, and gauges for the ETL pipeline.
type Metrics struct {
	TablesConsumed  prometheus.Counter
	DaysProduced    prometheus.Counter
	ParseErrors     *prometheus.CounterVec // labels: kind={format_error,unsupported_year,malformed_time_token,internal}
	PipelineRunning prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Collaborator metrics.
	CoordinateLookups *prometheus.CounterVec // labels: result={hit,miss,error}
	AstroRequests     *prometheus.CounterVec // labels: outcome={success,error}
	AstroAPIDuration  prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates all metrics and registers them with reg. Short-lived
// commands pass a private registry so repeated runs in one process do not collide.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TablesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tables_consumed_total",
			Help:      "Total sunrise/sunset tables read from the source topic.",
		}),
		DaysProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "days_produced_total",
			Help:      "Total per-day sun time records written to the sink topic.",
		}),
		ParseErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_errors_total",
			Help:      "Table parse failures by error kind.",
		}, []string{"kind"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of tables per batch extracted from Kafka.",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		CoordinateLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coordinate_lookups_total",
			Help:      "Zip code to coordinate lookups by result.",
		}, []string{"result"}),
		AstroRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "astro_requests_total",
			Help:      "USNO one-day API requests by outcome.",
		}, []string{"outcome"}),
		AstroAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "astro_api_duration_seconds",
			Help:      "USNO API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}

	reg.MustRegister(
		m.TablesConsumed,
		m.DaysProduced,
		m.ParseErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.CoordinateLookups,
		m.AstroRequests,
		m.AstroAPIDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		TablesConsumed:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "tables_consumed_total"}),
		DaysProduced:            prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "days_produced_total"}),
		ParseErrors:             prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "parse_errors_total"}, []string{"kind"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "batch_processing_duration_seconds"}),
		CoordinateLookups:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "coordinate_lookups_total"}, []string{"result"}),
		AstroRequests:           prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "astro_requests_total"}, []string{"outcome"}),
		AstroAPIDuration:        prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "astro_api_duration_seconds"}),
	}
}
