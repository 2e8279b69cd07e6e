package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "flood_risk"

// Metrics holds the Prometheus counters, histograms, and gauges for the flood risk service.
type Metrics struct {
	Assessments     *prometheus.CounterVec // labels: level={SAFE,LOW,MEDIUM,HIGH}
	AssessmentFails *prometheus.CounterVec // labels: kind={validation,configuration,upstream}
	NewsAlerts      *prometheus.CounterVec // labels: level={HIGH,MEDIUM,LOW}

	// Upstream call metrics.
	UpstreamRequests *prometheus.CounterVec   // labels: source={weather,forecast,news}, outcome={success,error}
	UpstreamDuration *prometheus.HistogramVec // labels: source={weather,forecast,news}

	// Assessment publishing metrics.
	PublishErrors    prometheus.Counter
	PublisherEnabled prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Assessments,
		m.AssessmentFails,
		m.NewsAlerts,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.PublishErrors,
		m.PublisherEnabled,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Completed flood risk assessments by resulting level.",
		}, []string{"level"}),
		AssessmentFails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessment_failures_total",
			Help:      "Rejected or failed assessments by error kind.",
		}, []string{"kind"}),
		NewsAlerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "news_alerts_total",
			Help:      "Same-day headlines classified, by keyword level.",
		}, []string{"level"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Outbound upstream requests by source and outcome.",
		}, []string{"source", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_duration_seconds",
			Help:      "Upstream request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Assessments that could not be published to Kafka.",
		}),
		PublisherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "publisher_enabled",
			Help:      "1 when assessments are published to Kafka, 0 otherwise.",
		}),
	}
}

// ObserveUpstream records the outcome and latency of one upstream call.
func (m *Metrics) ObserveUpstream(source string, seconds float64, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.UpstreamRequests.WithLabelValues(source, outcome).Inc()
	m.UpstreamDuration.WithLabelValues(source).Observe(seconds)
}
