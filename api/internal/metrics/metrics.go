package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	ReadingsCreated     prometheus.Counter
	Rejections          *prometheus.CounterVec
	Failures            *prometheus.CounterVec
	InferenceLatency    *prometheus.HistogramVec
	EmailsSent          prometheus.Counter
	EmailsFailed        prometheus.Counter
	EmailUpdateFailures prometheus.Counter
}

// New registers all collectors on reg. Pass prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ReadingsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "palmyst_readings_created_total",
			Help: "Readings generated and persisted",
		}),
		Rejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "palmyst_rejections_total",
			Help: "Submissions rejected during validation, by reason",
		}, []string{"reason"}),
		Failures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "palmyst_failures_total",
			Help: "Requests that failed, by pipeline stage",
		}, []string{"stage"}),
		InferenceLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "palmyst_inference_latency_seconds",
			Help:    "Latency of inference calls in seconds",
			Buckets: []float64{0.5, 1, 2, 4, 8, 15, 30, 60, 120},
		}, []string{"stage"}),
		EmailsSent: f.NewCounter(prometheus.CounterOpts{
			Name: "palmyst_emails_sent_total",
			Help: "Reading emails accepted by the mail server",
		}),
		EmailsFailed: f.NewCounter(prometheus.CounterOpts{
			Name: "palmyst_emails_failed_total",
			Help: "Reading emails the mail server rejected",
		}),
		EmailUpdateFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "palmyst_email_update_failures_total",
			Help: "Failed attempts to attach an email address to a reading",
		}),
	}
}

// ObserveInference records one inference call's duration under stage.
func (m *Metrics) ObserveInference(stage string, start time.Time) {
	if m == nil {
		return
	}
	m.InferenceLatency.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

func (m *Metrics) Reject(reason string) {
	if m == nil {
		return
	}
	m.Rejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) Fail(stage string) {
	if m == nil {
		return
	}
	m.Failures.WithLabelValues(stage).Inc()
}

func (m *Metrics) ReadingCreated() {
	if m == nil {
		return
	}
	m.ReadingsCreated.Inc()
}

func (m *Metrics) EmailSent() {
	if m == nil {
		return
	}
	m.EmailsSent.Inc()
}

func (m *Metrics) EmailFailed() {
	if m == nil {
		return
	}
	m.EmailsFailed.Inc()
}

func (m *Metrics) EmailUpdateFailed() {
	if m == nil {
		return
	}
	m.EmailUpdateFailures.Inc()
}
