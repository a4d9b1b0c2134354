package metrics

import "github.com/prometheus/client_golang/prometheus"

// QuoteMetrics exposes counters/histograms for the quote intake flow.
type QuoteMetrics struct {
	submissionsTotal   *prometheus.CounterVec
	submissionDuration *prometheus.HistogramVec
	notifyTotal        *prometheus.CounterVec
}

func NewQuoteMetrics(reg prometheus.Registerer) *QuoteMetrics {
	m := &QuoteMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kaiweb",
			Subsystem: "quotes",
			Name:      "submissions_total",
			Help:      "Total quote submission requests",
		}, []string{"service_type", "status"}),
		submissionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kaiweb",
			Subsystem: "quotes",
			Name:      "submission_duration_seconds",
			Help:      "Latency of quote submission handling",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service_type"}),
		notifyTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kaiweb",
			Subsystem: "quotes",
			Name:      "notifications_total",
			Help:      "Total notification email dispatch attempts",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.submissionDuration, m.notifyTotal)
	return m
}

// ObserveSubmission records a submission outcome. status is one of
// created, invalid, storage_error.
func (m *QuoteMetrics) ObserveSubmission(serviceType, status string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(serviceType, status).Inc()
}

// ObserveSubmissionDuration records handling latency in seconds.
func (m *QuoteMetrics) ObserveSubmissionDuration(serviceType string, seconds float64) {
	if m == nil {
		return
	}
	m.submissionDuration.WithLabelValues(serviceType).Observe(seconds)
}

// ObserveNotification records a dispatch outcome (sent or failed).
func (m *QuoteMetrics) ObserveNotification(status string) {
	if m == nil {
		return
	}
	m.notifyTotal.WithLabelValues(status).Inc()
}
