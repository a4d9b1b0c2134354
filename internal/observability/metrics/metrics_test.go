package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func gatherFamily(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestObserveSubmissionCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewQuoteMetrics(reg)

	m.ObserveSubmission("seo", "created")
	m.ObserveSubmission("seo", "created")
	m.ObserveSubmission("business", "invalid")

	mf := gatherFamily(t, reg, "kaiweb_quotes_submissions_total")
	require.NotNil(t, mf, "counter family not registered")

	total := 0.0
	for _, metric := range mf.GetMetric() {
		total += metric.GetCounter().GetValue()
	}
	require.Equal(t, 3.0, total)
}

func TestObserveNotification(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewQuoteMetrics(reg)

	m.ObserveNotification("sent")
	m.ObserveNotification("failed")

	mf := gatherFamily(t, reg, "kaiweb_quotes_notifications_total")
	require.NotNil(t, mf)
	require.Len(t, mf.GetMetric(), 2)
}

func TestObserveSubmissionDuration(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewQuoteMetrics(reg)

	m.ObserveSubmissionDuration("custom", 0.25)

	mf := gatherFamily(t, reg, "kaiweb_quotes_submission_duration_seconds")
	require.NotNil(t, mf)
	require.Equal(t, uint64(1), mf.GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *QuoteMetrics
	m.ObserveSubmission("seo", "created")
	m.ObserveSubmissionDuration("seo", 0.1)
	m.ObserveNotification("sent")
}
