package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveDonation(t *testing.T) {
	m := New()
	m.ObserveDonation(25)
	m.ObserveDonation(10)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.donations))
	assert.Equal(t, 35.0, testutil.ToFloat64(m.donationAmount))
}

func TestObserveOrderTransition(t *testing.T) {
	m := New()
	m.ObserveOrderTransition("fulfilled")
	m.ObserveOrderTransition("fulfilled")
	m.ObserveOrderTransition("cancelled")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.orderTransitions.WithLabelValues("fulfilled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.orderTransitions.WithLabelValues("cancelled")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveDonation(1)
		m.ObserveOrderTransition("ready")
		m.ObserveRequest("GET", "/health", "200", 0.01)
		m.ObservePurge(3)
	})
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.ObserveRequest("GET", "/health", "200", 0.002)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `nourishnet_http_requests_total{method="GET",route="/health",status="200"} 1`))
}
