package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	return New(reg, reg)
}

func TestObserveRequest(t *testing.T) {
	m := newTestMetrics()

	m.ObserveRequest("/api/v1/dates/{date}", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest("/api/v1/dates/{date}", http.StatusOK, 5*time.Millisecond)
	m.ObserveRequest("/api/v1/dates/{date}", http.StatusBadRequest, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("/api/v1/dates/{date}", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("/api/v1/dates/{date}", "400")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
}

func TestObserveConversion(t *testing.T) {
	m := newTestMetrics()

	m.ObserveConversion("parse", nil)
	m.ObserveConversion("parse", errors.New("boom"))
	m.ObserveConversion("parse", errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Conversions.WithLabelValues("parse", ResultOK)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Conversions.WithLabelValues("parse", ResultError)))
}

func TestHandler(t *testing.T) {
	m := newTestMetrics()
	m.RequestsInFlight.Inc()
	m.ObserveConversion("convert", nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tanggalan_requests_in_flight 1")
	assert.Contains(t, rec.Body.String(), `tanggalan_conversions_total{operation="convert",result="ok"} 1`)
}
