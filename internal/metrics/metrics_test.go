package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := NewPromRecorder(reg)
	require.NoError(t, err)

	r.RecordLookup(OutcomeFound, 3)
	r.RecordLookup(OutcomeFound, 2)
	r.RecordLookup(OutcomeInvalid, 0)
	r.RecordPower(0.67)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.requests.WithLabelValues(OutcomeFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.requests.WithLabelValues(OutcomeInvalid)))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.requests.WithLabelValues(OutcomeNone)))
	assert.Equal(t, uint64(2), sampleCount(t, reg, "linkstation_candidates"))
	assert.Equal(t, uint64(1), sampleCount(t, reg, "linkstation_best_power"))
}

func sampleCount(t *testing.T, reg *prometheus.Registry, name string) uint64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() == name {
			require.Len(t, mf.GetMetric(), 1)
			return mf.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	t.Fatalf("metric %s not gathered", name)
	return 0
}

func TestPromRecorderAlreadyRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromRecorder(reg)
	require.NoError(t, err)
	second, err := NewPromRecorder(reg)
	require.NoError(t, err)

	second.RecordLookup(OutcomeNone, 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(first.requests.WithLabelValues(OutcomeNone)))
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := NewPromRecorder(reg)
	require.NoError(t, err)
	r.RecordLookup(OutcomeError, 1)

	rr := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), `linkstation_requests_total{outcome="error"} 1`))
}

func TestNopRecorder(t *testing.T) {
	var r Recorder = NopRecorder{}
	r.RecordLookup(OutcomeFound, 1)
	r.RecordPower(1)
}
