package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordMetrics_ObserveSave(t *testing.T) {
	m := newRecordMetrics()

	m.ObserveSave("conditions", 2, 3)
	m.ObserveSave("conditions", 0, 1)
	m.ObserveFetchFailure("family-history")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.savesTotal.WithLabelValues("conditions")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.entriesTotal.WithLabelValues("conditions", "duplicate")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.entriesTotal.WithLabelValues("conditions", "added")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetchFailuresTotal.WithLabelValues("family-history")))
}

func TestHTTPMetrics_Observe(t *testing.T) {
	m := NewHTTPMetrics(prometheus.NewRegistry())

	m.Observe("/api/v1/records/{category}", http.MethodGet, http.StatusOK, 15*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/api/v1/records/{category}", http.MethodGet, "200")))
}
