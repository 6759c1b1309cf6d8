package metrics

import (
	"sync"
	"theracare-service/internal/app/contracts"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "theracare"

var (
	recordMetricsInstance contracts.RecordMetrics
	onceRecordMetrics     sync.Once
)

type recordMetrics struct {
	savesTotal         *prometheus.CounterVec
	entriesTotal       *prometheus.CounterVec
	fetchFailuresTotal *prometheus.CounterVec
}

// NewRecordMetrics registers the record counters on registerer once.
func NewRecordMetrics(registerer prometheus.Registerer) contracts.RecordMetrics {
	onceRecordMetrics.Do(func() {
		instance := newRecordMetrics()
		registerer.MustRegister(instance.savesTotal, instance.entriesTotal, instance.fetchFailuresTotal)
		recordMetricsInstance = instance
	})
	return recordMetricsInstance
}

func newRecordMetrics() *recordMetrics {
	return &recordMetrics{
		savesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "records",
			Name:      "saves_total",
			Help:      "Number of record batch saves.",
		}, []string{"category"}),
		entriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "records",
			Name:      "entries_total",
			Help:      "Number of saved batch entries by outcome.",
		}, []string{"category", "outcome"}),
		fetchFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "records",
			Name:      "fetch_failures_total",
			Help:      "Number of clinical data fetches that returned no entries because of an upstream failure.",
		}, []string{"category"}),
	}
}

func (m *recordMetrics) ObserveSave(category string, duplicates, added int) {
	m.savesTotal.WithLabelValues(category).Inc()
	m.entriesTotal.WithLabelValues(category, "duplicate").Add(float64(duplicates))
	m.entriesTotal.WithLabelValues(category, "added").Add(float64(added))
}

func (m *recordMetrics) ObserveFetchFailure(category string) {
	m.fetchFailuresTotal.WithLabelValues(category).Inc()
}
