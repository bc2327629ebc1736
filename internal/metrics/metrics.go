// Package metrics exposes run statistics as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Failure stages for RecordsFailed.
const (
	StageFetch       = "fetch"
	StageMaterialize = "materialize"
	StageStore       = "store"
	StagePush        = "push"
)

// Metrics holds all recommit Prometheus metrics.
type Metrics struct {
	registry *prometheus.Registry

	PagesRequested      *prometheus.CounterVec
	EventsNew           *prometheus.CounterVec
	RecordsMaterialized *prometheus.CounterVec
	RecordsFailed       *prometheus.CounterVec
	RunDuration         prometheus.Gauge
	LastSuccess         prometheus.Gauge
}

// New creates the metrics on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		PagesRequested: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recommit_pages_requested_total",
			Help: "Event pages requested from a source.",
		}, []string{"source"}),

		EventsNew: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recommit_events_new_total",
			Help: "Events not seen before, per source.",
		}, []string{"source"}),

		RecordsMaterialized: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recommit_records_materialized_total",
			Help: "Records committed to the repository and stored in the ledger.",
		}, []string{"source"}),

		RecordsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recommit_records_failed_total",
			Help: "Failures by source and stage.",
		}, []string{"source", "stage"}),

		RunDuration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "recommit_run_duration_seconds",
			Help: "Wall time of the last run.",
		}),

		LastSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Name: "recommit_last_success_timestamp_seconds",
			Help: "Unix time of the last run that finished without error.",
		}),
	}
}

// Registry returns the registry holding the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRun records the duration of a run and, when it succeeded, its end time.
func (m *Metrics) ObserveRun(started, finished time.Time, succeeded bool) {
	m.RunDuration.Set(finished.Sub(started).Seconds())
	if succeeded {
		m.LastSuccess.Set(float64(finished.Unix()))
	}
}

// WriteTextfile writes all metrics in the text exposition format to path,
// for node_exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
