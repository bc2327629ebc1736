package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// value returns the value of the metric family name matching labels.
func value(t *testing.T, m *Metrics, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	for _, f := range families {
		if f.GetName() != name {
			continue
		}
	metrics:
		for _, metric := range f.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue metrics
				}
			}
			if c := metric.GetCounter(); c != nil {
				return c.GetValue()
			}
			return metric.GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %s %v not found", name, labels)
	return 0
}

func TestNew_RegistersAll(t *testing.T) {
	m := New()

	m.PagesRequested.WithLabelValues("gitlab").Add(3)
	m.EventsNew.WithLabelValues("gitlab").Add(2)
	m.RecordsMaterialized.WithLabelValues("gitlab").Inc()
	m.RecordsFailed.WithLabelValues("gitlab", StageMaterialize).Inc()

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}

	for _, want := range []string{
		"recommit_pages_requested_total",
		"recommit_events_new_total",
		"recommit_records_materialized_total",
		"recommit_records_failed_total",
		"recommit_run_duration_seconds",
		"recommit_last_success_timestamp_seconds",
	} {
		require.True(t, names[want], "missing %s", want)
	}

	require.Equal(t, 3.0, value(t, m, "recommit_pages_requested_total", map[string]string{"source": "gitlab"}))
	require.Equal(t, 1.0, value(t, m, "recommit_records_failed_total", map[string]string{"source": "gitlab", "stage": StageMaterialize}))
}

func TestObserveRun(t *testing.T) {
	m := New()
	start := time.Unix(1_700_000_000, 0)

	m.ObserveRun(start, start.Add(90*time.Second), false)
	require.Equal(t, 90.0, value(t, m, "recommit_run_duration_seconds", nil))
	require.Equal(t, 0.0, value(t, m, "recommit_last_success_timestamp_seconds", nil))

	m.ObserveRun(start, start.Add(10*time.Second), true)
	require.Equal(t, 10.0, value(t, m, "recommit_run_duration_seconds", nil))
	require.Equal(t, float64(1_700_000_010), value(t, m, "recommit_last_success_timestamp_seconds", nil))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.EventsNew.WithLabelValues("gitlab").Add(4)

	path := filepath.Join(t.TempDir(), "recommit.prom")
	require.NoError(t, m.WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(content), `recommit_events_new_total{source="gitlab"} 4`)
}
