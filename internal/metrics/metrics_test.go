package metrics

import (
	"context"
	"testing"

	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/internal/testutils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

func value(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var out dto.Metric
	require.NoError(t, m.Write(&out))
	switch {
	case out.Counter != nil:
		return out.GetCounter().GetValue()
	case out.Gauge != nil:
		return out.GetGauge().GetValue()
	}
	return float64(out.GetHistogram().GetSampleCount())
}

func TestHooks_RecordRuns(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg)
	require.NoError(t, err)

	def := testutils.AnBn()
	table, err := runtime.NewTable(def.Transitions)
	require.NoError(t, err)
	engine := runtime.NewEngine(def, table, runtime.WithLifecycleHooks(c.Hooks()))

	accepted := engine.Simulate(context.Background(), 0, "aabb", 100)
	rejected := engine.Simulate(context.Background(), 1, "aaabbbbb", 100)

	assert.Equal(t, 1.0, value(t, c.Runs.WithLabelValues("anbn", "accepted")))
	assert.Equal(t, 1.0, value(t, c.Runs.WithLabelValues("anbn", "rejected")))
	assert.Equal(t, float64(accepted.Steps+rejected.Steps), value(t, c.Steps))
	assert.Equal(t, 0.0, value(t, c.Active))
	obs, err := c.StepsPerRun.GetMetricWithLabelValues("anbn")
	require.NoError(t, err)
	assert.Equal(t, 2.0, value(t, obs.(prometheus.Metric)))
}

func TestNew_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}

func TestNew_Unregistered(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)
	assert.NotNil(t, c.Hooks().OnStep)
}
