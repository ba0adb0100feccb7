package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/chorewheel/assign"
	"github.com/katalvlaran/chorewheel/household"
)

func TestPrometheusCollector_Lazy(t *testing.T) {
	reg := prometheus.NewRegistry()
	_ = NewPrometheus(reg, "test")

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Empty(t, families)
}

func TestPrometheusCollector_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "test")

	p.RecordRound(assign.OutcomeSuccess, 0.002)
	p.RecordRound(assign.OutcomeSuccess, 0.004)
	p.RecordRound(assign.OutcomeInvalidInput, 0.0001)
	p.RecordAssignments(5, 1)
	p.RecordAssignments(3, 0)

	assert.InDelta(t, 2, testutil.ToFloat64(p.rounds.WithLabelValues(assign.OutcomeSuccess)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(p.rounds.WithLabelValues(assign.OutcomeInvalidInput)), 0)
	assert.InDelta(t, 8, testutil.ToFloat64(p.assignments), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(p.lowConfidence), 0)

	count, err := testutil.GatherAndCount(reg, "test_engine_round_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one histogram series per outcome")
}

func TestPrometheusCollector_DefaultNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "")
	p.RecordAssignments(1, 0)

	count, err := testutil.GatherAndCount(reg, "chorewheel_engine_assignments_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPrometheusCollector_WithEngine(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "")
	engine := assign.NewEngine(assign.WithMetrics(p))

	h := household.Household{
		ID:     "h1",
		Users:  []household.User{{ID: "u1", Preferences: map[string]household.Preference{"c1": household.Favor}}},
		Chores: []household.Chore{{ID: "c1"}, {ID: "c2"}},
	}
	_, err := engine.Assign(h)
	require.NoError(t, err)

	assert.InDelta(t, 1, testutil.ToFloat64(p.rounds.WithLabelValues(assign.OutcomeSuccess)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(p.assignments), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(p.lowConfidence), 0, "c2 has no stated preference")
}
