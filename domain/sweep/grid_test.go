package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange_InclusiveOfEndpoints(t *testing.T) {
	values := Range(0.01, 0.10, 0.005)
	require.Len(t, values, 19)
	assert.InDelta(t, 0.01, values[0], 1e-12)
	assert.InDelta(t, 0.10, values[len(values)-1], 1e-9)
}

// Grid values must be the documented canonical decimals, bit-for-bit: they
// key lookups and flow verbatim into the JSON API and workbook axis column,
// so accumulated float drift (0.09999999999999999 instead of 0.1) is a bug.
func TestRange_EmitsCanonicalDecimals(t *testing.T) {
	mdes := Range(0.01, 0.10, 0.005)
	require.Len(t, mdes, 19)
	assert.Equal(t, 0.1, mdes[len(mdes)-1])
	assert.Equal(t, 0.055, mdes[9])

	baselines := Range(0.05, 0.50, 0.025)
	require.Len(t, baselines, 19)
	assert.Equal(t, 0.5, baselines[len(baselines)-1])
	assert.Equal(t, 0.075, baselines[1])
}

func TestRange_RejectsBadSteps(t *testing.T) {
	assert.Nil(t, Range(0.1, 0.2, 0))
	assert.Nil(t, Range(0.1, 0.2, -0.01))
	assert.Nil(t, Range(0.2, 0.1, 0.01))
}

func TestMDEGrid_HoldsOtherParamsFixed(t *testing.T) {
	g := MDEGrid(Defaults(), []float64{0.02, 0.05, 0.10})

	require.Len(t, g.Points, 3)
	assert.Equal(t, AxisMDE, g.Axis)
	for _, p := range g.Points {
		assert.Equal(t, 0.5, p.Query.P1)
		assert.Equal(t, 0.05, p.Query.Alpha)
		assert.Equal(t, 0.8, p.Query.Power)
	}
	assert.InDelta(t, 0.51, g.Points[0].Query.P2, 1e-12)
	assert.InDelta(t, 0.55, g.Points[2].Query.P2, 1e-12)
}

func TestBaselineGrid_TreatmentTracksBaseline(t *testing.T) {
	g := BaselineGrid(Defaults(), []float64{0.1, 0.4})

	require.Len(t, g.Points, 2)
	for _, p := range g.Points {
		assert.InDelta(t, p.Value*1.05, p.Query.P2, 1e-12)
	}
}

func TestNewGrid_PreservesGenerationOrder(t *testing.T) {
	for _, axis := range []Axis{AxisMDE, AxisAlpha, AxisBaseline} {
		g, err := NewGrid(axis, Defaults())
		require.NoError(t, err)
		require.NotEmpty(t, g.Points)

		prev := g.Points[0].Value
		for _, p := range g.Points[1:] {
			assert.Greater(t, p.Value, prev)
			prev = p.Value
		}
	}
}

func TestParseAxis(t *testing.T) {
	for _, s := range []string{"mde", "alpha", "baseline"} {
		axis, err := ParseAxis(s)
		require.NoError(t, err)
		assert.Equal(t, Axis(s), axis)
	}

	_, err := ParseAxis("powerr")
	assert.Error(t, err)
}
