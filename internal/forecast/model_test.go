package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeasonalARFollowsLinearTrend(t *testing.T) {
	m := &seasonalARModel{}
	values := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

	fitted, err := m.Fit(values, FitOptions{SeasonalLag: 12})
	require.NoError(t, err)

	out := fitted.Forecast(3)
	require.Len(t, out, 3)
	// A steady +10 trend should keep climbing from 100.
	assert.Greater(t, out[0], 100.0)
	assert.Greater(t, out[1], out[0])
}

func TestSeasonalARTooShort(t *testing.T) {
	m := &seasonalARModel{}
	_, err := m.Fit([]float64{1, 2, 3}, FitOptions{SeasonalLag: 12})
	assert.ErrorIs(t, err, errSeriesTooShort)
}

func TestDecomposeCapturesSeasonality(t *testing.T) {
	m := &decomposeModel{}

	// Two full cycles of a flat series with a repeating bump every 4th period.
	values := []float64{10, 10, 10, 30, 10, 10, 10, 30}
	fitted, err := m.Fit(values, FitOptions{SeasonalLag: 4})
	require.NoError(t, err)

	out := fitted.Forecast(4)
	require.Len(t, out, 4)
	// The bump position must forecast visibly higher than its neighbors.
	assert.Greater(t, out[3], out[0]+10)
}

func TestDecomposeWithoutFullCyclesUsesTrendOnly(t *testing.T) {
	m := &decomposeModel{}

	values := []float64{10, 12, 14, 16, 18}
	fitted, err := m.Fit(values, FitOptions{SeasonalLag: 12})
	require.NoError(t, err)

	out := fitted.Forecast(2)
	assert.InDelta(t, 20, out[0], 1e-6)
	assert.InDelta(t, 22, out[1], 1e-6)
}

func TestNeedsDifferencing(t *testing.T) {
	assert.True(t, needsDifferencing([]float64{10, 10, 10, 20, 20, 20}))
	assert.False(t, needsDifferencing([]float64{10, 10, 10, 11, 11, 11}))
	assert.False(t, needsDifferencing([]float64{10, 20, 30}), "short series never differences")
}

func TestSolveLinearSystem(t *testing.T) {
	// 2x + y = 5, x + 3y = 10 -> x = 1, y = 3
	a := [][]float64{{2, 1}, {1, 3}}
	b := []float64{5, 10}

	x, err := solveLinearSystem(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 1, x[0], 1e-9)
	assert.InDelta(t, 3, x[1], 1e-9)
}

func TestSolveLinearSystemSingular(t *testing.T) {
	a := [][]float64{{1, 2}, {2, 4}}
	b := []float64{3, 6}

	_, err := solveLinearSystem(a, b)
	assert.Error(t, err)
}
