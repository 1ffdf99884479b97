package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biocom/playauto-go/internal/domain"
	"github.com/biocom/playauto-go/internal/series"
)

func seasonalHistory(cycles int) series.Series {
	pattern := []float64{80, 70, 90, 100, 110, 130, 150, 140, 120, 110, 100, 90}
	values := make([]float64, 0, cycles*len(pattern))
	for c := 0; c < cycles; c++ {
		values = append(values, pattern...)
	}
	return monthlySeries(values...)
}

func TestSelectIsDeterministic(t *testing.T) {
	sel := NewSelector(testPolicy())
	s := seasonalHistory(3)

	first := sel.Select("SKU-1", s, 3, series.Monthly)
	second := sel.Select("SKU-1", s, 3, series.Monthly)

	assert.Equal(t, first, second, "identical inputs must yield identical forecasts")
}

func TestSelectProducesFullForecast(t *testing.T) {
	sel := NewSelector(testPolicy())
	s := seasonalHistory(3)

	fc := sel.Select("SKU-1", s, 3, series.Monthly)

	assert.Equal(t, domain.ForecastKindMonthly, fc.Kind)
	require.Len(t, fc.Values, 3)
	for _, v := range fc.Values {
		assert.GreaterOrEqual(t, v, 0.0)
	}

	// Every family is refit on the full series and kept in the artifact.
	require.Contains(t, fc.Models, ModelSeasonalAR)
	require.Contains(t, fc.Models, ModelDecompose)
	assert.Contains(t, fc.Models, fc.BestModel)
	assert.Equal(t, fc.Models[fc.BestModel], fc.Values)

	assert.Equal(t, s.Last(), fc.LastObserved)
	assert.Contains(t, fc.Metrics, ModelSeasonalAR)
	assert.Contains(t, fc.Metrics, ModelDecompose)
}

func TestSelectShortSeriesSkipsEvaluation(t *testing.T) {
	sel := NewSelector(testPolicy())
	s := monthlySeries(10, 12, 14, 16, 18)

	// Five periods cannot hold out a 3-period tail and still train.
	fc := sel.Select("SKU-1", s, 3, series.Monthly)

	assert.Empty(t, fc.Metrics)
	assert.Equal(t, ModelSeasonalAR, fc.BestModel, "no metrics defaults to the seasonal family")
	require.Len(t, fc.Values, 3)
}

func TestPickWinner(t *testing.T) {
	sel := NewSelector(testPolicy())

	tests := []struct {
		name    string
		metrics map[string]domain.ForecastMetrics
		want    string
	}{
		{name: "nil metrics", metrics: nil, want: ModelSeasonalAR},
		{
			name: "lower mape wins",
			metrics: map[string]domain.ForecastMetrics{
				ModelSeasonalAR: {MAPE: 30},
				ModelDecompose:  {MAPE: 10},
			},
			want: ModelDecompose,
		},
		{
			name: "tie goes to seasonal ar",
			metrics: map[string]domain.ForecastMetrics{
				ModelSeasonalAR: {MAPE: 20},
				ModelDecompose:  {MAPE: 20},
			},
			want: ModelSeasonalAR,
		},
		{
			name: "missing seasonal ar metrics",
			metrics: map[string]domain.ForecastMetrics{
				ModelDecompose: {MAPE: 5},
			},
			want: ModelSeasonalAR,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sel.pickWinner(tt.metrics))
		})
	}
}
