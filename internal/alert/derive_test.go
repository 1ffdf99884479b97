package alert

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/biocom/playauto-go/internal/domain"
)

func TestExpectedConsumptionDaysInterpolates(t *testing.T) {
	// 45 units against [30, 30, 30]: one full month plus half of the next.
	days := expectedConsumptionDays(45, []float64{30, 30, 30})
	assert.InDelta(t, 45, days, 1e-9)
}

func TestExpectedConsumptionDaysExtrapolatesBeyondHorizon(t *testing.T) {
	// 120 units against 90 forecast: 90 days plus 30/(30/30) extrapolated.
	days := expectedConsumptionDays(120, []float64{30, 30, 30})
	assert.InDelta(t, 120, days, 1e-9)
}

func TestExpectedConsumptionDaysNoForecast(t *testing.T) {
	assert.True(t, math.IsInf(expectedConsumptionDays(100, nil), 1))
	assert.True(t, math.IsInf(expectedConsumptionDays(100, []float64{0, 0, 0}), 1))
}

func TestAISafetyStockProratesPartialMonth(t *testing.T) {
	e := NewEngine(testThresholds())

	// 45 day lead time over [30, 30, 30]: first month fully, half the second.
	got := e.aiSafetyStock(45, []float64{30, 30, 30})
	assert.InDelta(t, 45, got, 1e-9)

	got = e.aiSafetyStock(90, []float64{30, 30, 30})
	assert.InDelta(t, 90, got, 1e-9)
}

func TestAISafetyStockLongLeadTimeBuffer(t *testing.T) {
	e := NewEngine(testThresholds())

	// 120 days: 90 known + 30 extrapolated at 1/day, then the 1.2x buffer.
	got := e.aiSafetyStock(120, []float64{30, 30, 30})
	assert.InDelta(t, (90+30)*1.2, got, 1e-9)
}

func TestDemandTrend(t *testing.T) {
	tests := []struct {
		name     string
		forecast []float64
		want     domain.DemandTrend
	}{
		{name: "rising", forecast: []float64{100, 105, 110}, want: domain.TrendRising},
		{name: "falling", forecast: []float64{100, 90, 80}, want: domain.TrendFalling},
		{name: "within band is steady", forecast: []float64{100, 99, 98}, want: domain.TrendSteady},
		{name: "flat", forecast: []float64{100, 100, 100}, want: domain.TrendSteady},
		{name: "no forecast", forecast: nil, want: domain.TrendSteady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, demandTrend(tt.forecast))
		})
	}
}

func TestDeriveLegacyDailyUsage(t *testing.T) {
	e := NewEngine(testThresholds())

	d := e.derive(&domain.Product{SKU: "S", OutboundTotal: 150}, nil, nil)
	assert.InDelta(t, 5, d.DailyUsage, 1e-9)

	d = e.derive(&domain.Product{SKU: "S"}, nil, nil)
	assert.Zero(t, d.DailyUsage)
}
