package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biocom/playauto-go/internal/domain"
)

func outbound(sku string, qty int, date string) domain.ShipmentEvent {
	t, _ := time.Parse("2006-01-02", date)
	return domain.ShipmentEvent{SKU: sku, Quantity: qty, Direction: domain.DirectionOutbound, OccurredAt: t}
}

func TestBuildFillsGaps(t *testing.T) {
	b := NewBuilder(Monthly)

	// Events in January and April only; February and March must come out
	// present with zero quantity.
	s := b.Build([]domain.ShipmentEvent{
		outbound("SKU-1", 10, "2024-01-05"),
		outbound("SKU-1", 20, "2024-01-20"),
		outbound("SKU-1", 5, "2024-04-10"),
	})

	require.Len(t, s, 4)
	assert.Equal(t, []float64{30, 0, 0, 5}, s.Values())
	for i := 1; i < len(s); i++ {
		assert.True(t, s[i].Period.After(s[i-1].Period), "periods must be strictly increasing")
	}

	var total float64
	for _, p := range s {
		total += p.Quantity
	}
	assert.Equal(t, float64(35), total, "aggregation must preserve total quantity")
}

func TestBuildIgnoresInboundEvents(t *testing.T) {
	b := NewBuilder(Monthly)

	s := b.Build([]domain.ShipmentEvent{
		{SKU: "SKU-1", Quantity: 100, Direction: domain.DirectionInbound, OccurredAt: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		outbound("SKU-1", 10, "2024-01-10"),
	})

	require.Len(t, s, 1)
	assert.Equal(t, float64(10), s[0].Quantity)
}

func TestBuildEmptyInput(t *testing.T) {
	b := NewBuilder(Monthly)
	assert.Empty(t, b.Build(nil))
	assert.Empty(t, b.Build([]domain.ShipmentEvent{
		{SKU: "SKU-1", Quantity: 5, Direction: domain.DirectionInbound, OccurredAt: time.Now()},
	}))
}

func TestBuildAllGroupsBySKU(t *testing.T) {
	b := NewBuilder(Monthly)

	out := b.BuildAll([]domain.ShipmentEvent{
		outbound("B-SKU", 10, "2024-01-05"),
		outbound("A-SKU", 20, "2024-01-05"),
		outbound("A-SKU", 5, "2024-02-10"),
		{SKU: "C-SKU", Quantity: 7, Direction: domain.DirectionInbound, OccurredAt: time.Now()},
	})

	require.Len(t, out, 2)
	assert.Len(t, out["A-SKU"], 2)
	assert.Len(t, out["B-SKU"], 1)
	assert.NotContains(t, out, "C-SKU", "SKU without outbound events must be absent")

	assert.Equal(t, []string{"A-SKU", "B-SKU"}, SKUs(out))
}

func TestWeeklyTruncatesToMonday(t *testing.T) {
	b := NewBuilder(Weekly)

	// 2024-01-10 is a Wednesday; its week starts Monday 2024-01-08.
	s := b.Build([]domain.ShipmentEvent{outbound("SKU-1", 3, "2024-01-10")})

	require.Len(t, s, 1)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), s[0].Period)
	assert.Equal(t, time.Monday, s[0].Period.Weekday())
}

func TestGranularityConstants(t *testing.T) {
	assert.Equal(t, 12, Monthly.PeriodsPerYear())
	assert.Equal(t, 12, Monthly.SeasonalLag())
	assert.Equal(t, 4, Weekly.SeasonalLag())
	assert.Equal(t, 30, Daily.SeasonalLag())
}
