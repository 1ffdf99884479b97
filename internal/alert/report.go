// internal/alert/report.go
package alert

import (
	"math"
	"time"

	"github.com/biocom/playauto-go/internal/domain"
)

// RecommendedOrderQuantity covers the full forecast horizon plus the safety
// threshold, floors at the minimum order quantity, and rounds up to an
// orderable multiple of it.
func RecommendedOrderQuantity(monthlyForecast []float64, safetyStock *int, moq int) int {
	var sum float64
	for _, v := range monthlyForecast {
		sum += v
	}
	if safetyStock != nil {
		sum += float64(*safetyStock)
	}

	need := int(math.Ceil(sum))
	if need < moq {
		need = moq
	}
	return roundUpToMultiple(need, moq)
}

// ExpectedStockoutDate projects when stock runs out for one product, or nil
// when the forecast predicts no consumption.
func ExpectedStockoutDate(p *domain.Product, fc *domain.SKUForecast, adj *domain.ManualAdjustment, now time.Time) *time.Time {
	var forecast []float64
	if fc != nil {
		forecast = fc.Values
	}
	if values, ok := adj.AdjustedValues(); ok {
		forecast = values
	}
	days := expectedConsumptionDays(p.CurrentStock, forecast)
	if math.IsInf(days, 1) {
		return nil
	}
	t := now.Add(time.Duration(days * 24 * float64(time.Hour)))
	return &t
}

func roundUpToMultiple(n, multiple int) int {
	if multiple <= 1 {
		return n
	}
	if rem := n % multiple; rem != 0 {
		return n + multiple - rem
	}
	return n
}
