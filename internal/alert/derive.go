// internal/alert/derive.go
package alert

import (
	"math"

	"github.com/biocom/playauto-go/internal/domain"
)

// derived carries the intermediate quantities the rules and the report
// projection share for one product evaluation.
type derived struct {
	DailyUsage      float64
	MonthlyForecast []float64
	FromOverride    bool
	ConsumptionDays float64
	AISafetyStock   float64
	Trend           domain.DemandTrend
}

// derive computes the per-product intermediate values. A complete manual
// override replaces the raw model forecast; a partial one is ignored.
func (e *Engine) derive(p *domain.Product, fc *domain.SKUForecast, adj *domain.ManualAdjustment) derived {
	d := derived{}

	if p.OutboundTotal > 0 {
		d.DailyUsage = float64(p.OutboundTotal) / 30
	}

	if values, ok := adj.AdjustedValues(); ok {
		d.MonthlyForecast = values
		d.FromOverride = true
	} else if fc != nil {
		d.MonthlyForecast = fc.Values
	}

	d.ConsumptionDays = expectedConsumptionDays(p.CurrentStock, d.MonthlyForecast)
	if p.LeadTimeDays != nil {
		d.AISafetyStock = e.aiSafetyStock(*p.LeadTimeDays, d.MonthlyForecast)
	}
	d.Trend = demandTrend(d.MonthlyForecast)

	return d
}

// expectedConsumptionDays walks forward through the monthly forecast,
// consuming current stock. Within the month where stock runs out the day
// count is interpolated at that month's daily rate; stock that survives the
// whole horizon is extrapolated at the average monthly rate. Returns +Inf
// when the forecast predicts no consumption at all.
func expectedConsumptionDays(currentStock int, monthlyForecast []float64) float64 {
	if len(monthlyForecast) == 0 {
		return math.Inf(1)
	}

	remaining := float64(currentStock)
	days := 0.0
	for _, mf := range monthlyForecast {
		if mf > 0 && remaining <= mf {
			return days + remaining/(mf/30)
		}
		remaining -= mf
		days += 30
	}

	var total float64
	for _, mf := range monthlyForecast {
		total += mf
	}
	avg := total / float64(len(monthlyForecast))
	if avg <= 0 {
		return math.Inf(1)
	}
	return days + remaining/(avg/30)
}

// aiSafetyStock sums forecast consumption across the lead time, prorating
// the partial final month. Beyond 90 days the known months are extrapolated
// at the average daily rate and an uncertainty buffer is applied.
func (e *Engine) aiSafetyStock(leadTimeDays int, monthlyForecast []float64) float64 {
	if leadTimeDays <= 0 || len(monthlyForecast) == 0 {
		return 0
	}

	var total float64
	for _, mf := range monthlyForecast {
		total += mf
	}

	known := 30 * len(monthlyForecast)
	if leadTimeDays > known {
		avgDaily := total / float64(known)
		extra := float64(leadTimeDays-known) * avgDaily
		return (total + extra) * e.thresholds.LongLeadTimeBuffer
	}

	var sum float64
	remaining := leadTimeDays
	for _, mf := range monthlyForecast {
		if remaining >= 30 {
			sum += mf
			remaining -= 30
			continue
		}
		sum += mf * float64(remaining) / 30
		break
	}
	return sum
}

// demandTrend averages the month-over-month deltas across the horizon and
// compares them to the first month. Shifts within 2% either way read as
// steady.
func demandTrend(monthlyForecast []float64) domain.DemandTrend {
	if len(monthlyForecast) < 2 || monthlyForecast[0] <= 0 {
		return domain.TrendSteady
	}

	var deltaSum float64
	for i := 1; i < len(monthlyForecast); i++ {
		deltaSum += monthlyForecast[i] - monthlyForecast[i-1]
	}
	avgDelta := deltaSum / float64(len(monthlyForecast)-1)

	switch ratio := avgDelta / monthlyForecast[0]; {
	case ratio > 0.02:
		return domain.TrendRising
	case ratio < -0.02:
		return domain.TrendFalling
	default:
		return domain.TrendSteady
	}
}
