// internal/alert/engine.go
package alert

import (
	"math"
	"time"

	"github.com/biocom/playauto-go/internal/config"
	"github.com/biocom/playauto-go/internal/domain"
)

// Engine is the stateless decision core: a pure function of product state,
// the latest forecast (override wins), and the evaluation time. It is safe
// for concurrent use.
type Engine struct {
	thresholds config.AlertConfig
	rules      []rule
}

func NewEngine(thresholds config.AlertConfig) *Engine {
	e := &Engine{thresholds: thresholds}
	e.rules = e.defaultRules()
	return e
}

// Evaluate runs every rule against one product. A product can raise several
// alerts in one pass; rules whose inputs are absent are skipped. fc and adj
// may be nil.
func (e *Engine) Evaluate(p *domain.Product, fc *domain.SKUForecast, adj *domain.ManualAdjustment, now time.Time) []domain.Alert {
	d := e.derive(p, fc, adj)

	figures := domain.AlertFigures{
		CurrentStock:         p.CurrentStock,
		SafetyStock:          p.SafetyStock,
		LeadTimeDays:         p.LeadTimeDays,
		DailyUsage:           d.DailyUsage,
		MonthlyForecast:      d.MonthlyForecast,
		RecommendedSafety:    d.AISafetyStock,
		Trend:                d.Trend,
		ForecastFromOverride: d.FromOverride,
	}
	if !math.IsInf(d.ConsumptionDays, 1) {
		figures.ConsumptionDays = d.ConsumptionDays
	}

	in := ruleInput{Product: p, Derived: d, Figures: figures, Now: now}

	var alerts []domain.Alert
	for _, r := range e.rules {
		alerts = append(alerts, r.apply(in)...)
	}
	return alerts
}
