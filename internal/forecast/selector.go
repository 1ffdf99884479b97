// internal/forecast/selector.go
package forecast

import (
	"github.com/biocom/playauto-go/internal/domain"
	"github.com/biocom/playauto-go/internal/series"
)

// Selector runs every candidate family over a held-out tail of history,
// scores them, and produces the production forecast from a full-series
// refit of all families.
type Selector struct {
	policy *Policy
	models []Model
}

func NewSelector(policy *Policy) *Selector {
	return &Selector{policy: policy, models: Candidates()}
}

// Select evaluates and refits all families for one SKU. Evaluation and
// production use different training windows on purpose: the holdout
// measures generalization, the full-series refit maximizes information.
func (s *Selector) Select(sku string, ser series.Series, horizon int, g series.Granularity) domain.SKUForecast {
	metrics := s.evaluate(sku, ser, horizon, g)

	// Refit every family on the full series for parity; the winner's values
	// become the production forecast.
	models := make(map[string][]float64, len(s.models))
	names := make(map[string]string, len(s.models))
	for _, m := range s.models {
		res := s.policy.Forecast(m, sku, ser, horizon, g)
		models[m.Name()] = res.Values
		names[m.Name()] = res.ModelName
	}

	best := s.pickWinner(metrics)

	fc := domain.SKUForecast{
		Kind:         domain.ForecastKindMonthly,
		BestModel:    names[best],
		Values:       models[best],
		Models:       models,
		Metrics:      metrics,
		LastObserved: ser.Last(),
	}
	return fc
}

// evaluate holds out the last horizon periods and scores each family on
// them. A series without room for a holdout yields no metrics.
func (s *Selector) evaluate(sku string, ser series.Series, horizon int, g series.Granularity) map[string]domain.ForecastMetrics {
	if len(ser) <= 2*horizon {
		return nil
	}

	train := ser[:len(ser)-horizon]
	actual := ser[len(ser)-horizon:].Values()

	metrics := make(map[string]domain.ForecastMetrics, len(s.models))
	for _, m := range s.models {
		res := s.policy.Forecast(m, sku, train, horizon, g)
		metrics[m.Name()] = Evaluate(actual, res.Values)
	}
	return metrics
}

// pickWinner returns the family with the lower MAPE. Ties and missing
// metrics default to the seasonal autoregressive family.
func (s *Selector) pickWinner(metrics map[string]domain.ForecastMetrics) string {
	best := ModelSeasonalAR
	if metrics == nil {
		return best
	}
	bestMetrics, ok := metrics[best]
	if !ok {
		return best
	}
	for _, m := range s.models {
		name := m.Name()
		if name == best {
			continue
		}
		if mm, ok := metrics[name]; ok && mm.MAPE < bestMetrics.MAPE {
			best = name
			bestMetrics = mm
		}
	}
	return best
}
