// internal/forecast/fallback.go
package forecast

import (
	"math"

	"github.com/biocom/playauto-go/internal/series"
	"github.com/rs/zerolog/log"
)

// Policy wraps a model family with the short-series and fit-failure
// fallbacks plus the post-fit corrections, so every SKU always yields a
// usable forecast.
type Policy struct {
	// MinFitLength is the shortest series a statistical model is fit on;
	// anything shorter goes straight to the naive path.
	MinFitLength int
	// RecentWindow is how many trailing periods feed the naive mean and the
	// pessimism guard.
	RecentWindow int
	// NaiveGrowthRate is the per-period growth increment applied on the
	// short-series naive path.
	NaiveGrowthRate float64
	Profiles        SeasonalProfiles
}

// Result is a policy forecast: the values plus which family (or fallback)
// actually produced them.
type Result struct {
	ModelName string
	Values    []float64
	Fallback  bool
}

// Forecast fits the model on the series and applies the corrections, or
// degrades to a naive forecast when the series is too short or the fit
// fails. Values are always non-negative and len(Values) == horizon.
func (p *Policy) Forecast(m Model, sku string, s series.Series, horizon int, g series.Granularity) Result {
	values := s.Values()

	if len(values) < p.MinFitLength {
		return Result{ModelName: ModelNaive, Values: p.naiveGrowth(values, horizon), Fallback: true}
	}

	fitted, err := m.Fit(values, FitOptions{SeasonalLag: g.SeasonalLag()})
	if err != nil {
		log.Debug().Err(err).Str("sku", sku).Str("model", m.Name()).Msg("model fit failed, using naive forecast")
		return Result{ModelName: ModelNaive, Values: p.naiveSeasonal(sku, values, s, horizon, g), Fallback: true}
	}

	forecast := fitted.Forecast(horizon)
	forecast = p.applyPessimismGuard(forecast, values)
	if g == series.Monthly {
		forecast = p.applySeasonalBlend(sku, forecast, values, s)
	}
	forecast = applyTrendExtension(forecast, values)
	clampNonNegative(forecast)

	return Result{ModelName: m.Name(), Values: forecast}
}

// naiveGrowth replicates the recent mean with a constant per-period growth
// increment, for series too short to model.
func (p *Policy) naiveGrowth(values []float64, horizon int) []float64 {
	base := recentMean(values, p.RecentWindow)
	out := make([]float64, horizon)
	for i := range out {
		out[i] = base * (1 + p.NaiveGrowthRate*float64(i))
	}
	clampNonNegative(out)
	return out
}

// naiveSeasonal is the fit-failure fallback: the recent mean, shaped by the
// SKU's seasonal profile when one exists. Deterministic by construction.
func (p *Policy) naiveSeasonal(sku string, values []float64, s series.Series, horizon int, g series.Granularity) []float64 {
	base := recentMean(values, p.RecentWindow)
	out := make([]float64, horizon)
	for i := range out {
		out[i] = base
		if g == series.Monthly {
			month := s.Last().AddDate(0, i+1, 0).Month()
			if mult, ok := p.Profiles.Multiplier(sku, month); ok {
				out[i] = base * mult
			}
		}
	}
	clampNonNegative(out)
	return out
}

// applyPessimismGuard blends in the recent actual mean when the raw
// forecast undershoots it by more than 30%.
func (p *Policy) applyPessimismGuard(forecast, values []float64) []float64 {
	recent := recentMean(values, p.RecentWindow)
	if recent <= 0 || mean(forecast) >= recent*0.7 {
		return forecast
	}
	out := make([]float64, len(forecast))
	for i, v := range forecast {
		out[i] = v*0.7 + recent*0.3
	}
	return out
}

// applySeasonalBlend mixes the raw forecast with the historical mean scaled
// by the SKU's calendar-month multiplier.
func (p *Policy) applySeasonalBlend(sku string, forecast, values []float64, s series.Series) []float64 {
	if _, ok := p.Profiles[sku]; !ok {
		return forecast
	}
	histMean := mean(values)
	out := make([]float64, len(forecast))
	for i, v := range forecast {
		month := s.Last().AddDate(0, i+1, 0).Month()
		mult, _ := p.Profiles.Multiplier(sku, month)
		out[i] = v*0.7 + histMean*mult*0.3
	}
	return out
}

// applyTrendExtension ramps the forecast up when long-run history grew more
// than 10% between its first and second half, capped at 2% per forward
// period.
func applyTrendExtension(forecast, values []float64) []float64 {
	if len(values) < 6 {
		return forecast
	}
	half := len(values) / 2
	first := mean(values[:half])
	second := mean(values[half:])
	if first <= 0 {
		return forecast
	}
	growth := (second - first) / first
	if growth <= 0.1 {
		return forecast
	}

	rate := math.Min(growth*0.3, 0.02)
	out := make([]float64, len(forecast))
	for i, v := range forecast {
		out[i] = v * (1 + rate*float64(i))
	}
	return out
}

func clampNonNegative(values []float64) {
	for i, v := range values {
		if v < 0 || math.IsNaN(v) {
			values[i] = 0
		}
	}
}
