// internal/domain/forecast.go
package domain

import "time"

// ArtifactVersion is stamped into every saved forecast artifact so stale
// documents written by an older trainer can be detected at load time.
const ArtifactVersion = 2

// ForecastKind distinguishes the two artifact layouts that have existed:
// "monthly" entries carry one value per forward month, "legacy" entries carry
// one value per forward day over HorizonDays. Legacy entries are normalized
// to monthly buckets once at load time.
type ForecastKind string

const (
	ForecastKindMonthly ForecastKind = "monthly"
	ForecastKindLegacy  ForecastKind = "legacy"
)

// ForecastMetrics are held-out evaluation scores for one model family.
type ForecastMetrics struct {
	MAE   float64 `json:"mae"`
	RMSE  float64 `json:"rmse"`
	MAPE  float64 `json:"mape"`
	SMAPE float64 `json:"smape"`
}

// SKUForecast is the stored forecast for one SKU: the winning family's
// values plus every family's full-series forecast and holdout metrics.
type SKUForecast struct {
	Kind         ForecastKind               `json:"kind"`
	BestModel    string                     `json:"best_model"`
	Values       []float64                  `json:"values"`
	Models       map[string][]float64       `json:"models,omitempty"`
	Metrics      map[string]ForecastMetrics `json:"metrics,omitempty"`
	LastObserved time.Time                  `json:"last_observed"`
	HorizonDays  int                        `json:"horizon_days,omitempty"`
}

// ForecastArtifact is the whole training output, replaced wholesale by each
// training run and loaded as a single document.
type ForecastArtifact struct {
	Version   int                    `json:"version"`
	TrainedAt time.Time              `json:"trained_at"`
	Horizon   int                    `json:"horizon"`
	Forecasts map[string]SKUForecast `json:"forecasts"`
	Skipped   []string               `json:"skipped,omitempty"`
}

// Forecast returns the forecast entry for a SKU, or ok=false when training
// produced nothing for it.
func (a *ForecastArtifact) Forecast(sku string) (SKUForecast, bool) {
	if a == nil {
		return SKUForecast{}, false
	}
	f, ok := a.Forecasts[sku]
	return f, ok
}

// Stale reports whether the artifact was written by an older trainer and
// should be retrained rather than silently reused.
func (a *ForecastArtifact) Stale() bool {
	return a.Version < ArtifactVersion
}
