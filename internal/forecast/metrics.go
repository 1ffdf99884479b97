// internal/forecast/metrics.go
package forecast

import (
	"math"

	"github.com/biocom/playauto-go/internal/domain"
)

const smapeEpsilon = 1e-8

// Evaluate scores a forecast against held-out actuals. MAPE skips periods
// with a zero actual; when every actual is zero it is 0 for an all-zero
// forecast and +Inf otherwise. sMAPE is always finite.
func Evaluate(actual, predicted []float64) domain.ForecastMetrics {
	n := len(actual)
	if len(predicted) < n {
		n = len(predicted)
	}
	if n == 0 {
		return domain.ForecastMetrics{}
	}

	var absSum, sqSum, smapeSum float64
	var mapeSum float64
	var mapeCount int
	var predTotal float64

	for i := 0; i < n; i++ {
		a, p := actual[i], predicted[i]
		diff := math.Abs(a - p)
		absSum += diff
		sqSum += (a - p) * (a - p)
		smapeSum += 2 * diff / (math.Abs(a) + math.Abs(p) + smapeEpsilon)
		predTotal += p
		if a != 0 {
			mapeSum += diff / math.Abs(a)
			mapeCount++
		}
	}

	mape := 0.0
	if mapeCount > 0 {
		mape = mapeSum / float64(mapeCount) * 100
	} else if predTotal > 0 {
		mape = math.Inf(1)
	}

	return domain.ForecastMetrics{
		MAE:   absSum / float64(n),
		RMSE:  math.Sqrt(sqSum / float64(n)),
		MAPE:  mape,
		SMAPE: smapeSum / float64(n) * 100,
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// recentMean averages the last window values, or everything when the series
// is shorter than the window.
func recentMean(values []float64, window int) float64 {
	if window <= 0 || window > len(values) {
		return mean(values)
	}
	return mean(values[len(values)-window:])
}
