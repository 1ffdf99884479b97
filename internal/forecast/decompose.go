// internal/forecast/decompose.go
package forecast

// decomposeModel is the trend/seasonality decomposition family: a linear
// trend fit by least squares, additive seasonal indices averaged per
// position within the seasonal cycle, and forecasts built by extrapolating
// the trend and re-applying the indices.
type decomposeModel struct{}

func (m *decomposeModel) Name() string { return ModelDecompose }

func (m *decomposeModel) Fit(values []float64, opts FitOptions) (Fitted, error) {
	if len(values) < 4 {
		return nil, errSeriesTooShort
	}

	slope, intercept := fitTrendLine(values)

	// Seasonal indices need at least two full cycles to be meaningful.
	seasonLen := opts.SeasonalLag
	var indices []float64
	if seasonLen > 1 && len(values) >= 2*seasonLen {
		indices = seasonalIndices(values, slope, intercept, seasonLen)
	}

	return &fittedDecompose{
		n:         len(values),
		slope:     slope,
		intercept: intercept,
		indices:   indices,
	}, nil
}

type fittedDecompose struct {
	n         int
	slope     float64
	intercept float64
	indices   []float64
}

func (f *fittedDecompose) Forecast(horizon int) []float64 {
	out := make([]float64, horizon)
	for i := 0; i < horizon; i++ {
		t := f.n + i
		v := f.intercept + f.slope*float64(t)
		if len(f.indices) > 0 {
			v += f.indices[t%len(f.indices)]
		}
		out[i] = v
	}
	return out
}

// fitTrendLine is ordinary least squares of value on period index.
func fitTrendLine(values []float64) (slope, intercept float64) {
	n := float64(len(values))
	var sumT, sumV, sumTV, sumTT float64
	for i, v := range values {
		t := float64(i)
		sumT += t
		sumV += v
		sumTV += t * v
		sumTT += t * t
	}
	denom := n*sumTT - sumT*sumT
	if denom == 0 {
		return 0, sumV / n
	}
	slope = (n*sumTV - sumT*sumV) / denom
	intercept = (sumV - slope*sumT) / n
	return slope, intercept
}

// seasonalIndices averages the detrended residual per position in the cycle.
func seasonalIndices(values []float64, slope, intercept float64, seasonLen int) []float64 {
	sums := make([]float64, seasonLen)
	counts := make([]int, seasonLen)
	for i, v := range values {
		resid := v - (intercept + slope*float64(i))
		sums[i%seasonLen] += resid
		counts[i%seasonLen]++
	}

	indices := make([]float64, seasonLen)
	for i := range indices {
		if counts[i] > 0 {
			indices[i] = sums[i] / float64(counts[i])
		}
	}
	return indices
}
