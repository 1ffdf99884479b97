// internal/forecast/seasonal_ar.go
package forecast

// seasonalARModel is an autoregressive model fit by least squares on lagged
// values, with an optional seasonal lag and first-differencing when the
// series shows a persistent level shift (a cheap stand-in for a formal
// stationarity test).
type seasonalARModel struct{}

func (m *seasonalARModel) Name() string { return ModelSeasonalAR }

func (m *seasonalARModel) Fit(values []float64, opts FitOptions) (Fitted, error) {
	if len(values) < 4 {
		return nil, errSeriesTooShort
	}

	diffed := false
	y := values
	if needsDifferencing(values) {
		y = difference(values)
		diffed = true
	}

	lags := []int{1, 2}
	if len(y) < 6 {
		lags = []int{1}
	}
	// Add the seasonal lag only when at least one full cycle plus a margin
	// of observations is available.
	if opts.SeasonalLag > 0 && len(y) >= opts.SeasonalLag+3 {
		lags = append(lags, opts.SeasonalLag)
	}

	coeffs, intercept, err := fitAR(y, lags)
	if err != nil {
		return nil, err
	}

	return &fittedAR{
		history:   append([]float64(nil), y...),
		levels:    append([]float64(nil), values...),
		lags:      lags,
		coeffs:    coeffs,
		intercept: intercept,
		diffed:    diffed,
	}, nil
}

type fittedAR struct {
	history   []float64 // possibly differenced
	levels    []float64 // original scale
	lags      []int
	coeffs    []float64
	intercept float64
	diffed    bool
}

func (f *fittedAR) Forecast(horizon int) []float64 {
	work := append([]float64(nil), f.history...)
	out := make([]float64, 0, horizon)
	level := f.levels[len(f.levels)-1]

	for i := 0; i < horizon; i++ {
		pred := f.intercept
		for j, lag := range f.lags {
			idx := len(work) - lag
			if idx < 0 {
				idx = 0
			}
			pred += f.coeffs[j] * work[idx]
		}
		work = append(work, pred)

		if f.diffed {
			level += pred
			out = append(out, level)
		} else {
			out = append(out, pred)
		}
	}
	return out
}

// fitAR solves the least-squares AR regression y_t = c + Σ φ_j·y_{t-lag_j}.
func fitAR(y []float64, lags []int) ([]float64, float64, error) {
	maxLag := 0
	for _, l := range lags {
		if l > maxLag {
			maxLag = l
		}
	}
	rows := len(y) - maxLag
	if rows < len(lags)+1 {
		return nil, 0, errSeriesTooShort
	}

	// Normal equations for [intercept, coeffs...].
	dim := len(lags) + 1
	xtx := make([][]float64, dim)
	for i := range xtx {
		xtx[i] = make([]float64, dim)
	}
	xty := make([]float64, dim)

	for t := maxLag; t < len(y); t++ {
		row := make([]float64, dim)
		row[0] = 1
		for j, lag := range lags {
			row[j+1] = y[t-lag]
		}
		for i := 0; i < dim; i++ {
			for j := 0; j < dim; j++ {
				xtx[i][j] += row[i] * row[j]
			}
			xty[i] += row[i] * y[t]
		}
	}

	// Small ridge term keeps flat series from going singular.
	for i := 1; i < dim; i++ {
		xtx[i][i] += 1e-6
	}

	beta, err := solveLinearSystem(xtx, xty)
	if err != nil {
		return nil, 0, err
	}
	return beta[1:], beta[0], nil
}

// needsDifferencing fires when the second half of the series sits far from
// the first half, indicating a trend the AR terms alone will not capture.
func needsDifferencing(values []float64) bool {
	if len(values) < 6 {
		return false
	}
	half := len(values) / 2
	first := mean(values[:half])
	second := mean(values[half:])
	if first == 0 {
		return second != 0
	}
	return abs(second-first)/abs(first) > 0.25
}

func difference(values []float64) []float64 {
	out := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		out[i-1] = values[i] - values[i-1]
	}
	return out
}
