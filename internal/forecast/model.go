// internal/forecast/model.go
package forecast

import "errors"

// Model family names as stored in the forecast artifact.
const (
	ModelSeasonalAR = "seasonal_ar"
	ModelDecompose  = "decompose"
	ModelNaive      = "naive"
)

var errSeriesTooShort = errors.New("series too short to fit")

// FitOptions carries the per-series knobs a model family may use.
type FitOptions struct {
	// SeasonalLag is the candidate seasonal period in series periods
	// (12 for monthly, 4 for weekly, 30 for daily).
	SeasonalLag int
}

// Model fits one forecast family to a value series.
type Model interface {
	Name() string
	Fit(values []float64, opts FitOptions) (Fitted, error)
}

// Fitted produces forward forecasts from a fitted model.
type Fitted interface {
	Forecast(horizon int) []float64
}

// Candidates returns the competing model families in selection-priority
// order: the seasonal autoregressive family is first and wins ties.
func Candidates() []Model {
	return []Model{&seasonalARModel{}, &decomposeModel{}}
}

// solveLinearSystem solves A·x = b in place by Gaussian elimination with
// partial pivoting. A near-singular system returns an error so callers can
// degrade to the naive path.
func solveLinearSystem(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if abs(a[row][col]) > abs(a[pivot][col]) {
				pivot = row
			}
		}
		if abs(a[pivot][col]) < 1e-10 {
			return nil, errors.New("singular design matrix")
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for row := col + 1; row < n; row++ {
			factor := a[row][col] / a[col][col]
			for k := col; k < n; k++ {
				a[row][k] -= factor * a[col][k]
			}
			b[row] -= factor * b[col]
		}
	}

	x := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := b[row]
		for k := row + 1; k < n; k++ {
			sum -= a[row][k] * x[k]
		}
		x[row] = sum / a[row][row]
	}
	return x, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
