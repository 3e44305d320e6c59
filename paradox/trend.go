package paradox

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Slope fits an ordinary least-squares line y = a + b*x and returns b.
// Orientation is fixed project-wide: x is the cause column, y is the
// effect column, for the overall fit and for every subgroup fit.
func Slope(xs, ys []float64) (float64, error) {
	_, beta, err := fitLine(xs, ys)
	return beta, err
}

// fitLine returns both coefficients; the plotting layer needs the
// intercept to draw trend lines.
func fitLine(xs, ys []float64) (alpha, beta float64, err error) {
	if len(xs) != len(ys) {
		return 0, 0, fmt.Errorf("%w: x has %d points, y has %d", ErrDegenerateFit, len(xs), len(ys))
	}
	if len(xs) < 2 {
		return 0, 0, ErrInsufficientData
	}
	alpha, beta = stat.LinearRegression(xs, ys, nil, false)
	// Zero variance in x makes the regression undefined; gonum reports
	// that as NaN coefficients.
	if math.IsNaN(beta) || math.IsInf(beta, 0) || math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return 0, 0, ErrDegenerateFit
	}
	return alpha, beta, nil
}

// signOf classifies a slope as -1, 0 or +1. A zero slope belongs to
// neither direction and never counts as a reversal.
func signOf(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
