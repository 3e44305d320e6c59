package paradox

import (
	"fmt"
	"math"
)

// SelectElbow picks a cluster count from a cost curve. costs[i] is the
// clustering cost for k = i+1 and must cover k = 1..cmax+1 inclusive.
//
// The curve is monotonically non-increasing in the typical case, so the
// raw minimum would always pick the largest k. Instead the elbow is the
// k in [max(2, cmin), cmax] farthest (perpendicular distance) from the
// chord between (1, cost(1)) and (cmax+1, cost(cmax+1)). When the global cost
// minimum lands before that elbow the curve is pathological and the
// minimum wins, clamped to cmin so a degenerate 1-cluster answer is
// never returned below the configured floor.
func SelectElbow(costs []float64, cmin, cmax int) (int, error) {
	if cmin < 1 || cmax < cmin {
		return 0, fmt.Errorf("%w: cmin=%d cmax=%d", ErrInvalidClusterCount, cmin, cmax)
	}
	if len(costs) != cmax+1 {
		return 0, fmt.Errorf("%w: need %d cost points for cmax=%d, got %d", ErrInvalidClusterCount, cmax+1, cmax, len(costs))
	}
	if cmax < 2 {
		return cmin, nil
	}

	// Chord endpoints: (1, cost(1)) and (cmax+1, cost(cmax+1)).
	x1, y1 := 1.0, costs[0]
	x2, y2 := float64(cmax+1), costs[cmax]

	lo := 2
	if cmin > lo {
		lo = cmin
	}
	idx := lo
	maxDist := math.Inf(-1)
	for k := lo; k <= cmax; k++ {
		d := perpendicularDistance(float64(k), costs[k-1], x1, y1, x2, y2)
		if d > maxDist {
			maxDist = d
			idx = k
		}
	}

	cidx := 1
	for k := 2; k <= cmax+1; k++ {
		if costs[k-1] < costs[cidx-1] {
			cidx = k
		}
	}

	// True minimum before the visual elbow means the heuristic is
	// looking at noise; fall back to the minimum, floored at cmin.
	if cidx < idx {
		if cidx < cmin {
			return cmin, nil
		}
		return cidx, nil
	}
	return idx, nil
}

// perpendicularDistance is the standard point-to-line distance from
// (px, py) to the line through (x1, y1) and (x2, y2).
func perpendicularDistance(px, py, x1, y1, x2, y2 float64) float64 {
	num := math.Abs((y2-y1)*px - (x2-x1)*py + x2*y1 - y2*x1)
	den := math.Hypot(y2-y1, x2-x1)
	if den == 0 {
		return 0
	}
	return num / den
}
