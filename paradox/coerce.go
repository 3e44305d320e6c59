package paradox

import (
	"fmt"
	"math"
	"sort"

	"github.com/pivolan/paradox_detector/domain/models"
)

// CoerceNumeric maps a column to a numeric vector of the same length and
// order. Numeric columns are copied as-is (the result never aliases the
// column's backing slice). Categorical columns are encoded by sorting
// the distinct labels lexicographically (case-sensitive) and assigning
// rank indices starting at 1, so the encoding is stable across runs.
func CoerceNumeric(col models.Column) ([]float64, error) {
	switch col.Kind {
	case models.KindNumeric:
		if len(col.Labels) > 0 {
			return nil, fmt.Errorf("%w: numeric column %s carries labels", ErrTypeMismatch, col.Name)
		}
		out := make([]float64, len(col.Numbers))
		for i, v := range col.Numbers {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: non-finite value in column %s at row %d", ErrTypeMismatch, col.Name, i)
			}
			out[i] = v
		}
		return out, nil
	case models.KindCategorical:
		if len(col.Numbers) > 0 {
			return nil, fmt.Errorf("%w: categorical column %s carries numbers", ErrTypeMismatch, col.Name)
		}
		ranks := labelRanks(col.Labels)
		out := make([]float64, len(col.Labels))
		for i, label := range col.Labels {
			out[i] = float64(ranks[label])
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: column %s has unknown kind %d", ErrTypeMismatch, col.Name, col.Kind)
}

// labelRanks assigns 1-based ranks to the distinct labels in
// lexicographic order.
func labelRanks(labels []string) map[string]int {
	distinct := make([]string, 0, len(labels))
	seen := map[string]struct{}{}
	for _, label := range labels {
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		distinct = append(distinct, label)
	}
	sort.Strings(distinct)
	ranks := make(map[string]int, len(distinct))
	for i, label := range distinct {
		ranks[label] = i + 1
	}
	return ranks
}
