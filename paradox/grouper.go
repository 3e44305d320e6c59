package paradox

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/pivolan/paradox_detector/domain/models"
)

// Subgroup is a set of row indices sharing one factor value, raw or
// cluster-assigned.
type Subgroup struct {
	Label string
	Rows  []int
}

// GroupByFactor splits the dataset rows by the factor column. Discrete
// factors (categorical, or numeric with fewer than ContinuousThreshold
// distinct values) group by raw value in sorted order. Continuous
// factors are discretized first: k-means over k = 1..CMax+1, elbow
// selection, then grouping by the chosen clustering's assignment. The
// returned ClusterResult is nil unless the factor was discretized.
func GroupByFactor(ds models.Dataset, factor string, opts Options) ([]Subgroup, *ClusterResult, error) {
	col, ok := ds.Column(factor)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrColumnNotFound, factor)
	}
	if col.Kind == models.KindCategorical {
		return groupByLabel(col.Labels), nil, nil
	}
	if col.DistinctCount() < opts.ContinuousThreshold {
		return groupByNumber(col.Numbers), nil, nil
	}
	return groupByCluster(col.Numbers, opts)
}

func groupByLabel(labels []string) []Subgroup {
	rowsByLabel := map[string][]int{}
	for i, label := range labels {
		rowsByLabel[label] = append(rowsByLabel[label], i)
	}
	distinct := make([]string, 0, len(rowsByLabel))
	for label := range rowsByLabel {
		distinct = append(distinct, label)
	}
	sort.Strings(distinct)
	groups := make([]Subgroup, 0, len(distinct))
	for _, label := range distinct {
		groups = append(groups, Subgroup{Label: label, Rows: rowsByLabel[label]})
	}
	return groups
}

func groupByNumber(values []float64) []Subgroup {
	rowsByValue := map[float64][]int{}
	for i, v := range values {
		rowsByValue[v] = append(rowsByValue[v], i)
	}
	distinct := make([]float64, 0, len(rowsByValue))
	for v := range rowsByValue {
		distinct = append(distinct, v)
	}
	sort.Float64s(distinct)
	groups := make([]Subgroup, 0, len(distinct))
	for _, v := range distinct {
		label := strconv.FormatFloat(v, 'g', -1, 64)
		groups = append(groups, Subgroup{Label: label, Rows: rowsByValue[v]})
	}
	return groups
}

// groupByCluster runs the per-k clustering sweep. The k runs are
// independent, so they run concurrently; each k gets its own rng
// derived from Options.Seed so the outcome does not depend on
// scheduling, and results land in increasing-k order for the elbow.
func groupByCluster(values []float64, opts Options) ([]Subgroup, *ClusterResult, error) {
	points := make([][]float64, len(values))
	for i, v := range values {
		// Second dimension is reserved for future factor features.
		points[i] = []float64{v, 0}
	}

	results := make([]*ClusterResult, opts.CMax+1)
	var g errgroup.Group
	for k := 1; k <= opts.CMax+1; k++ {
		k := k
		g.Go(func() error {
			rng := rand.New(rand.NewSource(opts.Seed + int64(k)))
			res, err := KMeans(points, k, rng)
			if err != nil {
				return err
			}
			results[k-1] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	costs := make([]float64, len(results))
	for i, res := range results {
		costs[i] = res.Cost
	}
	chosen, err := SelectElbow(costs, opts.CMin, opts.CMax)
	if err != nil {
		return nil, nil, err
	}
	res := results[chosen-1]

	rowsByCluster := make([][]int, res.K)
	for i, id := range res.Assignments {
		rowsByCluster[id-1] = append(rowsByCluster[id-1], i)
	}
	groups := make([]Subgroup, 0, res.K)
	for id := 1; id <= res.K; id++ {
		rows := rowsByCluster[id-1]
		if len(rows) == 0 {
			continue
		}
		groups = append(groups, Subgroup{Label: fmt.Sprintf("cluster_%d", id), Rows: rows})
	}
	return groups, res, nil
}
