package paradox

import (
	"fmt"
	"math"
	"math/rand"
)

// maxKMeansIterations caps Lloyd's loop for inputs that keep oscillating.
const maxKMeansIterations = 100

// ClusterResult is the outcome of one k-means run: a 1..K cluster id per
// input row and the total within-cluster sum of squared distances.
type ClusterResult struct {
	K           int
	Assignments []int
	Cost        float64
	Centroids   [][]float64
}

// KMeans partitions points into k clusters with Lloyd's algorithm.
// Centroids are initialized from k distinct points drawn via rng, so
// runs are reproducible for a fixed seed. Points are rows, dimensions
// are columns.
func KMeans(points [][]float64, k int, rng *rand.Rand) (*ClusterResult, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k=%d", ErrInvalidClusterCount, k)
	}
	distinct := distinctPoints(points)
	if k > len(distinct) {
		return nil, fmt.Errorf("%w: k=%d but only %d distinct points", ErrInvalidClusterCount, k, len(distinct))
	}

	centroids := initialCentroids(distinct, k, rng)
	assignments := make([]int, len(points))
	for iter := 0; iter < maxKMeansIterations; iter++ {
		changed := false
		for i, p := range points {
			best := nearestCentroid(p, centroids)
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}
		recomputeCentroids(points, assignments, centroids)
	}

	cost := 0.0
	for i, p := range points {
		cost += squaredDistance(p, centroids[assignments[i]-1])
	}
	return &ClusterResult{K: k, Assignments: assignments, Cost: cost, Centroids: centroids}, nil
}

func distinctPoints(points [][]float64) [][]float64 {
	seen := map[string]struct{}{}
	distinct := make([][]float64, 0, len(points))
	for _, p := range points {
		key := fmt.Sprint(p)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		distinct = append(distinct, p)
	}
	return distinct
}

func initialCentroids(distinct [][]float64, k int, rng *rand.Rand) [][]float64 {
	order := rng.Perm(len(distinct))
	centroids := make([][]float64, k)
	for i := 0; i < k; i++ {
		c := make([]float64, len(distinct[order[i]]))
		copy(c, distinct[order[i]])
		centroids[i] = c
	}
	return centroids
}

// nearestCentroid returns a 1-based cluster id; ties go to the lowest id
// so assignment is deterministic.
func nearestCentroid(p []float64, centroids [][]float64) int {
	best := 1
	bestDist := math.Inf(1)
	for ci, c := range centroids {
		d := squaredDistance(p, c)
		if d < bestDist {
			bestDist = d
			best = ci + 1
		}
	}
	return best
}

// recomputeCentroids moves each centroid to the mean of its members. A
// centroid that lost all members keeps its previous position.
func recomputeCentroids(points [][]float64, assignments []int, centroids [][]float64) {
	if len(points) == 0 {
		return
	}
	dim := len(points[0])
	sums := make([][]float64, len(centroids))
	counts := make([]int, len(centroids))
	for i := range sums {
		sums[i] = make([]float64, dim)
	}
	for i, p := range points {
		ci := assignments[i] - 1
		counts[ci]++
		for d, v := range p {
			sums[ci][d] += v
		}
	}
	for ci := range centroids {
		if counts[ci] == 0 {
			continue
		}
		for d := 0; d < dim; d++ {
			centroids[ci][d] = sums[ci][d] / float64(counts[ci])
		}
	}
}

func squaredDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}
