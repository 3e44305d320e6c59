package paradox

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func twoBlobPoints() [][]float64 {
	points := [][]float64{}
	for i := 0; i < 10; i++ {
		points = append(points, []float64{float64(i) * 0.1, 0})
	}
	for i := 0; i < 10; i++ {
		points = append(points, []float64{100 + float64(i)*0.1, 0})
	}
	return points
}

func TestKMeansSeparatesBlobs(t *testing.T) {
	points := twoBlobPoints()

	res, err := KMeans(points, 2, rand.New(rand.NewSource(7)))
	assert.NoError(t, err)
	assert.Equal(t, 2, res.K)
	assert.Len(t, res.Assignments, len(points))

	// All ids in 1..k, and each blob lands in a single cluster.
	for _, id := range res.Assignments {
		assert.GreaterOrEqual(t, id, 1)
		assert.LessOrEqual(t, id, 2)
	}
	for i := 1; i < 10; i++ {
		assert.Equal(t, res.Assignments[0], res.Assignments[i])
		assert.Equal(t, res.Assignments[10], res.Assignments[10+i])
	}
	assert.NotEqual(t, res.Assignments[0], res.Assignments[10])
}

func TestKMeansCostDropsWithK(t *testing.T) {
	points := twoBlobPoints()

	one, err := KMeans(points, 1, rand.New(rand.NewSource(7)))
	assert.NoError(t, err)
	two, err := KMeans(points, 2, rand.New(rand.NewSource(7)))
	assert.NoError(t, err)
	assert.Less(t, two.Cost, one.Cost)
}

func TestKMeansInvalidClusterCount(t *testing.T) {
	points := [][]float64{{1, 0}, {2, 0}, {1, 0}}

	_, err := KMeans(points, 0, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrInvalidClusterCount)

	// Only 2 distinct points, k=3 cannot be satisfied.
	_, err = KMeans(points, 3, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrInvalidClusterCount)
}

func TestKMeansSeededDeterminism(t *testing.T) {
	points := twoBlobPoints()

	a, err := KMeans(points, 3, rand.New(rand.NewSource(42)))
	assert.NoError(t, err)
	b, err := KMeans(points, 3, rand.New(rand.NewSource(42)))
	assert.NoError(t, err)

	assert.Equal(t, a.Assignments, b.Assignments)
	assert.Equal(t, a.Cost, b.Cost)
}
