package paradox

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pivolan/paradox_detector/domain/models"
)

func TestGroupByFactorCategorical(t *testing.T) {
	ds := models.Dataset{Columns: []models.Column{
		{Name: "size", Kind: models.KindCategorical, Labels: []string{"small", "large", "small", "large", "small"}},
	}}

	groups, clusters, err := GroupByFactor(ds, "size", DefaultOptions())
	assert.NoError(t, err)
	assert.Nil(t, clusters)
	assert.Len(t, groups, 2)

	// Sorted label order for reproducible output.
	assert.Equal(t, "large", groups[0].Label)
	assert.Equal(t, []int{1, 3}, groups[0].Rows)
	assert.Equal(t, "small", groups[1].Label)
	assert.Equal(t, []int{0, 2, 4}, groups[1].Rows)
}

func TestGroupByFactorDiscreteNumeric(t *testing.T) {
	ds := models.Dataset{Columns: []models.Column{
		{Name: "stage", Kind: models.KindNumeric, Numbers: []float64{2, 1, 2, 3, 1}},
	}}

	groups, clusters, err := GroupByFactor(ds, "stage", DefaultOptions())
	assert.NoError(t, err)
	assert.Nil(t, clusters, "3 distinct values stay below the continuous threshold")
	assert.Len(t, groups, 3)
	assert.Equal(t, "1", groups[0].Label)
	assert.Equal(t, []int{1, 4}, groups[0].Rows)
	assert.Equal(t, "2", groups[1].Label)
	assert.Equal(t, "3", groups[2].Label)
}

func TestGroupByFactorContinuous(t *testing.T) {
	// Two clear bands of factor values, each with 10 distinct members:
	// the factor is continuous and must be discretized into 2 clusters.
	values := []float64{}
	for i := 0; i < 10; i++ {
		values = append(values, float64(i)*0.1)
	}
	for i := 0; i < 10; i++ {
		values = append(values, 100+float64(i)*0.1)
	}
	ds := models.Dataset{Columns: []models.Column{
		{Name: "age", Kind: models.KindNumeric, Numbers: values},
	}}

	groups, clusters, err := GroupByFactor(ds, "age", DefaultOptions())
	assert.NoError(t, err)
	assert.NotNil(t, clusters)
	assert.Equal(t, 2, clusters.K)
	assert.Len(t, groups, 2)

	// The two bands end up in different subgroups, rows partitioned.
	total := 0
	for _, g := range groups {
		total += len(g.Rows)
	}
	assert.Equal(t, 20, total)
	firstBand := clusters.Assignments[0]
	for i := 1; i < 10; i++ {
		assert.Equal(t, firstBand, clusters.Assignments[i])
	}
	assert.NotEqual(t, firstBand, clusters.Assignments[10])
}

func TestGroupByFactorContinuousDeterministic(t *testing.T) {
	values := []float64{}
	for i := 0; i < 30; i++ {
		values = append(values, float64(i%3)*50+float64(i)*0.01)
	}
	ds := models.Dataset{Columns: []models.Column{
		{Name: "age", Kind: models.KindNumeric, Numbers: values},
	}}

	opts := DefaultOptions()
	opts.Verbose = false
	a, _, err := GroupByFactor(ds, "age", opts)
	assert.NoError(t, err)
	b, _, err := GroupByFactor(ds, "age", opts)
	assert.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGroupByFactorMissingColumn(t *testing.T) {
	ds := models.Dataset{Columns: []models.Column{
		{Name: "x", Kind: models.KindNumeric, Numbers: []float64{1, 2}},
	}}
	_, _, err := GroupByFactor(ds, "nope", DefaultOptions())
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestGroupByFactorTooFewDistinctForSweep(t *testing.T) {
	// 5 distinct values hit the continuous threshold but cannot support
	// k = cmax+1 = 6 clusters: fatal InvalidClusterCount.
	ds := models.Dataset{Columns: []models.Column{
		{Name: "age", Kind: models.KindNumeric, Numbers: []float64{1, 2, 3, 4, 5, 1, 2, 3, 4, 5}},
	}}
	_, _, err := GroupByFactor(ds, "age", DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidClusterCount)
}
