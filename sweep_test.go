package main

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pivolan/paradox_detector/domain/models"
	"github.com/pivolan/paradox_detector/paradox"
)

func quietOptions() paradox.Options {
	opts := paradox.DefaultOptions()
	opts.Verbose = false
	return opts
}

func TestSweepFindsHiddenReversal(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	ds, err := paradox.GenerateParadoxDataset(120, rng, 20)
	assert.NoError(t, err)

	result := sweepParadoxes(ds, quietOptions())
	assert.Greater(t, result.Scanned, 0)
	assert.NotEmpty(t, result.Findings)

	found := false
	for _, report := range result.Findings {
		if report.Cause == paradox.GeneratedCause &&
			report.Effect == paradox.GeneratedEffect &&
			report.Factor == paradox.GeneratedFactor {
			found = true
			assert.True(t, report.Paradox)
		}
	}
	assert.True(t, found, "sweep should rediscover the planted triple")
}

func TestSweepSkipsWideCategoricalFactors(t *testing.T) {
	rows := 60
	ids := make([]string, rows)
	xs := make([]float64, rows)
	ys := make([]float64, rows)
	for i := 0; i < rows; i++ {
		ids[i] = string(rune('a'+i%26)) + string(rune('a'+i/26))
		xs[i] = float64(i)
		ys[i] = float64(i) * 2
	}
	ds := models.Dataset{Columns: []models.Column{
		{Name: "row_id", Kind: models.KindCategorical, Labels: ids},
		{Name: "x", Kind: models.KindNumeric, Numbers: xs},
		{Name: "y", Kind: models.KindNumeric, Numbers: ys},
	}}

	result := sweepParadoxes(ds, quietOptions())
	// row_id has too many labels to act as a factor, and x/y cannot be
	// their own factor, so nothing is scannable except clustering x or y.
	for _, report := range result.Findings {
		assert.NotEqual(t, "row_id", report.Factor)
	}
}

func TestSweepNoFindingsOnMonotoneData(t *testing.T) {
	rows := 40
	xs := make([]float64, rows)
	ys := make([]float64, rows)
	groups := make([]string, rows)
	for i := 0; i < rows; i++ {
		xs[i] = float64(i)
		ys[i] = 3*float64(i) + 1
		groups[i] = []string{"a", "b"}[i%2]
	}
	ds := models.Dataset{Columns: []models.Column{
		{Name: "x", Kind: models.KindNumeric, Numbers: xs},
		{Name: "y", Kind: models.KindNumeric, Numbers: ys},
		{Name: "grp", Kind: models.KindCategorical, Labels: groups},
	}}

	result := sweepParadoxes(ds, quietOptions())
	assert.Greater(t, result.Scanned, 0)
	assert.Empty(t, result.Findings)
}
