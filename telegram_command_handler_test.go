package main

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pivolan/paradox_detector/paradox"
)

func TestParadoxCommand(t *testing.T) {
	assert.Equal(t, "paradox_dose__recovery__severity", paradoxCommand("dose", "recovery", "severity"))
}

func TestDatasetToCSVRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	ds, err := paradox.GenerateParadoxDataset(40, rng, 20)
	assert.NoError(t, err)

	csvData := datasetToCSV(ds)
	path := writeTempCSV(t, csvData)

	loaded, err := LoadCSVDataset(path)
	assert.NoError(t, err)
	assert.Equal(t, ds.Rows(), loaded.Rows())
	assert.ElementsMatch(t, ds.ColumnNames(), loaded.ColumnNames())

	report, err := paradox.Detect(loaded, paradox.GeneratedCause, paradox.GeneratedEffect, paradox.GeneratedFactor, quietOptions())
	assert.NoError(t, err)
	assert.True(t, report.Paradox)
}

func TestFormatColumnCommands(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	ds, err := paradox.GenerateParadoxDataset(40, rng, 20)
	assert.NoError(t, err)

	text := formatColumnCommands(ds)
	assert.Contains(t, text, paradox.GeneratedCause)
	assert.Contains(t, text, paradox.GeneratedEffect)
	assert.Contains(t, text, paradox.GeneratedFactor)
	assert.Contains(t, text, "/generate")
}
