package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pivolan/paradox_detector/domain/models"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCSVDataset(t *testing.T) {
	path := writeTempCSV(t, "dose,recovery,severity\n1,8.5,mild\n2,9.1,mild\n5,1.2,severe\n6,2.3,severe\n")

	ds, err := LoadCSVDataset(path)
	assert.NoError(t, err)
	assert.Equal(t, 4, ds.Rows())
	assert.Equal(t, []string{"dose", "recovery", "severity"}, ds.ColumnNames())

	dose, ok := ds.Column("dose")
	assert.True(t, ok)
	assert.Equal(t, models.KindNumeric, dose.Kind)
	assert.Equal(t, []float64{1, 2, 5, 6}, dose.Numbers)

	severity, ok := ds.Column("severity")
	assert.True(t, ok)
	assert.Equal(t, models.KindCategorical, severity.Kind)
	assert.Equal(t, []string{"mild", "mild", "severe", "severe"}, severity.Labels)
}

func TestLoadCSVDatasetHeaderlessFile(t *testing.T) {
	path := writeTempCSV(t, "1,8.5\n2,9.1\n3,7.7\n")

	ds, err := LoadCSVDataset(path)
	assert.NoError(t, err)
	assert.Equal(t, 3, ds.Rows())
	assert.Equal(t, []string{"column_1", "column_2"}, ds.ColumnNames())
	for _, col := range ds.Columns {
		assert.Equal(t, models.KindNumeric, col.Kind)
	}
}

func TestLoadCSVDatasetMixedColumnStaysCategorical(t *testing.T) {
	path := writeTempCSV(t, "val,tag\n1,x\n2,y\noops,z\n")

	ds, err := LoadCSVDataset(path)
	assert.NoError(t, err)
	val, ok := ds.Column("val")
	assert.True(t, ok)
	assert.Equal(t, models.KindCategorical, val.Kind)
	assert.Equal(t, []string{"1", "2", "oops"}, val.Labels)
}

func TestLoadCSVDatasetErrors(t *testing.T) {
	_, err := LoadCSVDataset(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	path := writeTempCSV(t, "name,age\n")
	_, err = LoadCSVDataset(path)
	assert.Error(t, err)

	path = writeTempCSV(t, "a,b\n1,2\n3\n")
	_, err = LoadCSVDataset(path)
	assert.Error(t, err)
}
