package paradox

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pivolan/paradox_detector/domain/models"
)

func TestCoerceNumericCategorical(t *testing.T) {
	col := models.Column{Name: "treatment", Kind: models.KindCategorical, Labels: []string{"b", "a", "c", "a"}}

	got, err := CoerceNumeric(col)
	assert.NoError(t, err)
	assert.Equal(t, []float64{2, 1, 3, 1}, got)

	// Encoding must be stable across runs.
	again, err := CoerceNumeric(col)
	assert.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestCoerceNumericCopiesNumbers(t *testing.T) {
	numbers := []float64{1, 2, 3}
	col := models.Column{Name: "dose", Kind: models.KindNumeric, Numbers: numbers}

	got, err := CoerceNumeric(col)
	assert.NoError(t, err)
	assert.Equal(t, numbers, got)

	got[0] = 99
	assert.Equal(t, 1.0, numbers[0], "coerced slice must not alias the column")
}

func TestCoerceNumericRejectsNonFinite(t *testing.T) {
	col := models.Column{Name: "dose", Kind: models.KindNumeric, Numbers: []float64{1, math.NaN()}}
	_, err := CoerceNumeric(col)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	col = models.Column{Name: "dose", Kind: models.KindNumeric, Numbers: []float64{1, math.Inf(1)}}
	_, err = CoerceNumeric(col)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestCoerceNumericRejectsMixedBacking(t *testing.T) {
	col := models.Column{Name: "x", Kind: models.KindNumeric, Numbers: []float64{1}, Labels: []string{"a"}}
	_, err := CoerceNumeric(col)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}
