package paradox

import (
	"fmt"
	"math/rand"

	"github.com/pivolan/paradox_detector/domain/models"
)

// Column names used by generated datasets and the /generate command.
const (
	GeneratedCause  = "dose"
	GeneratedEffect = "recovery"
	GeneratedFactor = "severity"
)

// GenerateParadoxDataset manufactures a dataset that exhibits Simpson's
// paradox for the (GeneratedCause, GeneratedEffect, GeneratedFactor)
// triple: each severity subgroup trends upward while the aggregate
// trends downward. The candidate is verified through Detect and
// regenerated until it passes, with a bounded attempt budget instead of
// unbounded recursion.
func GenerateParadoxDataset(rows int, rng *rand.Rand, maxAttempts int) (models.Dataset, error) {
	if rows < 4 {
		return models.Dataset{}, fmt.Errorf("%w: need at least 4 rows, got %d", ErrGenerationFailed, rows)
	}
	opts := DefaultOptions()
	opts.Verbose = false
	for attempt := 0; attempt < maxAttempts; attempt++ {
		ds := generateCandidate(rows, rng)
		report, err := Detect(ds, GeneratedCause, GeneratedEffect, GeneratedFactor, opts)
		if err != nil {
			continue
		}
		if report.Paradox {
			return ds, nil
		}
	}
	return models.Dataset{}, fmt.Errorf("%w after %d attempts", ErrGenerationFailed, maxAttempts)
}

// generateCandidate builds two subgroups with a positive within-group
// slope, then shifts the groups so the higher-dose group sits well
// below the other; the aggregate slope comes out negative. Noise keeps
// each candidate distinct, which is why verification can occasionally
// reject one.
func generateCandidate(rows int, rng *rand.Rand) models.Dataset {
	half := rows / 2
	dose := make([]float64, 0, rows)
	recovery := make([]float64, 0, rows)
	severity := make([]string, 0, rows)

	for i := 0; i < half; i++ {
		x := rng.Float64() * 2
		y := 8 + x + rng.NormFloat64()*0.3
		dose = append(dose, x)
		recovery = append(recovery, y)
		severity = append(severity, "mild")
	}
	for i := half; i < rows; i++ {
		x := 4 + rng.Float64()*2
		y := x - 4 + rng.NormFloat64()*0.3
		dose = append(dose, x)
		recovery = append(recovery, y)
		severity = append(severity, "severe")
	}

	return models.Dataset{Columns: []models.Column{
		{Name: GeneratedCause, Kind: models.KindNumeric, Numbers: dose},
		{Name: GeneratedEffect, Kind: models.KindNumeric, Numbers: recovery},
		{Name: GeneratedFactor, Kind: models.KindCategorical, Labels: severity},
	}}
}
