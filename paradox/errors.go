package paradox

import "errors"

var (
	// ErrColumnNotFound is returned when a cause/effect/factor column
	// name is absent from the dataset. Always fatal.
	ErrColumnNotFound = errors.New("column not found in dataset")

	// ErrInsufficientData is returned by Slope when fewer than 2 points
	// are available. Fatal for the overall fit, recoverable (the
	// subgroup is dropped) during the per-subgroup pass.
	ErrInsufficientData = errors.New("not enough points to fit a trend")

	// ErrDegenerateFit is returned when the regression is undefined,
	// e.g. zero variance on the independent axis. Same fatal/recoverable
	// split as ErrInsufficientData.
	ErrDegenerateFit = errors.New("degenerate trend fit")

	// ErrInvalidClusterCount is returned for k < 1 or k larger than the
	// number of distinct points. Always fatal.
	ErrInvalidClusterCount = errors.New("invalid cluster count")

	// ErrTypeMismatch is returned when a column cannot be coerced to
	// numbers. Always fatal.
	ErrTypeMismatch = errors.New("column values cannot be coerced to numbers")

	// ErrGenerationFailed is returned by GenerateParadoxDataset when no
	// paradox dataset could be produced within the attempt budget.
	ErrGenerationFailed = errors.New("could not generate a paradox dataset")
)
