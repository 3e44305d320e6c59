package paradox

import (
	"fmt"
	"io"
	"os"

	"github.com/pivolan/paradox_detector/domain/models"
)

// Options carries the per-call analysis parameters. All fields have
// usable defaults via DefaultOptions; no configuration files or env
// vars are consulted here.
type Options struct {
	// ContinuousThreshold is the distinct-value count at which a numeric
	// factor is treated as continuous and discretized by clustering.
	ContinuousThreshold int
	// CMin/CMax bound the cluster counts tried by the elbow search.
	CMin int
	CMax int
	// Seed drives k-means centroid initialization; the same seed always
	// reproduces the same verdict.
	Seed int64
	// Verbose writes a human-readable trace of the analysis to Out.
	Verbose bool
	Out     io.Writer
}

func DefaultOptions() Options {
	return Options{
		ContinuousThreshold: 5,
		CMin:                1,
		CMax:                5,
		Seed:                1,
		Verbose:             true,
		Out:                 os.Stdout,
	}
}

// SubgroupTrend is the fitted trend of one retained subgroup.
type SubgroupTrend struct {
	Label     string
	Rows      []int
	Slope     float64
	Intercept float64
	Reversed  bool
}

// Report is the full outcome of one detection run.
type Report struct {
	Cause  string
	Effect string
	Factor string

	Paradox          bool
	OverallSlope     float64
	OverallIntercept float64

	Subgroups []SubgroupTrend
	// Skipped lists subgroups dropped because they could not be fit
	// (fewer than 2 rows or a degenerate trend).
	Skipped []string
	// Clusters is set when the factor was continuous and had to be
	// discretized; consumers use it for cluster scatter plots.
	Clusters *ClusterResult
}

// Detect checks whether the cause/effect trend reverses sign inside the
// factor-defined subgroups of the dataset. A fatal error at the
// whole-dataset level (missing column, coercion failure, overall fit
// failure, invalid clustering) aborts without a verdict; subgroups that
// cannot be fit are dropped and the verdict is computed from the rest.
func Detect(ds models.Dataset, cause, effect, factor string, opts Options) (*Report, error) {
	if cause == effect {
		return nil, fmt.Errorf("cause and effect must be different columns, both are %q", cause)
	}
	causeCol, ok := ds.Column(cause)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, cause)
	}
	effectCol, ok := ds.Column(effect)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, effect)
	}
	if _, ok := ds.Column(factor); !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, factor)
	}

	xs, err := CoerceNumeric(causeCol)
	if err != nil {
		return nil, err
	}
	ys, err := CoerceNumeric(effectCol)
	if err != nil {
		return nil, err
	}

	overallIntercept, overallSlope, err := fitLine(xs, ys)
	if err != nil {
		return nil, fmt.Errorf("overall fit of %s on %s: %w", effect, cause, err)
	}

	report := &Report{
		Cause:            cause,
		Effect:           effect,
		Factor:           factor,
		OverallSlope:     overallSlope,
		OverallIntercept: overallIntercept,
	}
	trace(opts, "overall trend of %s over %s: %s (slope=%.6f)", effect, cause, direction(overallSlope), overallSlope)

	groups, clusters, err := GroupByFactor(ds, factor, opts)
	if err != nil {
		return nil, err
	}
	report.Clusters = clusters
	if clusters != nil {
		trace(opts, "factor %s is continuous, discretized into %d clusters", factor, clusters.K)
	}

	overallSign := signOf(overallSlope)
	for _, group := range groups {
		if len(group.Rows) < 2 {
			report.Skipped = append(report.Skipped, group.Label)
			trace(opts, "subgroup %s=%s: skipped (%d rows)", factor, group.Label, len(group.Rows))
			continue
		}
		subX := pick(xs, group.Rows)
		subY := pick(ys, group.Rows)
		intercept, slope, err := fitLine(subX, subY)
		if err != nil {
			// A subgroup that cannot be fit contributes no information.
			report.Skipped = append(report.Skipped, group.Label)
			trace(opts, "subgroup %s=%s: skipped (%v)", factor, group.Label, err)
			continue
		}
		reversed := overallSign != 0 && signOf(slope) == -overallSign
		report.Subgroups = append(report.Subgroups, SubgroupTrend{
			Label:     group.Label,
			Rows:      group.Rows,
			Slope:     slope,
			Intercept: intercept,
			Reversed:  reversed,
		})
		if reversed {
			report.Paradox = true
			trace(opts, "subgroup %s=%s: %s (slope=%.6f) REVERSED", factor, group.Label, direction(slope), slope)
		} else {
			trace(opts, "subgroup %s=%s: %s (slope=%.6f)", factor, group.Label, direction(slope), slope)
		}
	}

	if report.Paradox {
		trace(opts, "Simpson's paradox detected: %s vs %s reverses when split by %s", cause, effect, factor)
	} else {
		trace(opts, "no paradox: subgroup trends agree with the overall trend")
	}
	return report, nil
}

func pick(values []float64, rows []int) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = values[row]
	}
	return out
}

func direction(slope float64) string {
	switch signOf(slope) {
	case 1:
		return "increasing"
	case -1:
		return "decreasing"
	}
	return "flat"
}

func trace(opts Options, format string, args ...interface{}) {
	if !opts.Verbose || opts.Out == nil {
		return
	}
	fmt.Fprintf(opts.Out, format+"\n", args...)
}
