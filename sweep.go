package main

import (
	"log"

	"github.com/pivolan/paradox_detector/domain/models"
	"github.com/pivolan/paradox_detector/paradox"
)

// maxFactorCategories caps how many distinct labels a categorical column
// may have before it is skipped as a grouping factor. Columns with more
// labels are closer to row ids than to real groups.
const maxFactorCategories = 20

// SweepResult is the outcome of scanning a whole table for trend reversals.
type SweepResult struct {
	Scanned  int
	Findings []paradox.Report
}

// sweepParadoxes tries every ordered (cause, effect) pair of numeric
// columns against every usable grouping factor and keeps the triples
// where the subgroup trends contradict the overall one.
func sweepParadoxes(ds models.Dataset, opts paradox.Options) SweepResult {
	numeric := []string{}
	for _, col := range ds.Columns {
		if col.Kind == models.KindNumeric {
			numeric = append(numeric, col.Name)
		}
	}
	factors := []string{}
	for _, col := range ds.Columns {
		if col.Kind == models.KindCategorical && col.DistinctCount() > maxFactorCategories {
			continue
		}
		if col.DistinctCount() < 2 {
			continue
		}
		factors = append(factors, col.Name)
	}

	result := SweepResult{}
	for _, cause := range numeric {
		for _, effect := range numeric {
			if cause == effect {
				continue
			}
			for _, factor := range factors {
				if factor == cause || factor == effect {
					continue
				}
				result.Scanned++
				report, err := paradox.Detect(ds, cause, effect, factor, opts)
				if err != nil {
					log.Printf("sweep %s/%s by %s: %v", cause, effect, factor, err)
					continue
				}
				if report.Paradox {
					result.Findings = append(result.Findings, *report)
				}
			}
		}
	}
	return result
}
