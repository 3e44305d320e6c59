// trend_summary.go
package main

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/pivolan/paradox_detector/domain/models"
	"github.com/pivolan/paradox_detector/paradox"
)

// SummarizeSubgroups turns a detection report into per-subgroup digests
// over the cause and effect values. Subgroups too small to fit keep their
// slope from the report but are not listed here.
func SummarizeSubgroups(report *paradox.Report, cause, effect []float64) []models.SubgroupSummary {
	summaries := make([]models.SubgroupSummary, 0, len(report.Subgroups))
	for _, sg := range report.Subgroups {
		causeVals := make([]float64, 0, len(sg.Rows))
		effectVals := make([]float64, 0, len(sg.Rows))
		for _, row := range sg.Rows {
			if row < 0 || row >= len(cause) {
				continue
			}
			causeVals = append(causeVals, cause[row])
			effectVals = append(effectVals, effect[row])
		}
		if len(causeVals) == 0 {
			continue
		}

		causeMean, _ := stats.Mean(causeVals)
		causeMedian, _ := stats.Median(causeVals)
		effectMean, _ := stats.Mean(effectVals)
		effectMedian, _ := stats.Median(effectVals)
		q25, _ := stats.Percentile(effectVals, 25)
		q75, _ := stats.Percentile(effectVals, 75)

		summaries = append(summaries, models.SubgroupSummary{
			Label:        sg.Label,
			Count:        len(sg.Rows),
			Slope:        sg.Slope,
			CauseMean:    causeMean,
			CauseMedian:  causeMedian,
			EffectMean:   effectMean,
			EffectMedian: effectMedian,
			EffectQ25:    q25,
			EffectQ75:    q75,
		})
	}
	return summaries
}

// FormatSubgroupSummaries renders the digests for a chat reply.
func FormatSubgroupSummaries(causeName, effectName string, summaries []models.SubgroupSummary) string {
	if len(summaries) == 0 {
		return "no subgroups to summarize"
	}
	buf := &strings.Builder{}
	for _, s := range summaries {
		fmt.Fprintf(buf, "%s (%d rows): slope %.4f\n", s.Label, s.Count, s.Slope)
		fmt.Fprintf(buf, "  %s: mean %.2f median %.2f\n", causeName, s.CauseMean, s.CauseMedian)
		fmt.Fprintf(buf, "  %s: mean %.2f median %.2f, Q1 %.2f Q3 %.2f\n", effectName, s.EffectMean, s.EffectMedian, s.EffectQ25, s.EffectQ75)
	}
	return buf.String()
}

// ExtractNumbers pulls floats out of free-form chat text, accepting
// commas and newlines as separators.
func ExtractNumbers(text string) []float64 {
	text = strings.ReplaceAll(text, ",", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	re := regexp.MustCompile(`-?\d*\.?\d+`)
	matches := re.FindAllString(text, -1)

	numbers := make([]float64, 0, len(matches))
	for _, match := range matches {
		if num, err := strconv.ParseFloat(match, 64); err == nil {
			numbers = append(numbers, num)
		}
	}
	return numbers
}

type NumberStats struct {
	Average  float64
	Median   float64
	Min      float64
	Max      float64
	Count    int
	Q1       float64
	Q3       float64
	IQR      float64
	Outliers []float64
}

// AnalyzeNumbers computes the digest shown when someone just pastes
// numbers into the chat.
func AnalyzeNumbers(numbers []float64) *NumberStats {
	if len(numbers) == 0 {
		return nil
	}

	avg, _ := stats.Mean(numbers)
	median, _ := stats.Median(numbers)
	min, _ := stats.Min(numbers)
	max, _ := stats.Max(numbers)
	q1, _ := stats.Percentile(numbers, 25)
	q3, _ := stats.Percentile(numbers, 75)
	iqr := q3 - q1

	outliers := make([]float64, 0)
	lowerBound := q1 - 1.5*iqr
	upperBound := q3 + 1.5*iqr
	for _, num := range numbers {
		if num < lowerBound || num > upperBound {
			outliers = append(outliers, num)
		}
	}

	return &NumberStats{
		Average:  roundToTwo(avg),
		Median:   roundToTwo(median),
		Min:      roundToTwo(min),
		Max:      roundToTwo(max),
		Count:    len(numbers),
		Q1:       roundToTwo(q1),
		Q3:       roundToTwo(q3),
		IQR:      roundToTwo(iqr),
		Outliers: outliers,
	}
}

// FormatStats formats the digest for a Telegram reply.
func FormatStats(s *NumberStats) string {
	if s == nil {
		return "no numbers found in the message"
	}

	outlierStr := ""
	if len(s.Outliers) > 0 {
		outlierStr = fmt.Sprintf("\nOutliers: %.2f", s.Outliers)
	}

	return fmt.Sprintf(`Number stats:

Count: %d
Mean: %.2f
Median: %.2f
Min: %.2f
Max: %.2f
Q1: %.2f
Q3: %.2f
IQR: %.2f%s`,
		s.Count,
		s.Average,
		s.Median,
		s.Min,
		s.Max,
		s.Q1,
		s.Q3,
		s.IQR,
		outlierStr)
}

func roundToTwo(num float64) float64 {
	return math.Round(num*100) / 100
}
