package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pivolan/paradox_detector/paradox"
)

// GenerateTrendTable renders one detection report as an ascii table:
// the overall trend on top, one row per subgroup below it.
func GenerateTrendTable(report *paradox.Report) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Group", "Rows", "Slope", "Intercept", "Reversed"})
	t.AppendRow(table.Row{"overall", totalRows(report), formatSlope(report.OverallSlope), formatSlope(report.OverallIntercept), ""})
	for _, sg := range report.Subgroups {
		reversed := ""
		if sg.Reversed {
			reversed = "yes"
		}
		t.AppendRow(table.Row{sg.Label, len(sg.Rows), formatSlope(sg.Slope), formatSlope(sg.Intercept), reversed})
	}
	for _, label := range report.Skipped {
		t.AppendRow(table.Row{label, "", "skipped", "", ""})
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// GenerateSweepTable renders the findings of a whole-table sweep.
func GenerateSweepTable(result SweepResult) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Cause", "Effect", "Factor", "Overall", "Subgroups", "Reversed"})
	for _, report := range result.Findings {
		reversedCount := 0
		for _, sg := range report.Subgroups {
			if sg.Reversed {
				reversedCount++
			}
		}
		t.AppendRow(table.Row{
			report.Cause,
			report.Effect,
			report.Factor,
			formatSlope(report.OverallSlope),
			len(report.Subgroups),
			fmt.Sprintf("%d/%d", reversedCount, len(report.Subgroups)),
		})
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// FormatVerdict is the one-line chat answer for a single detection.
func FormatVerdict(report *paradox.Report) string {
	if report.Paradox {
		return fmt.Sprintf("Simpson's paradox: %s vs %s trends %s overall but reverses inside %s groups",
			report.Effect, report.Cause, slopeDirection(report.OverallSlope), report.Factor)
	}
	return fmt.Sprintf("no paradox: %s vs %s keeps its %s trend across %s groups",
		report.Effect, report.Cause, slopeDirection(report.OverallSlope), report.Factor)
}

// FormatSweepSummary wraps the sweep table with a headline for chat output.
func FormatSweepSummary(result SweepResult) string {
	buf := &strings.Builder{}
	if len(result.Findings) == 0 {
		fmt.Fprintf(buf, "checked %d combinations, no trend reversals found\n", result.Scanned)
		return buf.String()
	}
	fmt.Fprintf(buf, "checked %d combinations, %d show a trend reversal:\n", result.Scanned, len(result.Findings))
	buf.WriteString(GenerateSweepTable(result))
	buf.WriteString("\n")
	for _, report := range result.Findings {
		fmt.Fprintf(buf, "/%s\n", paradoxCommand(report.Cause, report.Effect, report.Factor))
	}
	return buf.String()
}

func totalRows(report *paradox.Report) int {
	n := 0
	for _, sg := range report.Subgroups {
		n += len(sg.Rows)
	}
	return n
}

func formatSlope(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

func slopeDirection(v float64) string {
	switch {
	case v > 0:
		return "upward"
	case v < 0:
		return "downward"
	default:
		return "flat"
	}
}
