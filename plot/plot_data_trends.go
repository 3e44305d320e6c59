package plot

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// TrendSeries is one subgroup's points and fitted line. Rows index into
// the full x/y vectors.
type TrendSeries struct {
	Label     string
	Rows      []int
	Slope     float64
	Intercept float64
}

// dataTrendsForGraph is a cause-vs-effect scatter, colored per
// subgroup, with the overall fitted line drawn across the whole range
// and one fitted line per subgroup.
type dataTrendsForGraph struct {
	xs, ys           []float64
	subgroups        []TrendSeries
	overallSlope     float64
	overallIntercept float64
	nameXAxis        string
	nameYAxis        string
	nameGraph        string
}

func NewDataTrendsForGraph(xs, ys []float64, subgroups []TrendSeries, overallSlope, overallIntercept float64, nameXAxis, nameYAxis, nameGraph string) dataTrendsForGraph {
	return dataTrendsForGraph{
		xs:               xs,
		ys:               ys,
		subgroups:        subgroups,
		overallSlope:     overallSlope,
		overallIntercept: overallIntercept,
		nameXAxis:        nameXAxis,
		nameYAxis:        nameYAxis,
		nameGraph:        nameGraph,
	}
}

func (d dataTrendsForGraph) GetNameGraph() string {
	return d.nameGraph
}
func (d dataTrendsForGraph) getNameXAxis() string {
	return d.nameXAxis
}
func (d dataTrendsForGraph) getNameYAxis() string {
	return d.nameYAxis
}

func (d dataTrendsForGraph) xRange(rows []int) (min, max float64) {
	first := true
	for _, row := range rows {
		v := d.xs[row]
		if first || v < min {
			min = v
		}
		if first || v > max {
			max = v
		}
		first = false
	}
	return min, max
}

func (d dataTrendsForGraph) generateSeries() []chart.Series {
	series := []chart.Series{}

	for i, sub := range d.subgroups {
		color := ClusterColor(i + 1)
		xs := make([]float64, 0, len(sub.Rows))
		ys := make([]float64, 0, len(sub.Rows))
		for _, row := range sub.Rows {
			xs = append(xs, d.xs[row])
			ys = append(ys, d.ys[row])
		}
		series = append(series, chart.ContinuousSeries{
			Name:    sub.Label,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    5,
				DotColor:    color,
			},
		})

		// Subgroup fitted line across the subgroup's own x range.
		minX, maxX := d.xRange(sub.Rows)
		series = append(series, chart.ContinuousSeries{
			XValues: []float64{minX, maxX},
			YValues: []float64{sub.Intercept + sub.Slope*minX, sub.Intercept + sub.Slope*maxX},
			Style: chart.Style{
				StrokeWidth: 2,
				StrokeColor: color,
			},
		})
	}

	// Overall fitted line across the full range, dashed black.
	if len(d.xs) > 0 {
		all := make([]int, len(d.xs))
		for i := range all {
			all[i] = i
		}
		minX, maxX := d.xRange(all)
		series = append(series, chart.ContinuousSeries{
			Name:    "overall",
			XValues: []float64{minX, maxX},
			YValues: []float64{d.overallIntercept + d.overallSlope*minX, d.overallIntercept + d.overallSlope*maxX},
			Style: chart.Style{
				StrokeWidth:     3,
				StrokeColor:     drawing.ColorBlack,
				StrokeDashArray: []float64{5.0, 5.0},
			},
		})
	}
	return series
}
