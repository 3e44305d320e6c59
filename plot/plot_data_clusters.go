package plot

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
)

// dataClustersForGraph is a factor-vs-row scatter colored by cluster
// assignment, used to show how a continuous factor was discretized.
type dataClustersForGraph struct {
	values      []float64
	assignments []int
	k           int
	nameXAxis   string
	nameGraph   string
}

func NewDataClustersForGraph(values []float64, assignments []int, k int, nameXAxis, nameGraph string) dataClustersForGraph {
	return dataClustersForGraph{
		values:      values,
		assignments: assignments,
		k:           k,
		nameXAxis:   nameXAxis,
		nameGraph:   nameGraph,
	}
}

func (d dataClustersForGraph) GetNameGraph() string {
	return d.nameGraph
}
func (d dataClustersForGraph) getNameXAxis() string {
	return d.nameXAxis
}
func (d dataClustersForGraph) getNameYAxis() string {
	return "row"
}

// generateSeries builds one point series per cluster id so every
// cluster keeps a stable color and a legend entry.
func (d dataClustersForGraph) generateSeries() []chart.Series {
	series := make([]chart.Series, 0, d.k)
	for id := 1; id <= d.k; id++ {
		xs := []float64{}
		ys := []float64{}
		for row, assigned := range d.assignments {
			if assigned != id {
				continue
			}
			xs = append(xs, d.values[row])
			ys = append(ys, float64(row))
		}
		if len(xs) == 0 {
			continue
		}
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("cluster_%d", id),
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    5,
				DotColor:    ClusterColor(id),
			},
		})
	}
	return series
}
