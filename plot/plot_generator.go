package plot

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// DrawScatter renders any scatter data carrier to a PNG.
func DrawScatter(data dataForGraph) ([]byte, error) {
	series := data.generateSeries()
	if len(series) == 0 {
		return nil, fmt.Errorf("no series to draw for %s", data.GetNameGraph())
	}

	graph := chart.Chart{
		Title: data.GetNameGraph(),
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 40,
			},
			FillColor: drawing.ColorWhite,
		},
		Width:  2048,
		Height: 1024,
		XAxis: chart.XAxis{
			Name: data.getNameXAxis(),
			ValueFormatter: func(v interface{}) string {
				if vf, isFloat := v.(float64); isFloat {
					return fmt.Sprintf("%.2f", vf)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: data.getNameYAxis(),
			ValueFormatter: func(v interface{}) string {
				if vf, isFloat := v.(float64); isFloat {
					return fmt.Sprintf("%.2f", vf)
				}
				return ""
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	graph.Background.StrokeWidth = 1
	graph.Background.StrokeColor = drawing.ColorFromHex("efefef")

	buffer := bytes.NewBuffer([]byte{})
	err := graph.Render(chart.PNG, buffer)
	if err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}

	return buffer.Bytes(), nil
}

// DrawClusterScatter renders the discretization of a continuous factor:
// factor value on x, row index on y, one color per cluster id.
func DrawClusterScatter(values []float64, assignments []int, k int, factorName string) ([]byte, error) {
	name := fmt.Sprintf("Clusters of %s (k=%d)", factorName, k)
	return DrawScatter(NewDataClustersForGraph(values, assignments, k, factorName, name))
}

// DrawTrendScatter renders cause vs effect colored per subgroup with
// the overall and per-subgroup fitted lines.
func DrawTrendScatter(xs, ys []float64, subgroups []TrendSeries, overallSlope, overallIntercept float64, causeName, effectName string) ([]byte, error) {
	name := fmt.Sprintf("%s vs %s by subgroup", effectName, causeName)
	data := NewDataTrendsForGraph(xs, ys, subgroups, overallSlope, overallIntercept, causeName, effectName, name)
	return DrawScatter(data)
}
