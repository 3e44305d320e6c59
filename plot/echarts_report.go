package plot

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderTrendReport builds an interactive HTML scatter of cause vs
// effect with one series per subgroup. Sent as a document so users can
// zoom into the subgroups the PNG flattens.
func RenderTrendReport(xs, ys []float64, subgroups []TrendSeries, causeName, effectName string) ([]byte, error) {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s vs %s by subgroup", effectName, causeName),
			Subtitle: "subgroup trends vs the aggregate trend",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: causeName, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: effectName, Type: "value"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	for i, sub := range subgroups {
		points := make([]opts.ScatterData, 0, len(sub.Rows))
		for _, row := range sub.Rows {
			points = append(points, opts.ScatterData{
				Value:      []interface{}{xs[row], ys[row]},
				SymbolSize: 8,
			})
		}
		scatter.AddSeries(sub.Label, points,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: ClusterColorHex(i + 1)}))
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := scatter.Render(buffer); err != nil {
		return nil, fmt.Errorf("error rendering echarts report: %v", err)
	}
	return buffer.Bytes(), nil
}

// RenderClusterReport is the interactive variant of DrawClusterScatter.
func RenderClusterReport(values []float64, assignments []int, k int, factorName string) ([]byte, error) {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Clusters of %s (k=%d)", factorName, k)}),
		charts.WithXAxisOpts(opts.XAxis{Name: factorName, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "row", Type: "value"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	for id := 1; id <= k; id++ {
		points := []opts.ScatterData{}
		for row, assigned := range assignments {
			if assigned != id {
				continue
			}
			points = append(points, opts.ScatterData{
				Value:      []interface{}{values[row], row},
				SymbolSize: 8,
			})
		}
		if len(points) == 0 {
			continue
		}
		scatter.AddSeries(fmt.Sprintf("cluster_%d", id), points,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: ClusterColorHex(id)}))
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := scatter.Render(buffer); err != nil {
		return nil, fmt.Errorf("error rendering cluster report: %v", err)
	}
	return buffer.Bytes(), nil
}
