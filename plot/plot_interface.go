package plot

import "github.com/wcharczuk/go-chart/v2"

type dataForGraph interface {
	GetNameGraph() string
	getNameXAxis() string
	getNameYAxis() string
	generateSeries() []chart.Series
}
