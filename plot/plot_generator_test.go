package plot

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestDrawClusterScatter(t *testing.T) {
	values := []float64{1, 1.2, 1.1, 9, 9.3, 9.1}
	assignments := []int{1, 1, 1, 2, 2, 2}

	b, err := DrawClusterScatter(values, assignments, 2, "age")
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, pngMagic))
}

func TestDrawTrendScatter(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5, 6}
	ys := []float64{5, 4, 3, 30, 29, 28}
	subgroups := []TrendSeries{
		{Label: "mild", Rows: []int{0, 1, 2}, Slope: -1, Intercept: 6},
		{Label: "severe", Rows: []int{3, 4, 5}, Slope: -1, Intercept: 34},
	}

	b, err := DrawTrendScatter(xs, ys, subgroups, 5.6, -4.2, "dose", "recovery")
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, pngMagic))
}

func TestDrawScatterNoSeries(t *testing.T) {
	_, err := DrawClusterScatter(nil, nil, 0, "age")
	assert.Error(t, err)
}

func TestRenderTrendReport(t *testing.T) {
	xs := []float64{1, 2, 3, 4}
	ys := []float64{2, 3, 10, 11}
	subgroups := []TrendSeries{
		{Label: "a", Rows: []int{0, 1}, Slope: 1, Intercept: 1},
		{Label: "b", Rows: []int{2, 3}, Slope: 1, Intercept: 7},
	}

	b, err := RenderTrendReport(xs, ys, subgroups, "dose", "recovery")
	assert.NoError(t, err)
	assert.Contains(t, string(b), "echarts")
}

func TestRenderClusterReport(t *testing.T) {
	b, err := RenderClusterReport([]float64{1, 2, 50, 51}, []int{1, 1, 2, 2}, 2, "age")
	assert.NoError(t, err)
	assert.Contains(t, string(b), "cluster_1")
}

func TestClusterColorWraparound(t *testing.T) {
	assert.Equal(t, ClusterColor(1), ClusterColor(1+len(clusterPalette)))
	assert.Equal(t, ClusterColorHex(2), ClusterColorHex(2+len(clusterPaletteHex)))
	assert.NotEqual(t, ClusterColor(1), ClusterColor(2))

	// Out-of-range ids fall back to the first color instead of panicking.
	assert.Equal(t, ClusterColor(1), ClusterColor(0))
}
