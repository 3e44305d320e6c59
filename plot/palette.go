package plot

import "github.com/wcharczuk/go-chart/v2/drawing"

// Fixed palette for cluster/subgroup coloring. Color assignment is a
// pure function of the 1-based id with wraparound, so the same cluster
// id always gets the same color across charts of one analysis.
var clusterPalette = []drawing.Color{
	drawing.ColorFromHex("4682b4"), // steel blue
	drawing.ColorFromHex("e24a33"), // brick
	drawing.ColorFromHex("348a3c"), // green
	drawing.ColorFromHex("8a2be2"), // violet
	drawing.ColorFromHex("e2a33c"), // amber
	drawing.ColorFromHex("17a2b8"), // teal
	drawing.ColorFromHex("c71585"), // magenta
	drawing.ColorFromHex("6b6b6b"), // gray
}

var clusterPaletteHex = []string{
	"#4682b4",
	"#e24a33",
	"#348a3c",
	"#8a2be2",
	"#e2a33c",
	"#17a2b8",
	"#c71585",
	"#6b6b6b",
}

func ClusterColor(id int) drawing.Color {
	if id < 1 {
		id = 1
	}
	return clusterPalette[(id-1)%len(clusterPalette)]
}

func ClusterColorHex(id int) string {
	if id < 1 {
		id = 1
	}
	return clusterPaletteHex[(id-1)%len(clusterPaletteHex)]
}
