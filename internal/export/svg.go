package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/stepbench/internal/experiment"
)

// errorFloor replaces exact zeros before taking log10.
const errorFloor = 1e-16

var seriesColors = []string{"#ff4444", "#00ff88", "#00ccff", "#ffcc00", "#ff00ff", "#ffffff"}

// ErrorsToSVG plots every scheme's error series against time. Non-finite
// samples break the line instead of being drawn.
func ErrorsToSVG(rep *experiment.Report, width, height int, logScale bool) string {
	grid := rep.Result.Grid
	schemes := rep.Schemes()

	transform := func(v float64) float64 {
		if logScale {
			return math.Log10(math.Max(v, errorFloor))
		}
		return v
	}

	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, name := range schemes {
		for _, v := range rep.Errors[name] {
			y := transform(v)
			if math.IsNaN(y) || math.IsInf(y, 0) {
				continue
			}
			minY = math.Min(minY, y)
			maxY = math.Max(maxY, y)
		}
	}
	if math.IsInf(minY, 1) {
		minY, maxY = 0, 1
	}

	// Add padding
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := grid.Last()
	if rangeX == 0 {
		rangeX = 1
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for k, name := range schemes {
		color := seriesColors[k%len(seriesColors)]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="`, color))

		pen := false
		for i, v := range rep.Errors[name] {
			y := transform(v)
			if math.IsNaN(y) || math.IsInf(y, 0) {
				pen = false
				continue
			}
			px := grid.At(i) / rangeX * float64(width)
			py := float64(height) - (y-minY)/rangeY*float64(height)
			if pen {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px, py))
			} else {
				sb.WriteString(fmt.Sprintf(" M%.1f,%.1f", px, py))
				pen = true
			}
		}
		sb.WriteString("\"/>\n")
		sb.WriteString(fmt.Sprintf(`<text x="10" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, 20+16*k, color, name))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
