package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/stepbench/internal/dynamo"
)

// PhasePortrait2D holds the (position, velocity) points of one trajectory.
type PhasePortrait2D struct {
	Scheme string
	Points []struct{ X, Y float64 }
}

// GeneratePhasePortrait skips non-finite states.
func GeneratePhasePortrait(traj *dynamo.Trajectory) *PhasePortrait2D {
	portrait := &PhasePortrait2D{
		Scheme: traj.Scheme,
		Points: make([]struct{ X, Y float64 }, 0, traj.Len()),
	}
	for _, s := range traj.States {
		if !s.IsValid() {
			continue
		}
		portrait.Points = append(portrait.Points, struct{ X, Y float64 }{
			X: s.Position,
			Y: s.Velocity,
		})
	}
	return portrait
}

// PhasePortraitToASCII converts phase portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	// Find bounds
	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y

	for _, p := range portrait.Points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	// Draw axes first so points overwrite them
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			canvas[row][col] = '│'
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == '│' {
				canvas[row][col] = '┼'
			} else {
				canvas[row][col] = '─'
			}
		}
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// Crossings returns the times at which the position crosses zero going
// upward, linearly interpolated between grid points.
func Crossings(traj *dynamo.Trajectory, grid dynamo.Grid) []float64 {
	crossings := make([]float64, 0)
	for i := 1; i < traj.Len() && i < grid.N; i++ {
		prev, curr := traj.States[i-1].Position, traj.States[i].Position
		if !(prev < 0 && curr >= 0) {
			continue
		}
		frac := -prev / (curr - prev)
		if math.IsNaN(frac) || math.IsInf(frac, 0) {
			frac = 0.5
		}
		crossings = append(crossings, grid.At(i-1)+frac*grid.Dt)
	}
	return crossings
}

// MeasuredPeriod is the mean spacing of upward crossings, NaN with fewer
// than two crossings.
func MeasuredPeriod(crossings []float64) float64 {
	if len(crossings) < 2 {
		return math.NaN()
	}
	return (crossings[len(crossings)-1] - crossings[0]) / float64(len(crossings)-1)
}
