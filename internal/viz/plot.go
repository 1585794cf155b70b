package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/stepbench/internal/analysis"
	"github.com/san-kum/stepbench/internal/experiment"
)

// errorFloor keeps exact zeros finite under log10.
const errorFloor = 1e-16

// logErrors maps an error series to log10, leaving non-finite values NaN.
func logErrors(errs []float64) []float64 {
	out := make([]float64, len(errs))
	for i, e := range errs {
		if !finite(e) {
			out[i] = math.NaN()
			continue
		}
		out[i] = math.Log10(math.Max(e, errorFloor))
	}
	return out
}

// plottable replaces infinities with NaN, which asciigraph leaves blank.
func plottable(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		if math.IsInf(v, 0) {
			v = math.NaN()
		}
		out[i] = v
	}
	return out
}

func hasFinite(xs []float64) bool {
	for _, v := range xs {
		if finite(v) {
			return true
		}
	}
	return false
}

// PlotErrors draws one scheme's error against time.
func PlotErrors(rep *experiment.Report, scheme string, logScale bool, width, height int) (string, error) {
	errs, ok := rep.Errors[scheme]
	if !ok {
		return "", fmt.Errorf("no scheme %q in report (have %v)", scheme, rep.Schemes())
	}
	data, caption := plottable(errs), fmt.Sprintf("%s |x - exact| vs step", scheme)
	if logScale {
		data, caption = logErrors(errs), fmt.Sprintf("%s log10|x - exact| vs step", scheme)
	}
	if !hasFinite(data) {
		return "", fmt.Errorf("%s: error series has no finite values", scheme)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	), nil
}

// PlotPositions overlays a scheme's position on the closed-form solution.
func PlotPositions(rep *experiment.Report, scheme string, width, height int) (string, error) {
	traj, ok := rep.Result.Trajectory(scheme)
	if !ok {
		return "", fmt.Errorf("no scheme %q in report (have %v)", scheme, rep.Schemes())
	}
	exact := rep.Reference.Series(rep.Result.Grid)
	return asciigraph.PlotMany([][]float64{exact, plottable(traj.Positions())},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(asciigraph.Default, asciigraph.Red),
		asciigraph.Caption(fmt.Sprintf("%s position (red) vs exact", scheme)),
	), nil
}

// PhasePortrait draws the (x, v) curve of one scheme on a Braille canvas
// of w by h cells.
func PhasePortrait(rep *experiment.Report, scheme string, w, h int) (string, error) {
	traj, ok := rep.Result.Trajectory(scheme)
	if !ok {
		return "", fmt.Errorf("no scheme %q in report (have %v)", scheme, rep.Schemes())
	}
	p := analysis.GeneratePhasePortrait(traj)
	xs := make([]float64, len(p.Points))
	vs := make([]float64, len(p.Points))
	for i, pt := range p.Points {
		xs[i], vs[i] = pt.X, pt.Y
	}
	c := NewCanvas(w, h)
	c.Curve(xs, vs)
	return c.String(), nil
}
