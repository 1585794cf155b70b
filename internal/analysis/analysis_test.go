package analysis

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/stepbench/internal/dynamo"
)

type cubic struct{}

func (cubic) Force(x float64) float64 { return -x * x * x }

func oscillator(t *testing.T, k, m float64) *dynamo.Oscillator {
	t.Helper()
	osc, err := dynamo.NewOscillator(dynamo.Hooke{K: k}, m)
	if err != nil {
		t.Fatal(err)
	}
	return osc
}

// exactTrajectory samples the closed form itself, so its error is zero.
func exactTrajectory(ref Reference, grid dynamo.Grid) *dynamo.Trajectory {
	tr := dynamo.NewTrajectory("exact", grid.N)
	for i := 0; i < grid.N; i++ {
		t := grid.At(i)
		tr.Append(dynamo.State{Position: ref.Exact(t), Velocity: ref.ExactVelocity(t)})
	}
	return tr
}

func TestReference(t *testing.T) {
	ref, err := NewReference(oscillator(t, 1, 1), 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, tt := range []float64{0, 0.5, 1, 3.7, 10} {
		if got := ref.Exact(tt); math.Abs(got-math.Cos(tt)) > 1e-15 {
			t.Errorf("Exact(%g) = %g, want cos = %g", tt, got, math.Cos(tt))
		}
		if got := ref.ExactVelocity(tt); math.Abs(got+math.Sin(tt)) > 1e-15 {
			t.Errorf("ExactVelocity(%g) = %g, want %g", tt, got, -math.Sin(tt))
		}
	}
	if math.Abs(ref.Period()-2*math.Pi) > 1e-15 {
		t.Errorf("Period() = %g", ref.Period())
	}
}

func TestReference_Parameters(t *testing.T) {
	// k=4, m=1: w=2; x0=0, v0=2 gives x(t) = sin(2t)
	ref, err := NewReference(oscillator(t, 4, 1), 0, 2)
	if err != nil {
		t.Fatal(err)
	}
	if ref.Omega != 2 {
		t.Fatalf("Omega = %g, want 2", ref.Omega)
	}
	if got := ref.Exact(0.3); math.Abs(got-math.Sin(0.6)) > 1e-15 {
		t.Errorf("Exact(0.3) = %g, want %g", got, math.Sin(0.6))
	}

	other, _ := NewReference(oscillator(t, 4, 1), 1, 0)
	if other.Exact(0.3) == ref.Exact(0.3) {
		t.Error("references with different initial conditions should differ")
	}
}

func TestReference_NonLinear(t *testing.T) {
	osc, err := dynamo.NewOscillator(cubic{}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewReference(osc, 1, 0); !errors.Is(err, dynamo.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestErrorSeries(t *testing.T) {
	osc := oscillator(t, 1, 1)
	ref, _ := NewReference(osc, 1, 0)
	grid, _ := dynamo.NewGrid(0.01, 10)

	tr := exactTrajectory(ref, grid)
	errs, err := ErrorSeries(tr, grid, ref)
	if err != nil {
		t.Fatal(err)
	}
	if len(errs) != grid.N {
		t.Fatalf("len = %d, want %d", len(errs), grid.N)
	}
	for i, e := range errs {
		if e != 0 {
			t.Fatalf("errs[%d] = %g, want 0", i, e)
		}
	}

	tr.States[5].Position += 0.25
	tr.States[7].Position -= 0.5
	errs, _ = ErrorSeries(tr, grid, ref)
	if math.Abs(errs[5]-0.25) > 1e-15 || math.Abs(errs[7]-0.5) > 1e-15 {
		t.Errorf("errors should be absolute deviations, got %g and %g", errs[5], errs[7])
	}

	tr.States[9].Position = math.NaN()
	errs, _ = ErrorSeries(tr, grid, ref)
	if !math.IsNaN(errs[9]) {
		t.Errorf("NaN position should give NaN error, got %g", errs[9])
	}
}

func TestErrorSeries_Mismatch(t *testing.T) {
	osc := oscillator(t, 1, 1)
	ref, _ := NewReference(osc, 1, 0)
	grid, _ := dynamo.NewGrid(0.01, 1)

	tr := dynamo.NewTrajectory("short", 10)
	tr.Append(dynamo.State{Position: 1})
	if _, err := ErrorSeries(tr, grid, ref); !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestEnergySeries(t *testing.T) {
	osc := oscillator(t, 1, 1)
	ref, _ := NewReference(osc, 1, 0)
	grid, _ := dynamo.NewGrid(0.1, 10)

	for i, e := range EnergySeries(osc, exactTrajectory(ref, grid)) {
		if math.Abs(e-0.5) > 1e-14 {
			t.Fatalf("energy[%d] = %g, want 0.5", i, e)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{0, 3, 4})
	if s.Max != 4 || s.Final != 4 {
		t.Errorf("max/final = %g/%g", s.Max, s.Final)
	}
	if math.Abs(s.Mean-7.0/3) > 1e-15 {
		t.Errorf("mean = %g", s.Mean)
	}
	if math.Abs(s.RMS-5/math.Sqrt(3)) > 1e-15 {
		t.Errorf("rms = %g", s.RMS)
	}

	if !math.IsNaN(Summarize([]float64{1, math.NaN(), 2}).Max) {
		t.Error("NaN in series should make Max NaN")
	}
	if (Summarize(nil) != Summary{}) {
		t.Error("empty series should give zero summary")
	}
}

func TestObservedOrder(t *testing.T) {
	tests := []struct {
		coarse, fine, ratio float64
		want                float64
	}{
		{1e-2, 1e-3, 10, 1},
		{1e-2, 1e-4, 10, 2},
		{4, 1, 2, 2},
	}
	for _, tt := range tests {
		if got := ObservedOrder(tt.coarse, tt.fine, tt.ratio); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("ObservedOrder(%g, %g, %g) = %g, want %g", tt.coarse, tt.fine, tt.ratio, got, tt.want)
		}
	}

	for _, bad := range [][3]float64{{0, 1, 2}, {1, 0, 2}, {1, 1, 1}, {-1, 1, 2}} {
		if !math.IsNaN(ObservedOrder(bad[0], bad[1], bad[2])) {
			t.Errorf("ObservedOrder(%v) should be NaN", bad)
		}
	}
}

func TestDominantFrequency(t *testing.T) {
	osc := oscillator(t, 1, 1)
	ref, _ := NewReference(osc, 1, 0)
	grid, _ := dynamo.NewGrid(0.01, 100)

	got := DominantFrequency(ref.Series(grid), grid.Dt)
	if math.Abs(got-1/(2*math.Pi)) > 0.01 {
		t.Errorf("DominantFrequency = %g, want %g", got, 1/(2*math.Pi))
	}

	if !math.IsNaN(DominantFrequency([]float64{1, 2}, 0.1)) {
		t.Error("too short series should give NaN")
	}
	if !math.IsNaN(DominantFrequency(make([]float64, 64), 0.1)) {
		t.Error("flat series has no dominant frequency")
	}
}

func TestCrossingsAndPeriod(t *testing.T) {
	osc := oscillator(t, 1, 1)
	ref, _ := NewReference(osc, 1, 0)
	grid, _ := dynamo.NewGrid(0.01, 28)

	crossings := Crossings(exactTrajectory(ref, grid), grid)
	// cos(t) crosses upward at 3pi/2 + 2k*pi
	if len(crossings) != 4 {
		t.Fatalf("got %d crossings, want 4: %v", len(crossings), crossings)
	}
	if math.Abs(crossings[0]-1.5*math.Pi) > 1e-4 {
		t.Errorf("first crossing at %g, want %g", crossings[0], 1.5*math.Pi)
	}
	if p := MeasuredPeriod(crossings); math.Abs(p-2*math.Pi) > 1e-4 {
		t.Errorf("period = %g, want %g", p, 2*math.Pi)
	}
	if !math.IsNaN(MeasuredPeriod(crossings[:1])) {
		t.Error("one crossing has no period")
	}
}

func TestPhasePortrait(t *testing.T) {
	osc := oscillator(t, 1, 1)
	ref, _ := NewReference(osc, 1, 0)
	grid, _ := dynamo.NewGrid(0.05, 7)

	tr := exactTrajectory(ref, grid)
	tr.States[3].Velocity = math.Inf(1)

	p := GeneratePhasePortrait(tr)
	if len(p.Points) != grid.N-1 {
		t.Errorf("got %d points, want %d (non-finite skipped)", len(p.Points), grid.N-1)
	}

	art := PhasePortraitToASCII(p, 40, 20)
	lines := strings.Split(strings.TrimRight(art, "\n"), "\n")
	if len(lines) != 20 {
		t.Fatalf("got %d lines, want 20", len(lines))
	}
	if !strings.Contains(art, "•") || !strings.Contains(art, "┼") {
		t.Error("expected points and axes in portrait")
	}
	if PhasePortraitToASCII(&PhasePortrait2D{}, 40, 20) != "" {
		t.Error("empty portrait should render empty")
	}
}

func TestPairs(t *testing.T) {
	grid, _ := dynamo.NewGrid(0.5, 2)
	ps := Pairs(grid, []float64{1, 2, 3, 4, 5})
	if len(ps) != grid.N {
		t.Fatalf("len = %d, want %d", len(ps), grid.N)
	}
	if ps[3].T != 1.5 || ps[3].Value != 4 {
		t.Errorf("ps[3] = %+v", ps[3])
	}
}
