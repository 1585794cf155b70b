package analysis

import (
	"math"

	"github.com/san-kum/stepbench/internal/dynamo"
)

type linearSystem interface {
	dynamo.System
	Linear() (dynamo.Linear, bool)
}

// Reference is the closed-form trajectory of a linear oscillator,
// x(t) = x0*cos(wt) + (v0/w)*sin(wt). It carries its own parameters, so a
// Reference built for one initial condition is never reused for another.
type Reference struct {
	X0, V0 float64
	Omega  float64
}

func NewReference(sys dynamo.System, x0, v0 float64) (Reference, error) {
	ls, ok := sys.(linearSystem)
	if !ok {
		return Reference{}, &dynamo.ParameterError{Name: "law", Value: math.NaN(), Reason: "no closed form for this system"}
	}
	law, ok := ls.Linear()
	if !ok {
		return Reference{}, &dynamo.ParameterError{Name: "law", Value: math.NaN(), Reason: "no closed form for a non-linear law"}
	}
	return Reference{X0: x0, V0: v0, Omega: math.Sqrt(law.Stiffness() / sys.Mass())}, nil
}

func (r Reference) Exact(t float64) float64 {
	sin, cos := math.Sincos(r.Omega * t)
	return r.X0*cos + r.V0/r.Omega*sin
}

func (r Reference) ExactVelocity(t float64) float64 {
	sin, cos := math.Sincos(r.Omega * t)
	return -r.X0*r.Omega*sin + r.V0*cos
}

// Period of the oscillation.
func (r Reference) Period() float64 { return 2 * math.Pi / r.Omega }

// Frequency in cycles per unit time.
func (r Reference) Frequency() float64 { return r.Omega / (2 * math.Pi) }

// Series evaluates the exact position at every grid point.
func (r Reference) Series(grid dynamo.Grid) []float64 {
	xs := make([]float64, grid.N)
	for i := range xs {
		xs[i] = r.Exact(grid.At(i))
	}
	return xs
}
