package integrators

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/san-kum/stepbench/internal/dynamo"
)

// Propagator advances a linear oscillator with its exact per-step
// transition matrix, so its error is round-off only. It is the baseline the
// approximate schemes are measured against.
type Propagator struct {
	omega float64
}

// NewPropagator requires a Linear force law.
func NewPropagator(sys dynamo.System) (*Propagator, error) {
	osc, ok := sys.(interface{ Linear() (dynamo.Linear, bool) })
	if !ok {
		return nil, &dynamo.ParameterError{Name: "law", Value: math.NaN(), Reason: "propagator needs a linear force law"}
	}
	l, ok := osc.Linear()
	if !ok {
		return nil, &dynamo.ParameterError{Name: "law", Value: math.NaN(), Reason: "propagator needs a linear force law"}
	}
	return &Propagator{omega: math.Sqrt(l.Stiffness() / sys.Mass())}, nil
}

func (p *Propagator) Name() string { return "propagator" }

func (p *Propagator) Step(sys dynamo.System, s dynamo.State, dt float64) dynamo.State {
	spring := harmonica.NewSpring(dt, p.omega, 0)
	x, v := spring.Update(s.Position, s.Velocity, 0)
	return dynamo.State{Position: x, Velocity: v}
}
