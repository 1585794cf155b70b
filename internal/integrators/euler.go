package integrators

import "github.com/san-kum/stepbench/internal/dynamo"

// Euler is the explicit first-order scheme. The position update uses the
// velocity from before the step.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(sys dynamo.System, s dynamo.State, dt float64) dynamo.State {
	a := sys.Force(s.Position) / sys.Mass()
	return dynamo.State{
		Position: s.Position + dt*s.Velocity,
		Velocity: s.Velocity + dt*a,
	}
}
