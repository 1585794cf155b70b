package integrators

import "github.com/san-kum/stepbench/internal/dynamo"

// Verlet is velocity Verlet: symmetric, second order, two force
// evaluations per step.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Name() string { return "verlet" }

func (v *Verlet) Step(sys dynamo.System, s dynamo.State, dt float64) dynamo.State {
	m := sys.Mass()
	f := sys.Force(s.Position)
	a := f / m

	x := s.Position + dt*s.Velocity + 0.5*dt*dt*a

	fNew := sys.Force(x)
	aNew := fNew / m

	return dynamo.State{
		Position:  x,
		Velocity:  s.Velocity + 0.5*dt*(a+aNew),
		PrevForce: f,
		Force:     fNew,
	}
}
