package integrators

import "github.com/san-kum/stepbench/internal/dynamo"

// RK4 is classic fourth-order Runge-Kutta on (x, v), four force evaluations
// per step.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) Step(sys dynamo.System, s dynamo.State, dt float64) dynamo.State {
	m := sys.Mass()
	accel := func(x float64) float64 { return sys.Force(x) / m }

	x, v := s.Position, s.Velocity

	k1x, k1v := v, accel(x)
	k2x, k2v := v+0.5*dt*k1v, accel(x+0.5*dt*k1x)
	k3x, k3v := v+0.5*dt*k2v, accel(x+0.5*dt*k2x)
	k4x, k4v := v+dt*k3v, accel(x+dt*k3x)

	dt6 := dt / 6.0
	return dynamo.State{
		Position: x + dt6*(k1x+2*k2x+2*k3x+k4x),
		Velocity: v + dt6*(k1v+2*k2v+2*k3v+k4v),
	}
}
