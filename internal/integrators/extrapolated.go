package integrators

import (
	"fmt"

	"github.com/san-kum/stepbench/internal/dynamo"
)

// Mode selects how the extrapolated scheme builds its velocity update.
type Mode int

const (
	// ModeExact projects the next force linearly from the last two samples
	// and uses the current force for the position update.
	ModeExact Mode = iota
	// ModeAverage kicks the velocity with the mean of the last two samples
	// and moves the position with the trapezoid of old and new velocity.
	ModeAverage
)

func (m Mode) String() string {
	switch m {
	case ModeExact:
		return "exact"
	case ModeAverage:
		return "average"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "exact":
		return ModeExact, nil
	case "average", "avg":
		return ModeAverage, nil
	}
	return 0, fmt.Errorf("%w: extrapolation mode %q (want exact or average)", dynamo.ErrInvalidParameter, s)
}

// Extrapolated approximates Verlet's symmetric velocity update with a single
// force evaluation per step. The force history travels in State.PrevForce
// and State.Force, which must be primed with dynamo.NewState.
type Extrapolated struct {
	mode Mode
}

func NewExtrapolated(mode Mode) *Extrapolated {
	return &Extrapolated{mode: mode}
}

func (e *Extrapolated) Mode() Mode { return e.mode }

func (e *Extrapolated) Name() string {
	if e.mode == ModeAverage {
		return "extrapolated-avg"
	}
	return "extrapolated"
}

func (e *Extrapolated) Step(sys dynamo.System, s dynamo.State, dt float64) dynamo.State {
	m := sys.Mass()
	var x, v float64

	switch e.mode {
	case ModeAverage:
		avg := (s.PrevForce + s.Force) * 0.5
		v = s.Velocity + avg*(dt/m)
		x = s.Position + dt*(v+s.Velocity)*0.5
	default:
		future := 2*s.Force - s.PrevForce
		a := s.Force / m
		x = s.Position + dt*s.Velocity + 0.5*dt*dt*a
		v = s.Velocity + 0.5*dt*(future+s.Force)/m
	}

	return dynamo.State{
		Position:  x,
		Velocity:  v,
		PrevForce: s.Force,
		Force:     sys.Force(x),
	}
}
