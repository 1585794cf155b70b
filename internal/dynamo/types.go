package dynamo

import (
	"math"
)

// State is one scheme's snapshot at one grid point. PrevForce and Force are
// the force at the previous and current position. The cache is defined only
// for states produced by NewState, Verlet and the force-extrapolating scheme;
// Euler, RK4 and the propagator return it zeroed and must not be read for it.
type State struct {
	Position  float64
	Velocity  float64
	PrevForce float64
	Force     float64
}

// NewState primes the force history with the force at x0, so the first
// extrapolation sees no history.
func NewState(sys System, x0, v0 float64) State {
	f := sys.Force(x0)
	return State{
		Position:  x0,
		Velocity:  v0,
		PrevForce: f,
		Force:     f,
	}
}

func (s State) IsValid() bool {
	for _, v := range [...]float64{s.Position, s.Velocity, s.PrevForce, s.Force} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ForceLaw maps a position to the force acting on the particle.
type ForceLaw interface {
	Force(x float64) float64
}

// Linear is a restoring law with a closed-form solution.
type Linear interface {
	ForceLaw
	Stiffness() float64
	Potential(x float64) float64
}

// Hooke is the linear restoring force F(x) = -K*x.
type Hooke struct {
	K float64
}

func (h Hooke) Force(x float64) float64     { return -h.K * x }
func (h Hooke) Stiffness() float64          { return h.K }
func (h Hooke) Potential(x float64) float64 { return 0.5 * h.K * x * x }

// System is what integrators step: a force law acting on a mass.
type System interface {
	Force(x float64) float64
	Mass() float64
}

// Hamiltonian systems report total mechanical energy.
type Hamiltonian interface {
	Energy(s State) float64
}

// Oscillator is a single particle under a ForceLaw.
type Oscillator struct {
	Law ForceLaw
	M   float64
}

func NewOscillator(law ForceLaw, mass float64) (*Oscillator, error) {
	if law == nil {
		return nil, &ParameterError{Name: "law", Value: math.NaN(), Reason: "must not be nil"}
	}
	if math.IsNaN(mass) || math.IsInf(mass, 0) || mass <= 0 {
		return nil, invalid("mass", mass, "must be positive and finite")
	}
	if l, ok := law.(Linear); ok {
		if k := l.Stiffness(); math.IsNaN(k) || math.IsInf(k, 0) || k <= 0 {
			return nil, invalid("stiffness", k, "must be positive and finite")
		}
	}
	return &Oscillator{Law: law, M: mass}, nil
}

func (o *Oscillator) Force(x float64) float64 { return o.Law.Force(x) }
func (o *Oscillator) Mass() float64           { return o.M }

// Linear returns the force law as a Linear law when it has a closed form.
func (o *Oscillator) Linear() (Linear, bool) {
	l, ok := o.Law.(Linear)
	return l, ok
}

// Energy is NaN for laws without a known potential.
func (o *Oscillator) Energy(s State) float64 {
	l, ok := o.Linear()
	if !ok {
		return math.NaN()
	}
	return 0.5*o.M*s.Velocity*s.Velocity + l.Potential(s.Position)
}

// Integrator advances a State by a fixed dt. Implementations keep no state
// across calls beyond what is carried in State.
type Integrator interface {
	Name() string
	Step(sys System, s State, dt float64) State
}

// Metric observes one scheme's trajectory while it is being built.
type Metric interface {
	Name() string
	Observe(s State, t float64)
	Value() float64
	Reset()
}

// MetricFactory builds a fresh Metric for one scheme's run.
type MetricFactory func(sys System) Metric

// Observer is notified after every accepted step.
type Observer interface {
	OnStep(scheme string, i int, s State, t float64)
}
