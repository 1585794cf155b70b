package dynamo

import (
	"fmt"
	"math"
)

// Config holds the numeric parameters of one benchmark run.
type Config struct {
	Dt        float64
	Duration  float64
	Mass      float64
	Stiffness float64
	X0        float64
	V0        float64
	Parallel  bool
}

// DefaultConfig is the reference scenario: x(t) = cos(t).
func DefaultConfig() Config {
	return Config{
		Dt:        0.01,
		Duration:  10.0,
		Mass:      1.0,
		Stiffness: 1.0,
		X0:        1.0,
		V0:        0.0,
	}
}

func (c Config) Validate() error {
	if _, err := NewGrid(c.Dt, c.Duration); err != nil {
		return err
	}
	if _, err := NewOscillator(Hooke{K: c.Stiffness}, c.Mass); err != nil {
		return err
	}
	for name, v := range map[string]float64{"x0": c.X0, "v0": c.V0} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalid(name, v, "must be finite")
		}
	}
	return nil
}

// Setup builds the oscillator, grid and initial state described by c.
func (c Config) Setup() (*Oscillator, Grid, State, error) {
	if err := c.Validate(); err != nil {
		return nil, Grid{}, State{}, fmt.Errorf("invalid config: %w", err)
	}
	osc, _ := NewOscillator(Hooke{K: c.Stiffness}, c.Mass)
	grid, _ := NewGrid(c.Dt, c.Duration)
	return osc, grid, NewState(osc, c.X0, c.V0), nil
}
