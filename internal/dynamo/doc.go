// Package dynamo provides the core primitives of the integration benchmark.
//
// The package defines the data shared by every time-stepping scheme:
//
//   - [State]: position, velocity and the force history of one scheme
//   - [ForceLaw]: position -> force mapping, [Hooke] by default
//   - [System]: force law plus mass, implemented by [Oscillator]
//   - [Integrator]: advances a [State] by a fixed dt
//   - [Grid]: the fixed time grid shared by all schemes
//   - [Trajectory]: one scheme's index-aligned sequence of states
//
// # Example
//
//	osc, _ := dynamo.NewOscillator(dynamo.Hooke{K: 1}, 1)
//	grid, _ := dynamo.NewGrid(0.01, 10)
//	x0 := dynamo.NewState(osc, 1, 0)
//	s := sim.New(osc, integrators.NewEuler(), integrators.NewVerlet())
//	result, _ := s.Run(ctx, x0, grid)
//
// # Errors
//
// Invalid construction parameters fail fast with [ErrInvalidParameter].
// Non-finite values produced while stepping are never trapped.
package dynamo
