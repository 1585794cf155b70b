package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/stepbench/internal/dynamo"
)

// ErrorSeries is |x_i - exact(t_i)| for every grid index. Non-finite
// positions yield non-finite errors.
func ErrorSeries(traj *dynamo.Trajectory, grid dynamo.Grid, ref Reference) ([]float64, error) {
	if traj.Len() != grid.N {
		return nil, fmt.Errorf("%w: trajectory %q has %d states, grid has %d",
			dynamo.ErrDimensionMismatch, traj.Scheme, traj.Len(), grid.N)
	}
	errs := make([]float64, grid.N)
	for i, s := range traj.States {
		errs[i] = math.Abs(s.Position - ref.Exact(grid.At(i)))
	}
	return errs, nil
}

// EnergySeries is the total energy of every state; NaN for systems
// without a potential.
func EnergySeries(sys dynamo.System, traj *dynamo.Trajectory) []float64 {
	es := make([]float64, traj.Len())
	h, ok := sys.(dynamo.Hamiltonian)
	for i, s := range traj.States {
		if !ok {
			es[i] = math.NaN()
			continue
		}
		es[i] = h.Energy(s)
	}
	return es
}

// Sample is one (time, value) pair handed to result sinks.
type Sample struct {
	T     float64
	Value float64
}

// Pairs zips a series with the grid times.
func Pairs(grid dynamo.Grid, values []float64) []Sample {
	n := len(values)
	if grid.N < n {
		n = grid.N
	}
	out := make([]Sample, n)
	for i := 0; i < n; i++ {
		out[i] = Sample{T: grid.At(i), Value: values[i]}
	}
	return out
}
