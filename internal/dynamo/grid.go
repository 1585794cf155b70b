package dynamo

import "math"

// gridGuard absorbs representation noise in Final/Dt, e.g. 10/0.01.
const gridGuard = 1e-9

// Grid is the fixed time grid t_i = i*Dt, i in [0, N).
type Grid struct {
	Dt    float64
	Final float64
	N     int
}

func NewGrid(dt, final float64) (Grid, error) {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt <= 0 {
		return Grid{}, invalid("dt", dt, "must be positive and finite")
	}
	if math.IsNaN(final) || math.IsInf(final, 0) || final <= 0 {
		return Grid{}, invalid("t_final", final, "must be positive and finite")
	}
	ratio := final / dt
	n := int(math.Ceil(ratio - gridGuard*math.Max(1, ratio)))
	if n < 1 {
		n = 1
	}
	return Grid{Dt: dt, Final: final, N: n}, nil
}

func (g Grid) At(i int) float64 { return float64(i) * g.Dt }

func (g Grid) Times() []float64 {
	times := make([]float64, g.N)
	for i := range times {
		times[i] = g.At(i)
	}
	return times
}

// Last is the time of the final grid point.
func (g Grid) Last() float64 { return g.At(g.N - 1) }
