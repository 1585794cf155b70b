package metrics

import (
	"math"

	"github.com/san-kum/stepbench/internal/dynamo"
)

// Defaults returns the factories attached to every benchmark run. The
// stability bound is ten times the initial amplitude.
func Defaults(x0, v0 float64, sys dynamo.System) []dynamo.MetricFactory {
	amp := math.Abs(x0)
	if l, ok := sys.(interface{ Linear() (dynamo.Linear, bool) }); ok {
		if law, ok := l.Linear(); ok {
			omega := math.Sqrt(law.Stiffness() / sys.Mass())
			amp = math.Hypot(x0, v0/omega)
		}
	}
	bound := 10 * math.Max(amp, 1e-12)

	return []dynamo.MetricFactory{
		func(sys dynamo.System) dynamo.Metric { return NewEnergy(sys) },
		func(sys dynamo.System) dynamo.Metric { return NewEnergyDrift(sys) },
		func(sys dynamo.System) dynamo.Metric { return NewFinalDrift(sys) },
		func(dynamo.System) dynamo.Metric { return NewStability(bound) },
	}
}
