package experiment

import (
	"fmt"
	"slices"
	"sort"

	"github.com/san-kum/stepbench/internal/dynamo"
	"github.com/san-kum/stepbench/internal/integrators"
)

// DefaultSchemes are the schemes the benchmark compares unless told otherwise.
var DefaultSchemes = []string{"euler", "verlet", "extrapolated"}

type factory func(sys dynamo.System) (dynamo.Integrator, error)

type Registry struct {
	integrators map[string]factory
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]factory),
	}

	r.integrators["euler"] = func(dynamo.System) (dynamo.Integrator, error) { return integrators.NewEuler(), nil }
	r.integrators["verlet"] = func(dynamo.System) (dynamo.Integrator, error) { return integrators.NewVerlet(), nil }
	r.integrators["rk4"] = func(dynamo.System) (dynamo.Integrator, error) { return integrators.NewRK4(), nil }
	r.integrators["extrapolated"] = func(dynamo.System) (dynamo.Integrator, error) {
		return integrators.NewExtrapolated(integrators.ModeExact), nil
	}
	r.integrators["extrapolated-avg"] = func(dynamo.System) (dynamo.Integrator, error) {
		return integrators.NewExtrapolated(integrators.ModeAverage), nil
	}
	r.integrators["propagator"] = func(sys dynamo.System) (dynamo.Integrator, error) {
		return integrators.NewPropagator(sys)
	}

	return r
}

// GetIntegrator builds the named scheme for sys. The bare "extrapolated"
// name honours mode, so configs can switch update modes without renaming.
func (r *Registry) GetIntegrator(name string, sys dynamo.System, mode integrators.Mode) (dynamo.Integrator, error) {
	if name == "extrapolated" && mode == integrators.ModeAverage {
		name = "extrapolated-avg"
	}
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownScheme, name, r.ListIntegrators())
	}
	return fn(sys)
}

// GetIntegrators builds every named scheme. When the list already names
// extrapolated-avg, the bare "extrapolated" keeps exact mode so both
// variants can be compared side by side.
func (r *Registry) GetIntegrators(names []string, sys dynamo.System, mode integrators.Mode) ([]dynamo.Integrator, error) {
	if mode == integrators.ModeAverage && slices.Contains(names, "extrapolated-avg") {
		mode = integrators.ModeExact
	}
	out := make([]dynamo.Integrator, 0, len(names))
	for _, name := range names {
		integ, err := r.GetIntegrator(name, sys, mode)
		if err != nil {
			return nil, err
		}
		out = append(out, integ)
	}
	return out, nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
