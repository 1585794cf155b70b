package sim

import "github.com/san-kum/stepbench/internal/dynamo"

// Result holds every scheme's trajectory over the shared grid.
type Result struct {
	Grid         dynamo.Grid
	Order        []string
	Trajectories map[string]*dynamo.Trajectory
	Metrics      map[string]map[string]float64
	// Diverged maps a scheme to the first grid index holding a non-finite
	// state. Schemes that stayed finite are absent.
	Diverged map[string]int
}

func (r *Result) Trajectory(scheme string) (*dynamo.Trajectory, bool) {
	t, ok := r.Trajectories[scheme]
	return t, ok
}

type run struct {
	traj     *dynamo.Trajectory
	metrics  map[string]float64
	diverged int
}
