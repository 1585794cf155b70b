package sim

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/san-kum/stepbench/internal/dynamo"
)

// Simulator runs several integrators in lockstep over one grid. Every
// scheme starts from its own copy of the initial state and never observes
// another scheme's state.
type Simulator struct {
	sys         dynamo.System
	integrators []dynamo.Integrator
	metrics     []dynamo.MetricFactory
	observers   []dynamo.Observer
	parallel    bool
	logger      *slog.Logger
}

func New(sys dynamo.System, integrators ...dynamo.Integrator) *Simulator {
	return &Simulator{
		sys:         sys,
		integrators: integrators,
		metrics:     make([]dynamo.MetricFactory, 0),
		observers:   make([]dynamo.Observer, 0),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (s *Simulator) AddMetric(m dynamo.MetricFactory) { s.metrics = append(s.metrics, m) }

// AddObserver registers o for every step. With SetParallel(true) observers
// are called from several goroutines at once.
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) SetParallel(p bool) { s.parallel = p }

func (s *Simulator) SetLogger(l *slog.Logger) {
	if l != nil {
		s.logger = l
	}
}

// Run integrates every scheme from x0. Only the position and velocity of x0
// are used; the force history is always rebuilt from the force at x0.
func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, grid dynamo.Grid) (*Result, error) {
	if err := s.validate(grid); err != nil {
		return nil, err
	}
	x0 = dynamo.NewState(s.sys, x0.Position, x0.Velocity)

	runs := make([]run, len(s.integrators))
	var err error
	if s.parallel {
		err = s.runParallel(ctx, x0, grid, runs)
	} else {
		err = s.runSequential(ctx, x0, grid, runs)
	}
	if err != nil {
		return nil, err
	}

	result := &Result{
		Grid:         grid,
		Order:        make([]string, 0, len(runs)),
		Trajectories: make(map[string]*dynamo.Trajectory, len(runs)),
		Metrics:      make(map[string]map[string]float64, len(runs)),
		Diverged:     make(map[string]int),
	}
	for _, r := range runs {
		name := r.traj.Scheme
		result.Order = append(result.Order, name)
		result.Trajectories[name] = r.traj
		result.Metrics[name] = r.metrics
		if r.diverged >= 0 {
			result.Diverged[name] = r.diverged
		}
	}
	return result, nil
}

func (s *Simulator) validate(grid dynamo.Grid) error {
	if s.sys == nil {
		return fmt.Errorf("%w: nil system", dynamo.ErrInvalidParameter)
	}
	if len(s.integrators) == 0 {
		return fmt.Errorf("%w: no integrators", dynamo.ErrInvalidParameter)
	}
	if grid.N < 1 || grid.Dt <= 0 {
		return &dynamo.ParameterError{Name: "dt", Value: grid.Dt, Reason: "grid must come from dynamo.NewGrid"}
	}
	seen := make(map[string]bool, len(s.integrators))
	for _, integ := range s.integrators {
		if seen[integ.Name()] {
			return fmt.Errorf("%w: duplicate scheme %q", dynamo.ErrInvalidParameter, integ.Name())
		}
		seen[integ.Name()] = true
	}
	return nil
}

func (s *Simulator) runSequential(ctx context.Context, x0 dynamo.State, grid dynamo.Grid, runs []run) error {
	for i, integ := range s.integrators {
		if err := ctx.Err(); err != nil {
			return err
		}
		runs[i] = s.runOne(integ, x0, grid)
	}
	return nil
}

// runOne integrates a single scheme over the whole grid. Non-finite states
// are recorded and carried forward.
func (s *Simulator) runOne(integ dynamo.Integrator, x0 dynamo.State, grid dynamo.Grid) run {
	name := integ.Name()
	s.logger.Debug("scheme start", "scheme", name, "dt", grid.Dt, "steps", grid.N)

	metrics := make([]dynamo.Metric, len(s.metrics))
	for i, factory := range s.metrics {
		metrics[i] = factory(s.sys)
		metrics[i].Reset()
	}

	traj := dynamo.NewTrajectory(name, grid.N)
	x := x0
	traj.Append(x)
	s.observe(metrics, name, 0, x, 0)

	diverged := -1
	if !x.IsValid() {
		diverged = 0
	}

	for i := 0; i < grid.N-1; i++ {
		x = integ.Step(s.sys, x, grid.Dt)
		t := grid.At(i + 1)
		traj.Append(x)
		s.observe(metrics, name, i+1, x, t)
		if diverged < 0 && !x.IsValid() {
			diverged = i + 1
		}
	}

	values := make(map[string]float64, len(metrics))
	for _, m := range metrics {
		values[m.Name()] = m.Value()
	}

	if diverged >= 0 {
		s.logger.Warn("scheme diverged", "scheme", name, "step", diverged, "t", grid.At(diverged))
	}
	s.logger.Debug("scheme done", "scheme", name, "final_x", x.Position, "final_v", x.Velocity)

	return run{traj: traj, metrics: values, diverged: diverged}
}

func (s *Simulator) observe(metrics []dynamo.Metric, name string, i int, x dynamo.State, t float64) {
	for _, m := range metrics {
		m.Observe(x, t)
	}
	for _, o := range s.observers {
		o.OnStep(name, i, x, t)
	}
}
