package experiment

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/san-kum/stepbench/internal/analysis"
	"github.com/san-kum/stepbench/internal/dynamo"
	"github.com/san-kum/stepbench/internal/integrators"
	"github.com/san-kum/stepbench/internal/metrics"
	"github.com/san-kum/stepbench/internal/sim"
)

type Config struct {
	Run     dynamo.Config
	Schemes []string
	Mode    integrators.Mode
}

func DefaultConfig() Config {
	return Config{
		Run:     dynamo.DefaultConfig(),
		Schemes: append([]string(nil), DefaultSchemes...),
		Mode:    integrators.ModeExact,
	}
}

// Report is a finished run with its error analysis.
type Report struct {
	Config    Config
	System    *dynamo.Oscillator
	Result    *sim.Result
	Reference analysis.Reference
	Errors    map[string][]float64
	Summaries map[string]analysis.Summary
}

// Schemes lists the scheme names in run order.
func (r *Report) Schemes() []string { return r.Result.Order }

type Experiment struct {
	cfg       Config
	registry  *Registry
	logger    *slog.Logger
	simulator *sim.Simulator
	sys       *dynamo.Oscillator
	grid      dynamo.Grid
	x0        dynamo.State
}

func New(cfg Config) *Experiment {
	return &Experiment{
		cfg:      cfg,
		registry: NewRegistry(),
		logger:   orDiscard(nil),
	}
}

func orDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l
}

func (e *Experiment) SetLogger(l *slog.Logger) {
	if l != nil {
		e.logger = l
	}
}

// Setup validates the configuration and builds the simulator. All
// parameter errors surface here, before any stepping.
func (e *Experiment) Setup() error {
	sys, grid, x0, err := e.cfg.Run.Setup()
	if err != nil {
		return err
	}
	schemes := e.cfg.Schemes
	if len(schemes) == 0 {
		schemes = DefaultSchemes
	}
	integs, err := e.registry.GetIntegrators(schemes, sys, e.cfg.Mode)
	if err != nil {
		return err
	}

	s := sim.New(sys, integs...)
	s.SetParallel(e.cfg.Run.Parallel)
	s.SetLogger(e.logger)
	for _, m := range metrics.Defaults(e.cfg.Run.X0, e.cfg.Run.V0, sys) {
		s.AddMetric(m)
	}

	e.simulator = s
	e.sys = sys
	e.grid = grid
	e.x0 = x0
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*Report, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	e.logger.Info("running benchmark",
		"schemes", e.cfg.Schemes, "dt", e.grid.Dt, "t_final", e.grid.Final, "steps", e.grid.N, "mode", e.cfg.Mode.String())

	result, err := e.simulator.Run(ctx, e.x0, e.grid)
	if err != nil {
		return nil, err
	}

	ref, err := analysis.NewReference(e.sys, e.cfg.Run.X0, e.cfg.Run.V0)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Config:    e.cfg,
		System:    e.sys,
		Result:    result,
		Reference: ref,
		Errors:    make(map[string][]float64, len(result.Order)),
		Summaries: make(map[string]analysis.Summary, len(result.Order)),
	}
	for _, name := range result.Order {
		errs, err := analysis.ErrorSeries(result.Trajectories[name], result.Grid, ref)
		if err != nil {
			return nil, err
		}
		report.Errors[name] = errs
		report.Summaries[name] = analysis.Summarize(errs)
		e.logger.Debug("error summary", "scheme", name, "max", report.Summaries[name].Max, "final", report.Summaries[name].Final)
	}
	return report, nil
}

// Run is Setup followed by Run.
func Run(ctx context.Context, cfg Config, logger *slog.Logger) (*Report, error) {
	exp := New(cfg)
	exp.SetLogger(logger)
	if err := exp.Setup(); err != nil {
		return nil, err
	}
	return exp.Run(ctx)
}
