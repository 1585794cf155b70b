package sim_test

import (
	"context"
	"errors"
	"math"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/stepbench/internal/dynamo"
	"github.com/san-kum/stepbench/internal/integrators"
	"github.com/san-kum/stepbench/internal/metrics"
	"github.com/san-kum/stepbench/internal/sim"
)

// blowUp counts up by one and turns NaN once the position reaches 3.
type blowUp struct{}

func (blowUp) Name() string { return "blowup" }

func (blowUp) Step(sys dynamo.System, s dynamo.State, dt float64) dynamo.State {
	if s.Position >= 3 {
		return dynamo.State{Position: math.NaN(), Velocity: math.NaN()}
	}
	return dynamo.State{Position: s.Position + 1}
}

type stepCounter struct {
	mu    sync.Mutex
	steps map[string]int
}

func (c *stepCounter) OnStep(scheme string, i int, s dynamo.State, t float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.steps[scheme]++
}

func all() []dynamo.Integrator {
	return []dynamo.Integrator{
		integrators.NewEuler(),
		integrators.NewVerlet(),
		integrators.NewExtrapolated(integrators.ModeExact),
		integrators.NewExtrapolated(integrators.ModeAverage),
		integrators.NewRK4(),
	}
}

var _ = Describe("Simulator", func() {
	var (
		osc  *dynamo.Oscillator
		grid dynamo.Grid
		x0   dynamo.State
		ctx  context.Context
	)

	BeforeEach(func() {
		var err error
		osc, err = dynamo.NewOscillator(dynamo.Hooke{K: 1}, 1)
		Expect(err).NotTo(HaveOccurred())
		grid, err = dynamo.NewGrid(0.01, 10)
		Expect(err).NotTo(HaveOccurred())
		x0 = dynamo.NewState(osc, 1, 0)
		ctx = context.Background()
	})

	It("produces one trajectory of grid length per scheme, in order", func() {
		res, err := sim.New(osc, all()...).Run(ctx, x0, grid)
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Order).To(Equal([]string{"euler", "verlet", "extrapolated", "extrapolated-avg", "rk4"}))
		for _, name := range res.Order {
			traj, ok := res.Trajectory(name)
			Expect(ok).To(BeTrue())
			Expect(traj.Len()).To(Equal(grid.N))
			Expect(traj.States[0]).To(Equal(x0))
		}
		Expect(res.Diverged).To(BeEmpty())
	})

	It("keeps schemes independent of each other", func() {
		alone, err := sim.New(osc, integrators.NewEuler()).Run(ctx, x0, grid)
		Expect(err).NotTo(HaveOccurred())
		together, err := sim.New(osc, all()...).Run(ctx, x0, grid)
		Expect(err).NotTo(HaveOccurred())

		Expect(together.Trajectories["euler"].States).To(Equal(alone.Trajectories["euler"].States))
	})

	It("gives identical results in parallel and sequentially", func() {
		seq := sim.New(osc, all()...)
		par := sim.New(osc, all()...)
		par.SetParallel(true)
		for _, m := range metrics.Defaults(1, 0, osc) {
			seq.AddMetric(m)
			par.AddMetric(m)
		}

		a, err := seq.Run(ctx, x0, grid)
		Expect(err).NotTo(HaveOccurred())
		b, err := par.Run(ctx, x0, grid)
		Expect(err).NotTo(HaveOccurred())

		Expect(b.Order).To(Equal(a.Order))
		for _, name := range a.Order {
			Expect(b.Trajectories[name].States).To(Equal(a.Trajectories[name].States))
			Expect(b.Metrics[name]).To(Equal(a.Metrics[name]))
		}
	})

	It("collects fresh metrics for every scheme", func() {
		s := sim.New(osc, integrators.NewEuler(), integrators.NewVerlet())
		for _, m := range metrics.Defaults(1, 0, osc) {
			s.AddMetric(m)
		}
		res, err := s.Run(ctx, x0, grid)
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Metrics["verlet"]["energy_drift"]).To(BeNumerically("<", 1e-3))
		Expect(res.Metrics["euler"]["energy_drift"]).To(BeNumerically(">", 0.05))
		Expect(res.Metrics["verlet"]["stability"]).To(Equal(1.0))
	})

	It("notifies observers on every grid point", func() {
		c := &stepCounter{steps: make(map[string]int)}
		s := sim.New(osc, integrators.NewEuler(), integrators.NewVerlet())
		s.SetParallel(true)
		s.AddObserver(c)

		_, err := s.Run(ctx, x0, grid)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.steps).To(HaveKeyWithValue("euler", grid.N))
		Expect(c.steps).To(HaveKeyWithValue("verlet", grid.N))
	})

	It("records the first non-finite step without stopping", func() {
		res, err := sim.New(osc, blowUp{}, integrators.NewVerlet()).Run(ctx, dynamo.State{Position: 1}, grid)
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Diverged).To(HaveKeyWithValue("blowup", 3))
		Expect(res.Diverged).NotTo(HaveKey("verlet"))
		Expect(res.Trajectories["blowup"].Len()).To(Equal(grid.N))
	})

	It("rebuilds the force history from the initial position", func() {
		schemes := []dynamo.Integrator{integrators.NewVerlet(), integrators.NewExtrapolated(integrators.ModeExact)}
		bare, err := sim.New(osc, schemes...).Run(ctx, dynamo.State{Position: 1}, grid)
		Expect(err).NotTo(HaveOccurred())
		primed, err := sim.New(osc, schemes...).Run(ctx, x0, grid)
		Expect(err).NotTo(HaveOccurred())

		ext := bare.Trajectories["extrapolated"]
		Expect(ext.States[0]).To(Equal(x0))
		Expect(ext.States[1].Position).To(Equal(bare.Trajectories["verlet"].States[1].Position))
		Expect(ext.States).To(Equal(primed.Trajectories["extrapolated"].States))

		stale := dynamo.State{Position: 1, PrevForce: 7, Force: -3}
		res, err := sim.New(osc, schemes...).Run(ctx, stale, grid)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Trajectories["extrapolated"].States).To(Equal(primed.Trajectories["extrapolated"].States))
	})

	It("stops before starting a scheme once the context is done", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := sim.New(osc, all()...).Run(cctx, x0, grid)
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())

		par := sim.New(osc, all()...)
		par.SetParallel(true)
		_, err = par.Run(cctx, x0, grid)
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
	})

	DescribeTable("rejects invalid setups",
		func(build func() (*sim.Simulator, dynamo.Grid)) {
			s, g := build()
			_, err := s.Run(ctx, x0, g)
			Expect(errors.Is(err, dynamo.ErrInvalidParameter)).To(BeTrue(), "got %v", err)
		},
		Entry("no integrators", func() (*sim.Simulator, dynamo.Grid) {
			return sim.New(osc), grid
		}),
		Entry("nil system", func() (*sim.Simulator, dynamo.Grid) {
			return sim.New(nil, integrators.NewEuler()), grid
		}),
		Entry("duplicate scheme", func() (*sim.Simulator, dynamo.Grid) {
			return sim.New(osc, integrators.NewEuler(), integrators.NewEuler()), grid
		}),
		Entry("zero grid", func() (*sim.Simulator, dynamo.Grid) {
			return sim.New(osc, integrators.NewEuler()), dynamo.Grid{}
		}),
	)
})
