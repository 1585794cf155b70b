package integrators_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/stepbench/internal/analysis"
	"github.com/san-kum/stepbench/internal/dynamo"
	"github.com/san-kum/stepbench/internal/integrators"
	"github.com/san-kum/stepbench/internal/sim"
)

type run struct {
	grid   dynamo.Grid
	traj   *dynamo.Trajectory
	errors []float64
}

func simulate(osc *dynamo.Oscillator, integ dynamo.Integrator, dt, tFinal float64) run {
	grid, err := dynamo.NewGrid(dt, tFinal)
	Expect(err).NotTo(HaveOccurred())

	res, err := sim.New(osc, integ).Run(context.Background(), dynamo.NewState(osc, 1, 0), grid)
	Expect(err).NotTo(HaveOccurred())

	ref, err := analysis.NewReference(osc, 1, 0)
	Expect(err).NotTo(HaveOccurred())

	traj := res.Trajectories[integ.Name()]
	errs, err := analysis.ErrorSeries(traj, grid, ref)
	Expect(err).NotTo(HaveOccurred())
	return run{grid: grid, traj: traj, errors: errs}
}

func final(r run) float64 { return r.errors[len(r.errors)-1] }

var _ = Describe("fixed-step schemes on x'' = -x", func() {
	var osc *dynamo.Oscillator

	BeforeEach(func() {
		var err error
		osc, err = dynamo.NewOscillator(dynamo.Hooke{K: 1}, 1)
		Expect(err).NotTo(HaveOccurred())
	})

	schemes := map[string]func() dynamo.Integrator{
		"euler":            func() dynamo.Integrator { return integrators.NewEuler() },
		"verlet":           func() dynamo.Integrator { return integrators.NewVerlet() },
		"rk4":              func() dynamo.Integrator { return integrators.NewRK4() },
		"extrapolated":     func() dynamo.Integrator { return integrators.NewExtrapolated(integrators.ModeExact) },
		"extrapolated-avg": func() dynamo.Integrator { return integrators.NewExtrapolated(integrators.ModeAverage) },
	}

	names := []string{"euler", "verlet", "rk4", "extrapolated", "extrapolated-avg"}

	Describe("convergence", func() {
		for _, name := range names {
			build := schemes[name]
			It("shrinks the final error as dt shrinks for "+name, func() {
				coarse := final(simulate(osc, build(), 1e-2, 10))
				fine := final(simulate(osc, build(), 1e-3, 10))
				Expect(fine).To(BeNumerically("<", coarse))
				// rk4 is already at round-off long before dt=1e-5
				if name != "rk4" {
					Expect(final(simulate(osc, build(), 1e-5, 10))).To(BeNumerically("<", coarse))
				}
			})
		}

		It("observes first order for Euler and second order for Verlet and extrapolation", func() {
			order := func(b func() dynamo.Integrator) float64 {
				return analysis.ObservedOrder(
					final(simulate(osc, b(), 1e-2, 10)),
					final(simulate(osc, b(), 1e-3, 10)),
					10)
			}
			Expect(order(schemes["euler"])).To(BeNumerically("~", 1, 0.1))
			Expect(order(schemes["verlet"])).To(BeNumerically("~", 2, 0.1))
			Expect(order(schemes["extrapolated"])).To(BeNumerically("~", 2, 0.1))
		})
	})

	Describe("energy", func() {
		It("keeps Verlet within 1% of the initial energy", func() {
			r := simulate(osc, integrators.NewVerlet(), 0.01, 20)
			Expect(r.grid.N).To(BeNumerically(">=", 1000))
			energy := analysis.EnergySeries(osc, r.traj)
			for _, e := range energy {
				Expect(math.Abs(e-energy[0]) / energy[0]).To(BeNumerically("<", 0.01))
			}
		})

		It("grows Euler's energy on every step", func() {
			r := simulate(osc, integrators.NewEuler(), 0.01, 10)
			energy := analysis.EnergySeries(osc, r.traj)
			for i := 1; i < len(energy); i++ {
				Expect(energy[i]).To(BeNumerically(">", energy[i-1]))
			}
			Expect(energy[len(energy)-1] / energy[0]).To(BeNumerically(">", 1.01))
		})
	})

	Describe("determinism", func() {
		for _, name := range names {
			build := schemes[name]
			It("reproduces "+name+" bit for bit", func() {
				a := simulate(osc, build(), 0.01, 10)
				b := simulate(osc, build(), 0.01, 10)
				Expect(a.traj.States).To(Equal(b.traj.States))
			})
		}
	})

	Describe("extrapolated start-up", func() {
		It("matches Verlet exactly on the first step in exact mode", func() {
			v := simulate(osc, integrators.NewVerlet(), 0.01, 1)
			e := simulate(osc, integrators.NewExtrapolated(integrators.ModeExact), 0.01, 1)
			Expect(e.errors[0]).To(Equal(v.errors[0]))
			Expect(e.errors[1]).To(Equal(v.errors[1]))
			Expect(e.traj.States[1].Position).To(Equal(v.traj.States[1].Position))
		})

		It("matches Verlet to round-off on the first step in average mode", func() {
			v := simulate(osc, integrators.NewVerlet(), 0.01, 1)
			e := simulate(osc, integrators.NewExtrapolated(integrators.ModeAverage), 0.01, 1)
			Expect(e.traj.States[1].Position).To(BeNumerically("~", v.traj.States[1].Position, 1e-12))
		})
	})

	Describe("reference scenario", func() {
		It("ranks euler > extrapolated > verlet at dt=0.01", func() {
			euler := final(simulate(osc, integrators.NewEuler(), 0.01, 10))
			verlet := final(simulate(osc, integrators.NewVerlet(), 0.01, 10))
			extrap := final(simulate(osc, integrators.NewExtrapolated(integrators.ModeExact), 0.01, 10))

			Expect(verlet).To(BeNumerically("<", 0.01))
			Expect(euler).To(BeNumerically(">", extrap))
			Expect(extrap).To(BeNumerically(">", verlet))
		})

		It("drifts Euler by more than 0.5 at dt=0.1", func() {
			Expect(final(simulate(osc, integrators.NewEuler(), 0.1, 10))).To(BeNumerically(">", 0.5))
		})

		It("keeps the propagator at round-off", func() {
			p, err := integrators.NewPropagator(osc)
			Expect(err).NotTo(HaveOccurred())
			r := simulate(osc, p, 0.01, 10)
			Expect(analysis.Summarize(r.errors).Max).To(BeNumerically("<", 1e-9))
		})
	})

	DescribeTable("error series length equals the grid size",
		func(dt, tFinal float64) {
			for _, build := range schemes {
				r := simulate(osc, build(), dt, tFinal)
				Expect(r.errors).To(HaveLen(r.grid.N))
				Expect(r.traj.Len()).To(Equal(r.grid.N))
			}
		},
		Entry("reference", 0.01, 10.0),
		Entry("coarse", 0.1, 10.0),
		Entry("non-dividing", 0.3, 1.0),
		Entry("odd", 0.07, 3.3),
		Entry("single step", 1.0, 0.5),
	)
})
