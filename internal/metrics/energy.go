package metrics

import (
	"math"

	"github.com/san-kum/stepbench/internal/dynamo"
)

// Energy reports the mean total energy over the observed states.
type Energy struct {
	name        string
	sys         dynamo.System
	samples     int
	totalEnergy float64
}

func NewEnergy(sys dynamo.System) *Energy {
	return &Energy{
		name: "energy",
		sys:  sys,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(x dynamo.State, t float64) {
	ec, ok := e.sys.(dynamo.Hamiltonian)
	if !ok {
		return
	}
	e.totalEnergy += ec.Energy(x)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift tracks the largest relative deviation from the energy of the
// first observed state.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
	sys           dynamo.System
}

func NewEnergyDrift(sys dynamo.System) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		sys:  sys,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, t float64) {
	ec, ok := e.sys.(dynamo.Hamiltonian)
	if !ok {
		return
	}

	energy := ec.Energy(x)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		// NaN must win so divergence stays visible.
		if math.IsNaN(drift) || drift > e.maxDrift {
			e.maxDrift = drift
		}
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

// Final is the signed relative drift of the last observed state.
func (e *EnergyDrift) Final() float64 {
	if e.initialEnergy == 0 {
		return 0
	}
	return (e.currentEnergy - e.initialEnergy) / math.Abs(e.initialEnergy)
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// FinalDrift exposes EnergyDrift.Final as its own metric.
type FinalDrift struct {
	EnergyDrift
}

func NewFinalDrift(sys dynamo.System) *FinalDrift {
	d := &FinalDrift{EnergyDrift: *NewEnergyDrift(sys)}
	d.name = "final_energy_drift"
	return d
}

func (f *FinalDrift) Value() float64 { return f.Final() }
