// Package metrics observes a running cloth world: energy content,
// drift, displacement and divergence detection.
package metrics

import (
	"math"

	"github.com/san-kum/clothsim/internal/cloth"
)

// Metric accumulates an observation per tick over a run.
type Metric interface {
	Name() string
	Observe(w *cloth.World, t float64)
	Value() float64
	Reset()
}

// Kinetic sums 1/2 m v^2 over all particles, reading the explicit
// velocity (the Verlet family keeps it synced as a finite difference).
func Kinetic(w *cloth.World) float64 {
	total := 0.0
	for i := range w.Particles() {
		p := &w.Particles()[i]
		v := float64(p.Vel.Len())
		total += 0.5 * float64(p.Mass) * v * v
	}
	return total
}

// SpringPotential sums 1/2 k stretch^2 over all springs.
func SpringPotential(w *cloth.World) float64 {
	particles := w.Particles()
	total := 0.0
	for i := range w.Springs() {
		s := &w.Springs()[i]
		stretch := float64(particles[s.P1].Pos.Sub(particles[s.P2].Pos).Len() - s.RestLen)
		total += 0.5 * float64(s.Stiffness) * stretch * stretch
	}
	return total
}

// GravityPotential sums -m g.x over all particles, zero at the origin.
func GravityPotential(w *cloth.World) float64 {
	g := w.Gravity()
	total := 0.0
	for i := range w.Particles() {
		p := &w.Particles()[i]
		total -= float64(p.Mass) * float64(g.Dot(p.Pos))
	}
	return total
}

// TotalEnergy is the sum of the kinetic and both potential terms.
func TotalEnergy(w *cloth.World) float64 {
	return Kinetic(w) + SpringPotential(w) + GravityPotential(w)
}

// EnergyDrift tracks the largest relative deviation of total energy
// from its value at the first observation.
type EnergyDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(w *cloth.World, t float64) {
	energy := TotalEnergy(w)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
