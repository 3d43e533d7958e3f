// Package metrics provides step-wise observers over a running grid. The CLI
// runner calls Observe once per completed step and reads Value at the end.
package metrics

import "github.com/emwave/fdtdlab/internal/fdtd"

// Metric accumulates one scalar over a run.
type Metric interface {
	Name() string
	Observe(g *fdtd.Grid)
	Value() float64
	Reset()
}

// FieldEnergy tracks the current total field energy and its running peak.
type FieldEnergy struct {
	current float64
	peak    float64
}

func NewFieldEnergy() *FieldEnergy { return &FieldEnergy{} }

func (e *FieldEnergy) Name() string { return "energy" }

func (e *FieldEnergy) Observe(g *fdtd.Grid) {
	e.current = g.TotalEnergy()
	if e.current > e.peak {
		e.peak = e.current
	}
}

func (e *FieldEnergy) Value() float64 { return e.current }

// Peak returns the largest energy seen since the last Reset.
func (e *FieldEnergy) Peak() float64 { return e.peak }

func (e *FieldEnergy) Reset() {
	e.current = 0
	e.peak = 0
}

// EnergyDecay reports the current energy as a fraction of the running peak.
// A CPML-terminated run decays toward zero once waves reach the boundary.
type EnergyDecay struct {
	inner FieldEnergy
}

func NewEnergyDecay() *EnergyDecay { return &EnergyDecay{} }

func (d *EnergyDecay) Name() string { return "energy_decay" }

func (d *EnergyDecay) Observe(g *fdtd.Grid) { d.inner.Observe(g) }

func (d *EnergyDecay) Value() float64 {
	if d.inner.peak <= 0 {
		return 0
	}
	return d.inner.current / d.inner.peak
}

func (d *EnergyDecay) Reset() { d.inner.Reset() }

// Stability reports the fraction of observed steps on which the grid was
// stable. Anything below 1 means the run diverged at some point.
type Stability struct {
	samples    int
	violations int
}

func NewStability() *Stability { return &Stability{} }

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Observe(g *fdtd.Grid) {
	s.samples++
	if !g.IsStable() {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1
	}
	return 1 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.samples = 0
	s.violations = 0
}
