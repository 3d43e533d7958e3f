// Package emwave holds the shared numerical conventions of the solver.
//
// All quantities are expressed in normalized units: the grid spacing, the
// vacuum permittivity and the vacuum permeability are folded to 1, so the
// time step equals the Courant number. Every package downstream (updater,
// boundaries, sources, energy) assumes this normalization.
package emwave

// Normalized lattice constants.
const (
	// Dx is the grid spacing.
	Dx float32 = 1.0
	// Dt is the time step, chosen as 0.5 to sit under the 2D CFL bound 1/sqrt(2).
	Dt float32 = 0.5
	// Courant is c*Dt/Dx with c = 1.
	Courant float32 = Dt / Dx
)
