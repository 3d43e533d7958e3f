// Package fdtd implements the core solver: a 2D TMz Yee lattice advanced by
// an explicit leap-frog update, with per-cell material coefficients, PEC
// masking, pluggable boundary treatment and registered sources.
//
// Memory layout is flat row-major: cell (x, y) lives at index y*w + x.
// Field staggering follows Yee: Ez at integer nodes (i, j), Hx at (i, j+1/2),
// Hy at (i+1/2, j). All per-cell state is allocated once at construction and
// never reallocated, so the slice returned by Ez stays valid for the grid's
// lifetime (its contents are only meaningful between mutating calls).
package fdtd

import (
	"fmt"
	"math"

	"github.com/emwave/fdtdlab/internal/cpml"
	"github.com/emwave/fdtdlab/internal/emwave"
	"github.com/emwave/fdtdlab/internal/materials"
	"github.com/emwave/fdtdlab/internal/sources"
)

// MaxDim bounds grid dimensions; anything larger is rejected at construction.
const MaxDim = 8192

// BoundaryMode selects the lattice truncation.
type BoundaryMode uint8

const (
	// BoundaryNone leaves the outermost ring untouched; it behaves as a
	// perfectly reflecting wall.
	BoundaryNone BoundaryMode = iota
	// BoundaryMur applies the first-order Mur ABC.
	BoundaryMur
	// BoundaryCPML applies the convolutional PML (the default).
	BoundaryCPML
)

// Grid is the simulation state. It is single-threaded and synchronous: no
// method blocks, and a complete Step is a bounded O(w*h) computation.
type Grid struct {
	w, h int

	ez []float32
	hx []float32
	hy []float32

	ca    []float32
	cb    []float32
	epsR  []float32
	matID []materials.ID
	pec   []bool

	boundary BoundaryMode
	pml      *cpml.CPML
	mur      *cpml.Mur

	srcs []sources.Source

	step     uint64
	unstable bool
}

// New creates a zero-initialized vacuum grid of w x h cells with CPML
// boundaries. Boundary coefficients are derived from the fixed time step
// here and never change afterwards.
func New(w, h int) (*Grid, error) {
	if w < 3 || h < 3 || w > MaxDim || h > MaxDim {
		return nil, fmt.Errorf("%w: %dx%d (want 3..%d per side)", emwave.ErrInvalidGeometry, w, h, MaxDim)
	}
	size := w * h
	g := &Grid{
		w:        w,
		h:        h,
		ez:       make([]float32, size),
		hx:       make([]float32, size),
		hy:       make([]float32, size),
		ca:       make([]float32, size),
		cb:       make([]float32, size),
		epsR:     make([]float32, size),
		matID:    make([]materials.ID, size),
		pec:      make([]bool, size),
		boundary: BoundaryCPML,
		pml:      cpml.New(w, h, cpml.DefaultThickness, emwave.Dt),
		mur:      cpml.NewMur(w, h),
	}
	g.ClearMaterials()
	return g, nil
}

// Width returns the number of cells in x.
func (g *Grid) Width() int { return g.w }

// Height returns the number of cells in y.
func (g *Grid) Height() int { return g.h }

// TimeStep returns the monotonic step counter.
func (g *Grid) TimeStep() uint64 { return g.step }

// Boundary returns the active truncation mode.
func (g *Grid) Boundary() BoundaryMode { return g.boundary }

// SetBoundary switches the truncation mode and clears its auxiliary state.
func (g *Grid) SetBoundary(mode BoundaryMode) {
	g.boundary = mode
	g.pml.Reset()
	g.mur.Reset()
}

// CPMLThickness returns the boundary strip width in cells.
func (g *Grid) CPMLThickness() int { return g.pml.Thickness() }

// Ez returns a read-only view of the electric field, row-major. The slice is
// valid only between mutating calls; callers must not retain it across Step,
// Reset or any material edit, and must not write through it.
func (g *Grid) Ez() []float32 { return g.ez }

// FieldAt returns Ez at (x, y), clamping out-of-range coordinates.
func (g *Grid) FieldAt(x, y int) float32 {
	x, y = g.clamp(x, y)
	return g.ez[y*g.w+x]
}

// Reset zeros fields, auxiliary boundary state and the step counter.
// Materials are kept.
func (g *Grid) Reset() {
	zero(g.ez)
	zero(g.hx)
	zero(g.hy)
	g.pml.Reset()
	g.mur.Reset()
	g.step = 0
	g.unstable = false
}

// Step advances the lattice one time step. The stage order is fixed:
// H update, E update, PEC mask, boundary correction, source injection.
// On a grid marked unstable Step is a no-op until Reset.
func (g *Grid) Step() {
	if g.unstable {
		return
	}

	g.updateH()
	if g.boundary == BoundaryCPML {
		g.pml.UpdateH(g.hx, g.hy, g.ez)
	}
	if g.boundary == BoundaryMur {
		// The interior pass never reads the left column or bottom row of Ez;
		// couple the Mur values written there through Hy[0,j] and Hx[i,0].
		w, s := g.w, emwave.Courant
		for j := 1; j < g.h-1; j++ {
			idx := j * w
			g.hy[idx] += s * (g.ez[idx+1] - g.ez[idx])
		}
		for i := 1; i < w-1; i++ {
			g.hx[i] -= s * (g.ez[i+w] - g.ez[i])
		}
	}

	g.updateE()
	g.applyPECMask()

	switch g.boundary {
	case BoundaryCPML:
		g.pml.UpdateE(g.ez, g.hx, g.hy, g.cb)
	case BoundaryMur:
		g.mur.Apply(g.ez)
	}

	for _, s := range g.srcs {
		s.Inject(g.ez, g.step, g.w, g.h)
	}
	// Sources and boundary corrections may have written into masked cells;
	// a PEC cell's Ez must be exactly zero at the end of every step.
	g.applyPECMask()

	g.step++

	if !g.fieldsFinite() {
		g.unstable = true
	}
}

// StepN advances n steps, stopping early if the grid goes unstable.
// It is exactly equivalent to n consecutive Step calls.
func (g *Grid) StepN(n int) {
	for i := 0; i < n && !g.unstable; i++ {
		g.Step()
	}
}

// updateH applies the leap-frog H update on interior nodes:
//
//	Hx[i,j] -= S * (Ez[i,j+1] - Ez[i,j])
//	Hy[i,j] += S * (Ez[i+1,j] - Ez[i,j])
func (g *Grid) updateH() {
	w, s := g.w, emwave.Courant
	for j := 1; j < g.h-1; j++ {
		row := j * w
		for i := 1; i < w-1; i++ {
			idx := row + i
			g.hx[idx] -= s * (g.ez[idx+w] - g.ez[idx])
			g.hy[idx] += s * (g.ez[idx+1] - g.ez[idx])
		}
	}
}

// updateE applies the curl-H update on interior nodes:
//
//	Ez[i,j] = ca*Ez[i,j] + cb*((Hy[i,j]-Hy[i-1,j]) - (Hx[i,j]-Hx[i,j-1]))
func (g *Grid) updateE() {
	w := g.w
	for j := 1; j < g.h-1; j++ {
		row := j * w
		for i := 1; i < w-1; i++ {
			idx := row + i
			curl := (g.hy[idx] - g.hy[idx-1]) - (g.hx[idx] - g.hx[idx-w])
			g.ez[idx] = g.ca[idx]*g.ez[idx] + g.cb[idx]*curl
		}
	}
}

func (g *Grid) applyPECMask() {
	for idx, masked := range g.pec {
		if masked {
			g.ez[idx] = 0
		}
	}
}

// AddSource registers a source; registered sources are applied in order at
// the end of every step.
func (g *Grid) AddSource(s sources.Source) { g.srcs = append(g.srcs, s) }

// ClearSources drops all registered sources.
func (g *Grid) ClearSources() { g.srcs = g.srcs[:0] }

// PlacePulse writes an initial field value at (x, y).
func (g *Grid) PlacePulse(x, y int, amplitude float32) {
	x, y = g.clamp(x, y)
	g.ez[y*g.w+x] = amplitude
}

// AddSoftSource adds one sinusoidal sample at (x, y) for the current step.
func (g *Grid) AddSoftSource(x, y int, frequency, amplitude float64) {
	x, y = g.clamp(x, y)
	v := amplitude * math.Sin(2*math.Pi*frequency*float64(g.step))
	g.ez[y*g.w+x] += float32(v)
}

// InjectPlaneWaveX soft-adds a uniform value along the column x.
func (g *Grid) InjectPlaneWaveX(x int, amplitude float32) {
	if x < 0 || x >= g.w {
		return
	}
	v := amplitude * emwave.Courant
	for y := 1; y < g.h-1; y++ {
		g.ez[y*g.w+x] += v
	}
}

// InjectPlaneWaveY soft-adds a uniform value along the row y.
func (g *Grid) InjectPlaneWaveY(y int, amplitude float32) {
	if y < 0 || y >= g.h {
		return
	}
	v := amplitude * emwave.Courant
	for x := 1; x < g.w-1; x++ {
		g.ez[y*g.w+x] += v
	}
}

// InjectSinusoidalPlaneWave drives the column x with sin(2*pi*f*n) for the
// current step.
func (g *Grid) InjectSinusoidalPlaneWave(x int, frequency float64) {
	v := math.Sin(2 * math.Pi * frequency * float64(g.step))
	g.InjectPlaneWaveX(x, float32(v))
}

// InjectGaussianPlaneWave drives the column x with a Gaussian pulse centered
// at step t0 with width tau.
func (g *Grid) InjectGaussianPlaneWave(x int, t0, tau float64) {
	arg := (float64(g.step) - t0) / tau
	g.InjectPlaneWaveX(x, float32(math.Exp(-arg*arg)))
}

func (g *Grid) clamp(x, y int) (int, int) {
	if x < 0 {
		x = 0
	} else if x >= g.w {
		x = g.w - 1
	}
	if y < 0 {
		y = 0
	} else if y >= g.h {
		y = g.h - 1
	}
	return x, y
}

func zero(s []float32) {
	for i := range s {
		s[i] = 0
	}
}
