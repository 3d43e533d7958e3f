// Package cpml implements the convolutional perfectly matched layer that
// truncates the lattice, plus a first-order Mur ABC fallback.
//
// The CPML follows the stretched-coordinate recursive-convolution form of
// Roden & Gedney (2000): each field derivative crossing a boundary normal
// carries an auxiliary psi accumulator stored only inside the boundary
// strips. Coefficients are graded polynomially from the interior interface
// (weak) to the outer wall (strong).
package cpml

import (
	"math"

	"github.com/emwave/fdtdlab/internal/emwave"
)

// DefaultThickness is the boundary strip width in cells.
const DefaultThickness = 10

const (
	gradingOrder = 3.0
	kappaMax     = 15.0
	alphaMax     = 0.05
	// sigmaMax = 0.8*(order+1)/(eta0*dx) with eta0 = dx = 1.
	sigmaMax = 0.8 * (gradingOrder + 1)
)

// profile holds the per-layer recursive-convolution coefficients for one
// field family. Index d runs from the interior interface (d=0) to the outer
// wall (d=thickness-1).
type profile struct {
	b     []float32
	c     []float32
	kappa []float32
}

func newProfile(thickness int, dt float32) profile {
	p := profile{
		b:     make([]float32, thickness),
		c:     make([]float32, thickness),
		kappa: make([]float32, thickness),
	}
	for d := 0; d < thickness; d++ {
		x := (float64(d) + 0.5) / float64(thickness)
		sigma := sigmaMax * math.Pow(x, gradingOrder)
		kappa := 1 + (kappaMax-1)*math.Pow(x, gradingOrder)
		alpha := alphaMax * (1 - x)

		denom := sigma*kappa + kappa*kappa*alpha
		b := math.Exp(-(sigma/kappa + alpha) * float64(dt))
		p.b[d] = float32(b)
		if denom > 1e-12 {
			p.c[d] = float32(sigma * (b - 1) / denom)
		}
		p.kappa[d] = float32(kappa)
	}
	return p
}

// CPML keeps the auxiliary psi state for the four boundary strips of one grid.
// Coefficients are derived once at construction and never change; Reset only
// clears the psi accumulators.
type CPML struct {
	thickness int
	w, h      int

	e profile
	m profile

	// E-field accumulators: psi_Ezx on the x-normal strips (thickness x h),
	// psi_Ezy on the y-normal strips (w x thickness).
	psiEzxL, psiEzxR []float32
	psiEzyB, psiEzyT []float32

	// H-field accumulators: psi_Hyx tracks dEz/dx for Hy, psi_Hxy tracks
	// dEz/dy for Hx.
	psiHyxL, psiHyxR []float32
	psiHxyB, psiHxyT []float32
}

// New builds CPML state for a w x h grid. The strip thickness is clamped so
// opposite strips never overlap.
func New(w, h, thickness int, dt float32) *CPML {
	if thickness < 1 {
		thickness = DefaultThickness
	}
	if t := w / 4; thickness > t && t > 0 {
		thickness = t
	}
	if t := h / 4; thickness > t && t > 0 {
		thickness = t
	}
	return &CPML{
		thickness: thickness,
		w:         w,
		h:         h,
		e:         newProfile(thickness, dt),
		m:         newProfile(thickness, dt),
		psiEzxL:   make([]float32, thickness*h),
		psiEzxR:   make([]float32, thickness*h),
		psiEzyB:   make([]float32, w*thickness),
		psiEzyT:   make([]float32, w*thickness),
		psiHyxL:   make([]float32, thickness*h),
		psiHyxR:   make([]float32, thickness*h),
		psiHxyB:   make([]float32, w*thickness),
		psiHxyT:   make([]float32, w*thickness),
	}
}

// Thickness returns the strip width in cells.
func (c *CPML) Thickness() int { return c.thickness }

// Reset zeros the psi accumulators; the graded coefficients are retained.
func (c *CPML) Reset() {
	for _, psi := range [][]float32{
		c.psiEzxL, c.psiEzxR, c.psiEzyB, c.psiEzyT,
		c.psiHyxL, c.psiHyxR, c.psiHxyB, c.psiHxyT,
	} {
		for i := range psi {
			psi[i] = 0
		}
	}
}

// UpdateE applies the CPML correction to Ez inside the strips. It must run
// after the interior E update: the interior pass already added cb*curlH, so
// the strips only receive the (1/kappa - 1) stretch term plus the psi memory.
func (c *CPML) UpdateE(ez, hx, hy, cb []float32) {
	t := c.thickness
	w, h := c.w, c.h

	// Left strip: dHy/dx crosses the x-normal.
	for j := 1; j < h-1; j++ {
		for i := 1; i < t; i++ {
			idx := j*w + i
			pi := i*h + j
			d := t - 1 - i
			dhy := hy[idx] - hy[idx-1]
			c.psiEzxL[pi] = c.e.b[d]*c.psiEzxL[pi] + c.e.c[d]*dhy
			ez[idx] += cb[idx] * (dhy*(1/c.e.kappa[d]-1) + c.psiEzxL[pi])
		}
	}

	// Right strip.
	for j := 1; j < h-1; j++ {
		for k := 0; k < t-1; k++ {
			i := w - t + k
			idx := j*w + i
			pi := k*h + j
			d := k
			dhy := hy[idx] - hy[idx-1]
			c.psiEzxR[pi] = c.e.b[d]*c.psiEzxR[pi] + c.e.c[d]*dhy
			ez[idx] += cb[idx] * (dhy*(1/c.e.kappa[d]-1) + c.psiEzxR[pi])
		}
	}

	// Bottom strip: dHx/dy crosses the y-normal (enters curl with minus sign).
	for j := 1; j < t; j++ {
		d := t - 1 - j
		for i := 1; i < w-1; i++ {
			idx := j*w + i
			pi := i*t + j
			dhx := hx[idx] - hx[idx-w]
			c.psiEzyB[pi] = c.e.b[d]*c.psiEzyB[pi] + c.e.c[d]*dhx
			ez[idx] -= cb[idx] * (dhx*(1/c.e.kappa[d]-1) + c.psiEzyB[pi])
		}
	}

	// Top strip.
	for k := 0; k < t-1; k++ {
		j := h - t + k
		d := k
		for i := 1; i < w-1; i++ {
			idx := j*w + i
			pi := i*t + k
			dhx := hx[idx] - hx[idx-w]
			c.psiEzyT[pi] = c.e.b[d]*c.psiEzyT[pi] + c.e.c[d]*dhx
			ez[idx] -= cb[idx] * (dhx*(1/c.e.kappa[d]-1) + c.psiEzyT[pi])
		}
	}
}

// UpdateH applies the CPML correction to Hx and Hy inside the strips,
// after the interior H update.
func (c *CPML) UpdateH(hx, hy, ez []float32) {
	t := c.thickness
	w, h := c.w, c.h
	s := emwave.Courant

	// Left strip: Hy carries dEz/dx.
	for j := 1; j < h-1; j++ {
		for i := 1; i < t; i++ {
			idx := j*w + i
			pi := i*h + j
			d := t - 1 - i
			dez := ez[idx+1] - ez[idx]
			c.psiHyxL[pi] = c.m.b[d]*c.psiHyxL[pi] + c.m.c[d]*dez
			hy[idx] += s * (dez*(1/c.m.kappa[d]-1) + c.psiHyxL[pi])
		}
	}

	// Right strip.
	for j := 1; j < h-1; j++ {
		for k := 0; k < t-1; k++ {
			i := w - t + k
			idx := j*w + i
			pi := k*h + j
			d := k
			dez := ez[idx+1] - ez[idx]
			c.psiHyxR[pi] = c.m.b[d]*c.psiHyxR[pi] + c.m.c[d]*dez
			hy[idx] += s * (dez*(1/c.m.kappa[d]-1) + c.psiHyxR[pi])
		}
	}

	// Bottom strip: Hx carries dEz/dy.
	for j := 1; j < t; j++ {
		d := t - 1 - j
		for i := 1; i < w-1; i++ {
			idx := j*w + i
			pi := i*t + j
			dez := ez[idx+w] - ez[idx]
			c.psiHxyB[pi] = c.m.b[d]*c.psiHxyB[pi] + c.m.c[d]*dez
			hx[idx] -= s * (dez*(1/c.m.kappa[d]-1) + c.psiHxyB[pi])
		}
	}

	// Top strip.
	for k := 0; k < t-1; k++ {
		j := h - t + k
		d := k
		for i := 1; i < w-1; i++ {
			idx := j*w + i
			pi := i*t + k
			dez := ez[idx+w] - ez[idx]
			c.psiHxyT[pi] = c.m.b[d]*c.psiHxyT[pi] + c.m.c[d]*dez
			hx[idx] -= s * (dez*(1/c.m.kappa[d]-1) + c.psiHxyT[pi])
		}
	}
}
