// Package scenario builds the catalogued preset structures. Each preset
// paints materials onto a grid through the raster API; fields and sources are
// left to the caller.
package scenario

import (
	"math"

	"github.com/emwave/fdtdlab/internal/fdtd"
	"github.com/emwave/fdtdlab/internal/materials"
)

// ID selects a preset.
type ID int

const (
	Empty ID = iota
	DoubleSlit
	Waveguide
	ParabolicReflector
	TIRPrism
	PhotonicCrystal
	Lens
	FresnelLens
)

// Count is the number of presets.
const Count = int(FresnelLens) + 1

var names = [...]string{
	Empty:              "empty",
	DoubleSlit:         "double-slit",
	Waveguide:          "waveguide",
	ParabolicReflector: "parabolic-reflector",
	TIRPrism:           "tir-prism",
	PhotonicCrystal:    "photonic-crystal",
	Lens:               "lens",
	FresnelLens:        "fresnel-lens",
}

var descriptions = [...]string{
	Empty:              "empty vacuum grid",
	DoubleSlit:         "wave diffraction through two slits",
	Waveguide:          "guided wave in a bent dielectric",
	ParabolicReflector: "focusing waves with a curved metal reflector",
	TIRPrism:           "light trapping in a crystal prism",
	PhotonicCrystal:    "periodic dielectric lattice",
	Lens:               "convex lens focusing",
	FresnelLens:        "fresnel zone plate focusing",
}

// Name returns the preset's CLI name.
func (id ID) Name() string {
	if id < 0 || int(id) >= len(names) {
		return "unknown"
	}
	return names[id]
}

// Description returns a one-line summary.
func (id ID) Description() string {
	if id < 0 || int(id) >= len(descriptions) {
		return ""
	}
	return descriptions[id]
}

// ByName resolves a CLI name; the second result is false for unknown names.
func ByName(name string) (ID, bool) {
	for i, n := range names {
		if n == name {
			return ID(i), true
		}
	}
	return 0, false
}

// List returns all preset IDs in order.
func List() []ID {
	ids := make([]ID, Count)
	for i := range ids {
		ids[i] = ID(i)
	}
	return ids
}

// Apply clears the grid's materials and paints the preset's structures.
func Apply(g *fdtd.Grid, id ID) {
	g.ClearMaterials()
	switch id {
	case DoubleSlit:
		doubleSlit(g)
	case Waveguide:
		waveguide(g)
	case ParabolicReflector:
		parabolicReflector(g)
	case TIRPrism:
		tirPrism(g)
	case PhotonicCrystal:
		photonicCrystal(g)
	case Lens:
		lens(g)
	case FresnelLens:
		fresnelLens(g)
	}
}

// doubleSlit: a metal wall a third in from the left with two slit openings.
func doubleSlit(g *fdtd.Grid) {
	w, h := g.Width(), g.Height()
	wallX := w / 3
	slitWidth := max(2, h/64)
	separation := max(slitWidth*3, h/6)
	y1 := h/2 - separation/2 - slitWidth/2
	y2 := h/2 + separation/2 - slitWidth/2

	g.PaintRect(wallX, 0, wallX+2, h-1, materials.Metal)
	g.PaintRect(wallX, y1, wallX+2, y1+slitWidth-1, materials.Vacuum)
	g.PaintRect(wallX, y2, wallX+2, y2+slitWidth-1, materials.Vacuum)
}

// waveguide: a glass core running in from the left, bending 90 degrees and
// exiting upward.
func waveguide(g *fdtd.Grid) {
	w, h := g.Width(), g.Height()
	core := max(4, h/25)
	yc := h / 2
	bendR := h / 4
	bendCX := w / 2
	bendCY := yc - bendR

	g.PaintRect(w/10, yc-core/2, bendCX, yc+core/2, materials.Glass)
	for deg := 0; deg <= 90; deg++ {
		rad := float64(deg) * math.Pi / 180
		for r := bendR - core/2; r <= bendR+core/2; r++ {
			x := bendCX + int(float64(r)*math.Sin(rad))
			y := bendCY + int(float64(r)*math.Cos(rad))
			g.SetCellMaterial(x, y, materials.Glass)
		}
	}
	g.PaintRect(bendCX+bendR-core/2, bendCY-h/5, bendCX+bendR+core/2, bendCY, materials.Glass)
}

// parabolicReflector: x = vertex - a*dy^2, opening toward the left.
func parabolicReflector(g *fdtd.Grid) {
	w, h := g.Width(), g.Height()
	vertexX := w - w/10
	a := 1.28 / float64(h)

	for y := h / 4; y < h*3/4; y++ {
		dy := float64(y) - float64(h)/2
		x := vertexX - int(a*dy*dy)
		if x > 0 {
			g.PaintRect(x, y, x+2, y, materials.Metal)
		}
	}
}

// tirPrism: a right triangle of crystal (eps_r = 4) with the hypotenuse facing the source.
func tirPrism(g *fdtd.Grid) {
	w, h := g.Width(), g.Height()
	left, right := w/3, w*2/3
	top, bottom := h/4, h*3/4

	for y := top; y < bottom; y++ {
		progress := float64(y-top) / float64(bottom-top)
		xEnd := left + int(float64(right-left)*progress)
		if xEnd > left {
			g.PaintRect(left, y, xEnd-1, y, materials.Crystal)
		}
	}
}

// photonicCrystal: a crystal slab perforated by a staggered lattice of
// vacuum holes.
func photonicCrystal(g *fdtd.Grid) {
	w, h := g.Width(), g.Height()
	slabTop, slabBottom := h/3, h*2/3
	margin := w / 5
	g.PaintRect(margin, slabTop, w-margin-1, slabBottom-1, materials.Crystal)

	period := max(8, w/25)
	holeR := max(2, period/3)
	for row := 0; ; row++ {
		cy := slabTop + holeR + 2 + row*period
		if cy >= slabBottom-holeR {
			break
		}
		for col := 0; ; col++ {
			cx := margin + holeR + 2 + col*period + (row%2)*(period/2)
			if cx >= w-margin-holeR {
				break
			}
			g.PaintCircle(cx, cy, holeR, materials.Vacuum)
		}
	}
}

// lens: a biconvex glass lens formed by two circular arcs.
func lens(g *fdtd.Grid) {
	w, h := g.Width(), g.Height()
	lensX := w / 2
	curvR := float64(h) * 0.6
	thickness := float64(h) / 17

	for y := h / 4; y < h*3/4; y++ {
		dy := float64(y) - float64(h)/2
		if dy*dy >= curvR*curvR {
			continue
		}
		arc := math.Sqrt(curvR*curvR - dy*dy)
		sag := curvR - arc
		left := float64(lensX) - thickness/2 + sag
		right := float64(lensX) + thickness/2 - sag
		if right > left {
			g.PaintRect(int(left), y, int(right), y, materials.Glass)
		}
	}
}

// fresnelLens: concentric glass rings in the even Fresnel zones,
// r_n = sqrt(n*f*lambda).
func fresnelLens(g *fdtd.Grid) {
	w, h := g.Width(), g.Height()
	centerX := w / 4
	centerY := h / 2
	thickness := max(3, w/85)
	focal := float64(h) * 0.8
	lambda := 20.0

	for y := 0; y < h; y++ {
		r := math.Abs(float64(y - centerY))
		if r >= float64(h)/3 {
			continue
		}
		n := int(r * r / (focal * lambda))
		if n%2 == 0 && n < 20 {
			g.PaintRect(centerX, y, centerX+thickness-1, y, materials.Glass)
		}
	}
}
