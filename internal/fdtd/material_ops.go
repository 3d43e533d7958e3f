package fdtd

import (
	"github.com/emwave/fdtdlab/internal/emwave"
	"github.com/emwave/fdtdlab/internal/materials"
)

// SetCellMaterial assigns a palette material to one cell and rederives its
// update coefficients. Out-of-range coordinates are clamped.
func (g *Grid) SetCellMaterial(x, y int, id materials.ID) {
	x, y = g.clamp(x, y)
	g.setCell(y*g.w+x, id)
}

func (g *Grid) setCell(idx int, id materials.ID) {
	m := materials.ByID(id)
	ca, cb := materials.Coefficients(m, emwave.Dt)
	g.matID[idx] = id
	g.ca[idx] = ca
	g.cb[idx] = cb
	g.epsR[idx] = m.EpsilonR
	g.pec[idx] = m.IsPEC()
	if m.IsPEC() {
		g.ez[idx] = 0
	}
}

// SetMaterialRegion writes generic dielectric coefficients over an inclusive
// rectangle. Corners may be given in any order; coordinates are clamped.
// The palette ID map is not touched: the region carries raw coefficients.
func (g *Grid) SetMaterialRegion(x1, y1, x2, y2 int, epsilonR, sigma float32) error {
	m, err := materials.New(epsilonR, 1, sigma)
	if err != nil {
		return err
	}
	ca, cb := materials.Coefficients(m, emwave.Dt)

	x1, y1 = g.clamp(x1, y1)
	x2, y2 = g.clamp(x2, y2)
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		row := y * g.w
		for x := x1; x <= x2; x++ {
			idx := row + x
			g.ca[idx] = ca
			g.cb[idx] = cb
			g.epsR[idx] = epsilonR
			g.pec[idx] = false
		}
	}
	return nil
}

// SetPEC marks one cell as a perfect electric conductor.
func (g *Grid) SetPEC(x, y int) {
	g.SetCellMaterial(x, y, materials.Metal)
}

// ClearMaterials resets every cell to vacuum and rederives coefficients.
func (g *Grid) ClearMaterials() {
	vac := materials.ByID(materials.Vacuum)
	ca, cb := materials.Coefficients(vac, emwave.Dt)
	for idx := range g.matID {
		g.matID[idx] = materials.Vacuum
		g.ca[idx] = ca
		g.cb[idx] = cb
		g.epsR[idx] = vac.EpsilonR
		g.pec[idx] = false
	}
}

// IsPEC reports whether the cell at (x, y) carries the conductor mask.
func (g *Grid) IsPEC(x, y int) bool {
	x, y = g.clamp(x, y)
	return g.pec[y*g.w+x]
}

// MaterialAt returns the palette ID at (x, y), clamped.
func (g *Grid) MaterialAt(x, y int) materials.ID {
	x, y = g.clamp(x, y)
	return g.matID[y*g.w+x]
}
