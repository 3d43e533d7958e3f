package fdtd

import "github.com/emwave/fdtdlab/internal/materials"

// Raster editing: filled shapes written into the material map. All painters
// clamp to the grid, normalize inverted corners and never fail.

// PaintRect fills the inclusive rectangle spanned by the two corners.
func (g *Grid) PaintRect(x1, y1, x2, y2 int, id materials.ID) {
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
			g.setCell(row+x, id)
		}
	}
}

// PaintCircle fills the disk of the given radius around (cx, cy), boundary
// included. Spans are derived with the midpoint circle walk.
func (g *Grid) PaintCircle(cx, cy, radius int, id materials.ID) {
	if radius < 0 {
		return
	}
	if radius == 0 {
		g.SetCellMaterial(cx, cy, id)
		return
	}

	extent := make([]int, radius+1)
	x, y := radius, 0
	err := 1 - radius
	for x >= y {
		if x > extent[y] {
			extent[y] = x
		}
		if y > extent[x] {
			extent[x] = y
		}
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}

	for dy := 0; dy <= radius; dy++ {
		g.hspan(cx-extent[dy], cx+extent[dy], cy-dy, id)
		if dy != 0 {
			g.hspan(cx-extent[dy], cx+extent[dy], cy+dy, id)
		}
	}
}

// PaintEllipse fills the axis-aligned ellipse with semi-axes (rx, ry) around
// (cx, cy) using the midpoint ellipse walk.
func (g *Grid) PaintEllipse(cx, cy, rx, ry int, id materials.ID) {
	if rx < 0 || ry < 0 {
		return
	}
	if rx == 0 || ry == 0 {
		g.PaintRect(cx-rx, cy-ry, cx+rx, cy+ry, id)
		return
	}

	extent := make([]int, ry+1)
	rx2, ry2 := rx*rx, ry*ry

	// Region 1: gradient above -1, step in x.
	x, y := 0, ry
	d1 := ry2 - rx2*ry + rx2/4
	dx, dy := 2*ry2*x, 2*rx2*y
	for dx < dy {
		if x > extent[y] {
			extent[y] = x
		}
		if d1 < 0 {
			x++
			dx += 2 * ry2
			d1 += dx + ry2
		} else {
			x++
			y--
			dx += 2 * ry2
			dy -= 2 * rx2
			d1 += dx - dy + ry2
		}
	}

	// Region 2: step in y down to the equator.
	d2 := ry2*(2*x+1)*(2*x+1)/4 + rx2*(y-1)*(y-1) - rx2*ry2
	for y >= 0 {
		if x > extent[y] {
			extent[y] = x
		}
		if d2 > 0 {
			y--
			dy -= 2 * rx2
			d2 += rx2 - dy
		} else {
			y--
			x++
			dx += 2 * ry2
			dy -= 2 * rx2
			d2 += dx - dy + rx2
		}
	}

	for dyy := 0; dyy <= ry; dyy++ {
		g.hspan(cx-extent[dyy], cx+extent[dyy], cy-dyy, id)
		if dyy != 0 {
			g.hspan(cx-extent[dyy], cx+extent[dyy], cy+dyy, id)
		}
	}
}

// PaintLine draws a Bresenham line stamped with a square brush of half-size
// brush/2 at every step.
func (g *Grid) PaintLine(x1, y1, x2, y2, brush int, id materials.ID) {
	half := brush / 2
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy

	x, y := x1, y1
	for {
		g.PaintRect(x-half, y-half, x+half, y+half, id)
		if x == x2 && y == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			if x == x2 {
				return
			}
			err += dy
			x += sx
		}
		if e2 <= dx {
			if y == y2 {
				return
			}
			err += dx
			y += sy
		}
	}
}

// hspan fills the inclusive horizontal run [xa, xb] on row y, clamped.
func (g *Grid) hspan(xa, xb, y int, id materials.ID) {
	if y < 0 || y >= g.h {
		return
	}
	if xa < 0 {
		xa = 0
	}
	if xb >= g.w {
		xb = g.w - 1
	}
	row := y * g.w
	for x := xa; x <= xb; x++ {
		g.setCell(row+x, id)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
