// Package viz renders field state for the terminal: a downsampled Ez
// intensity view and asciigraph-backed series plots.
package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ramp maps normalized |Ez| to display characters, weakest first.
var ramp = []rune(" .:-=+*#%@")

var (
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	pecStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// FieldView configures Render.
type FieldView struct {
	Cols, Rows int
	// PECAt, when non-nil, marks conductor cells so painted structures stay
	// visible under the field.
	PECAt func(x, y int) bool
}

// Render downsamples a row-major w x h field into Cols x Rows terminal
// cells. Each cell shows the dominant sample of its block: intensity by
// magnitude, color by sign, conductors as solid blocks.
func (fv FieldView) Render(ez []float32, w, h int) string {
	cols, rows := fv.Cols, fv.Rows
	if cols < 1 || rows < 1 || w < 1 || h < 1 {
		return ""
	}
	if cols > w {
		cols = w
	}
	if rows > h {
		rows = h
	}

	// Normalize against the current max magnitude so quiet frames still show
	// structure.
	var peak float32
	for _, v := range ez {
		if a := abs32(v); a > peak {
			peak = a
		}
	}
	if peak < 1e-6 {
		peak = 1e-6
	}

	var b strings.Builder
	b.Grow(rows * (cols + 1))
	for r := 0; r < rows; r++ {
		y0, y1 := r*h/rows, (r+1)*h/rows
		for c := 0; c < cols; c++ {
			x0, x1 := c*w/cols, (c+1)*w/cols
			if fv.PECAt != nil && blockHasPEC(fv.PECAt, x0, x1, y0, y1) {
				b.WriteString(pecStyle.Render("█"))
				continue
			}
			var dominant float32
			for y := y0; y < y1; y++ {
				row := y * w
				for x := x0; x < x1; x++ {
					if v := ez[row+x]; abs32(v) > abs32(dominant) {
						dominant = v
					}
				}
			}
			level := int(abs32(dominant) / peak * float32(len(ramp)-1))
			if level >= len(ramp) {
				level = len(ramp) - 1
			}
			ch := string(ramp[level])
			switch {
			case level == 0:
				b.WriteString(ch)
			case dominant >= 0:
				b.WriteString(positiveStyle.Render(ch))
			default:
				b.WriteString(negativeStyle.Render(ch))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func blockHasPEC(pecAt func(x, y int) bool, x0, x1, y0, y1 int) bool {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if pecAt(x, y) {
				return true
			}
		}
	}
	return false
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
