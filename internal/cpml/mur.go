package cpml

import "github.com/emwave/fdtdlab/internal/emwave"

// Mur is the first-order Mur absorbing boundary, kept as a cheap fallback
// when the full CPML is disabled. Each outermost row/column is extrapolated
// from the previous step's interior neighbor with coefficient (S-1)/(S+1).
type Mur struct {
	w, h int
	coef float32

	// Previous-step copies of the edge line and its interior neighbor,
	// one pair per boundary.
	prevL, prevR []float32 // 2*h: [edge, inner] interleaved per row
	prevB, prevT []float32 // 2*w
}

// NewMur builds Mur state for a w x h grid.
func NewMur(w, h int) *Mur {
	return &Mur{
		w:     w,
		h:     h,
		coef:  (emwave.Courant - 1) / (emwave.Courant + 1),
		prevL: make([]float32, 2*h),
		prevR: make([]float32, 2*h),
		prevB: make([]float32, 2*w),
		prevT: make([]float32, 2*w),
	}
}

// Reset clears the stored previous lines.
func (m *Mur) Reset() {
	for _, p := range [][]float32{m.prevL, m.prevR, m.prevB, m.prevT} {
		for i := range p {
			p[i] = 0
		}
	}
}

// Apply rewrites the outermost Ez ring from the stored previous lines, then
// snapshots the current lines for the next step. Must run after the E update.
func (m *Mur) Apply(ez []float32) {
	w, h, c := m.w, m.h, m.coef

	for j := 0; j < h; j++ {
		edge := j * w
		ez[edge] = m.prevL[2*j+1] + c*(ez[edge+1]-m.prevL[2*j])
		edge = j*w + w - 1
		ez[edge] = m.prevR[2*j+1] + c*(ez[edge-1]-m.prevR[2*j])
	}
	for i := 0; i < w; i++ {
		ez[i] = m.prevB[2*i+1] + c*(ez[w+i]-m.prevB[2*i])
		top := (h-1)*w + i
		ez[top] = m.prevT[2*i+1] + c*(ez[top-w]-m.prevT[2*i])
	}

	for j := 0; j < h; j++ {
		m.prevL[2*j] = ez[j*w]
		m.prevL[2*j+1] = ez[j*w+1]
		m.prevR[2*j] = ez[j*w+w-1]
		m.prevR[2*j+1] = ez[j*w+w-2]
	}
	for i := 0; i < w; i++ {
		m.prevB[2*i] = ez[i]
		m.prevB[2*i+1] = ez[w+i]
		m.prevT[2*i] = ez[(h-1)*w+i]
		m.prevT[2*i+1] = ez[(h-2)*w+i]
	}
}
