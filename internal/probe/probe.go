// Package probe provides the time-domain field probe and the Hann-windowed
// power-spectrum analyzer that consumes its samples.
package probe

import (
	"fmt"

	"github.com/emwave/fdtdlab/internal/emwave"
)

// Probe records Ez at a fixed cell into a power-of-two ring buffer.
type Probe struct {
	x, y     int
	buf      []float32
	writePos int
}

func powerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

// NewProbe builds a probe at (x, y) with a ring of the given size, which must
// be a power of two.
func NewProbe(x, y, size int) (*Probe, error) {
	if !powerOfTwo(size) {
		return nil, fmt.Errorf("%w: probe buffer size %d is not a power of two", emwave.ErrInvalidParameter, size)
	}
	return &Probe{x: x, y: y, buf: make([]float32, size)}, nil
}

// Position returns the probed cell.
func (p *Probe) Position() (x, y int) { return p.x, p.y }

// Len returns the ring capacity.
func (p *Probe) Len() int { return len(p.buf) }

// WritePos returns the next write index into the ring.
func (p *Probe) WritePos() int { return p.writePos }

// Record samples Ez at the probed cell. ez is a row-major field of width w;
// a probe outside the field records nothing.
func (p *Probe) Record(ez []float32, w int) {
	if p.x < 0 || p.y < 0 || p.x >= w {
		return
	}
	idx := p.y*w + p.x
	if idx >= len(ez) {
		return
	}
	p.buf[p.writePos] = ez[idx]
	p.writePos = (p.writePos + 1) & (len(p.buf) - 1)
}

// LastValue returns the most recently recorded sample.
func (p *Probe) LastValue() float32 {
	prev := (p.writePos - 1 + len(p.buf)) & (len(p.buf) - 1)
	return p.buf[prev]
}

// Snapshot returns the ring contents in chronological order, oldest first.
func (p *Probe) Snapshot() []float32 {
	out := make([]float32, len(p.buf))
	n := copy(out, p.buf[p.writePos:])
	copy(out[n:], p.buf[:p.writePos])
	return out
}

// SetPosition moves the probe and clears the ring.
func (p *Probe) SetPosition(x, y int) {
	p.x, p.y = x, y
	p.Clear()
}

// Clear zeros the ring and rewinds the write position.
func (p *Probe) Clear() {
	for i := range p.buf {
		p.buf[i] = 0
	}
	p.writePos = 0
}
