package sources

import (
	"fmt"
	"math"

	"github.com/emwave/fdtdlab/internal/emwave"
)

// Mode selects how a source writes into the field.
type Mode uint8

const (
	// Soft adds the drive value; incident waves pass through the source.
	Soft Mode = iota
	// Hard replaces the field value; the source reflects incident waves.
	Hard
)

// Source injects a drive into Ez at step n. Implementations never allocate
// and never touch cells outside [0,w) x [0,h).
type Source interface {
	Inject(ez []float32, n uint64, w, h int)
}

func write(ez []float32, idx int, v float32, mode Mode) {
	if mode == Hard {
		ez[idx] = v
	} else {
		ez[idx] += v
	}
}

// PointSource drives a single cell.
type PointSource struct {
	X, Y int
	Wave Waveform
	Mode Mode
}

// NewPoint builds a point source at (x, y).
func NewPoint(x, y int, wave Waveform, mode Mode) *PointSource {
	return &PointSource{X: x, Y: y, Wave: wave, Mode: mode}
}

func (s *PointSource) Inject(ez []float32, n uint64, w, h int) {
	if s.X < 0 || s.X >= w || s.Y < 0 || s.Y >= h {
		return
	}
	write(ez, s.Y*w+s.X, s.Wave.Eval(n), s.Mode)
}

// PlaneWaveSource drives a full line of cells at constant x (vertical) or
// constant y (horizontal). Injection is soft-line: the CPML on the far side
// absorbs the backward half-space wave.
type PlaneWaveSource struct {
	Pos      int
	Vertical bool
	Wave     Waveform
	Mode     Mode
	scale    float32
}

// NewPlaneWaveVertical builds a plane wave along the column x = pos.
func NewPlaneWaveVertical(pos int, wave Waveform, mode Mode) *PlaneWaveSource {
	return &PlaneWaveSource{Pos: pos, Vertical: true, Wave: wave, Mode: mode, scale: emwave.Courant}
}

// NewPlaneWaveHorizontal builds a plane wave along the row y = pos.
func NewPlaneWaveHorizontal(pos int, wave Waveform, mode Mode) *PlaneWaveSource {
	return &PlaneWaveSource{Pos: pos, Vertical: false, Wave: wave, Mode: mode, scale: emwave.Courant}
}

func (s *PlaneWaveSource) Inject(ez []float32, n uint64, w, h int) {
	v := s.Wave.Eval(n) * s.scale
	if s.Vertical {
		if s.Pos < 0 || s.Pos >= w {
			return
		}
		for y := 1; y < h-1; y++ {
			write(ez, y*w+s.Pos, v, s.Mode)
		}
		return
	}
	if s.Pos < 0 || s.Pos >= h {
		return
	}
	for x := 1; x < w-1; x++ {
		write(ez, s.Pos*w+x, v, s.Mode)
	}
}

// GaussianBeamSource drives a vertical line with a Gaussian transverse
// amplitude profile exp(-2*(y-yc)^2/waist^2).
type GaussianBeamSource struct {
	X       int
	YCenter int
	Waist   float64
	Wave    Waveform
	Mode    Mode
	scale   float32
}

// NewGaussianBeam builds a beam source at column x centered on yCenter.
func NewGaussianBeam(x, yCenter int, waist float64, wave Waveform, mode Mode) (*GaussianBeamSource, error) {
	if waist <= 0 {
		return nil, fmt.Errorf("%w: beam waist %v must be positive", emwave.ErrInvalidParameter, waist)
	}
	return &GaussianBeamSource{
		X:       x,
		YCenter: yCenter,
		Waist:   waist,
		Wave:    wave,
		Mode:    mode,
		scale:   emwave.Courant,
	}, nil
}

func (s *GaussianBeamSource) Inject(ez []float32, n uint64, w, h int) {
	if s.X < 0 || s.X >= w {
		return
	}
	drive := float64(s.Wave.Eval(n)) * float64(s.scale)
	w2 := s.Waist * s.Waist
	for y := 1; y < h-1; y++ {
		dy := float64(y - s.YCenter)
		v := drive * math.Exp(-2*dy*dy/w2)
		write(ez, y*w+s.X, float32(v), s.Mode)
	}
}

// Element is one radiator of a phased array.
type Element struct {
	X, Y      int
	Phase     float64
	Amplitude float64
}

// PhasedArraySource drives N point radiators with per-element amplitude and
// phase; a progressive phase shift steers the emitted beam.
type PhasedArraySource struct {
	Elements  []Element
	Frequency float64
	Mode      Mode
	scale     float32
}

// NewLinearArray builds a vertical array at column x: n elements starting at
// yStart, spaced `spacing` cells apart.
func NewLinearArray(x, yStart, n, spacing int, frequency float64, mode Mode) (*PhasedArraySource, error) {
	if err := checkFrequency(frequency); err != nil {
		return nil, err
	}
	if n < 1 || spacing < 1 {
		return nil, fmt.Errorf("%w: array needs n>=1 elements with spacing>=1", emwave.ErrInvalidParameter)
	}
	elems := make([]Element, n)
	for i := range elems {
		elems[i] = Element{X: x, Y: yStart + i*spacing, Amplitude: 1}
	}
	return &PhasedArraySource{
		Elements:  elems,
		Frequency: frequency,
		Mode:      mode,
		scale:     emwave.Courant,
	}, nil
}

// SetElementPhase sets one element's phase offset in radians.
func (s *PhasedArraySource) SetElementPhase(i int, phase float64) {
	if i >= 0 && i < len(s.Elements) {
		s.Elements[i].Phase = phase
	}
}

// SetProgressivePhase applies phi_k = k*dphi across the array, which steers
// the main lobe to arcsin(dphi/(2*pi*f*d)).
func (s *PhasedArraySource) SetProgressivePhase(dphi float64) {
	for i := range s.Elements {
		s.Elements[i].Phase = float64(i) * dphi
	}
}

// ElementCount returns the number of radiators.
func (s *PhasedArraySource) ElementCount() int { return len(s.Elements) }

func (s *PhasedArraySource) Inject(ez []float32, n uint64, w, h int) {
	omega := 2 * math.Pi * s.Frequency
	t := float64(n)
	for _, e := range s.Elements {
		if e.X < 0 || e.X >= w || e.Y < 0 || e.Y >= h {
			continue
		}
		v := e.Amplitude * math.Sin(omega*t+e.Phase) * float64(s.scale)
		write(ez, e.Y*w+e.X, float32(v), s.Mode)
	}
}
