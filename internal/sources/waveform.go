// Package sources implements the excitation model: time-domain waveforms and
// the four source geometries (point, plane wave, Gaussian beam, phased array).
//
// Sources are driven by the discrete step counter and a normalized frequency
// in cycles per step, which must lie in (0, 0.5) by the Nyquist limit. The
// geometry set is closed; dispatch is a single switch at evaluation time.
package sources

import (
	"fmt"
	"math"

	"github.com/emwave/fdtdlab/internal/emwave"
)

// Shape selects the waveform evaluated per step.
type Shape uint8

const (
	Sinusoidal Shape = iota
	Gaussian
	ModulatedGaussian
	Ricker
	Step
)

// Waveform is a closed tagged union over the supported excitation shapes.
type Waveform struct {
	shape     Shape
	frequency float64
	center    float64 // pulse center, in steps
	tau       float64 // pulse width, in steps
	amplitude float64
}

func checkFrequency(f float64) error {
	if f <= 0 || f >= 0.5 {
		return fmt.Errorf("%w: frequency %v outside (0, 0.5)", emwave.ErrInvalidParameter, f)
	}
	return nil
}

func checkTau(tau float64) error {
	if tau <= 0 {
		return fmt.Errorf("%w: pulse width %v must be positive", emwave.ErrInvalidParameter, tau)
	}
	return nil
}

// NewSinusoidal builds A*sin(2*pi*f*n).
func NewSinusoidal(frequency, amplitude float64) (Waveform, error) {
	if err := checkFrequency(frequency); err != nil {
		return Waveform{}, err
	}
	return Waveform{shape: Sinusoidal, frequency: frequency, amplitude: amplitude}, nil
}

// NewGaussian builds A*exp(-((n-n0)/tau)^2).
func NewGaussian(center, tau, amplitude float64) (Waveform, error) {
	if err := checkTau(tau); err != nil {
		return Waveform{}, err
	}
	return Waveform{shape: Gaussian, center: center, tau: tau, amplitude: amplitude}, nil
}

// NewModulatedGaussian builds the sinusoid under a Gaussian envelope.
func NewModulatedGaussian(frequency, center, tau, amplitude float64) (Waveform, error) {
	if err := checkFrequency(frequency); err != nil {
		return Waveform{}, err
	}
	if err := checkTau(tau); err != nil {
		return Waveform{}, err
	}
	return Waveform{
		shape:     ModulatedGaussian,
		frequency: frequency,
		center:    center,
		tau:       tau,
		amplitude: amplitude,
	}, nil
}

// NewRicker builds A*(1 - 2*pi^2*(f*(n-n0))^2)*exp(-pi^2*(f*(n-n0))^2).
func NewRicker(frequency, center, amplitude float64) (Waveform, error) {
	if err := checkFrequency(frequency); err != nil {
		return Waveform{}, err
	}
	return Waveform{shape: Ricker, frequency: frequency, center: center, amplitude: amplitude}, nil
}

// NewStep builds a step turning on at n0.
func NewStep(center, amplitude float64) Waveform {
	return Waveform{shape: Step, center: center, amplitude: amplitude}
}

// Shape returns the waveform's shape tag.
func (w Waveform) Shape() Shape { return w.shape }

// Amplitude returns the peak amplitude.
func (w Waveform) Amplitude() float64 { return w.amplitude }

// Eval returns the drive value at step n.
func (w Waveform) Eval(n uint64) float32 {
	t := float64(n)
	switch w.shape {
	case Sinusoidal:
		return float32(w.amplitude * math.Sin(2*math.Pi*w.frequency*t))
	case Gaussian:
		arg := (t - w.center) / w.tau
		return float32(w.amplitude * math.Exp(-arg*arg))
	case ModulatedGaussian:
		arg := (t - w.center) / w.tau
		env := math.Exp(-arg * arg)
		return float32(w.amplitude * env * math.Sin(2*math.Pi*w.frequency*t))
	case Ricker:
		u := math.Pi * math.Pi * w.frequency * w.frequency * (t - w.center) * (t - w.center)
		return float32(w.amplitude * (1 - 2*u) * math.Exp(-u))
	case Step:
		if t >= w.center {
			return float32(w.amplitude)
		}
		return 0
	}
	return 0
}
