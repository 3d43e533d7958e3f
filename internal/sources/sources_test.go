package sources

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emwave/fdtdlab/internal/emwave"
)

func TestWaveformValidation(t *testing.T) {
	_, err := NewSinusoidal(0, 1)
	assert.ErrorIs(t, err, emwave.ErrInvalidParameter)
	_, err = NewSinusoidal(0.5, 1)
	assert.ErrorIs(t, err, emwave.ErrInvalidParameter)
	_, err = NewGaussian(50, 0, 1)
	assert.ErrorIs(t, err, emwave.ErrInvalidParameter)
	_, err = NewModulatedGaussian(0.7, 50, 10, 1)
	assert.ErrorIs(t, err, emwave.ErrInvalidParameter)
	_, err = NewRicker(-0.1, 50, 1)
	assert.ErrorIs(t, err, emwave.ErrInvalidParameter)
}

func TestSinusoidalEval(t *testing.T) {
	w, err := NewSinusoidal(0.25, 2)
	require.NoError(t, err)

	assert.InDelta(t, 0, float64(w.Eval(0)), 1e-6)
	// Quarter period of f = 0.25 is one step: sin(pi/2) = 1.
	assert.InDelta(t, 2, float64(w.Eval(1)), 1e-5)
	assert.InDelta(t, 0, float64(w.Eval(2)), 1e-5)
}

func TestGaussianEval(t *testing.T) {
	w, err := NewGaussian(50, 10, 3)
	require.NoError(t, err)

	assert.InDelta(t, 3, float64(w.Eval(50)), 1e-6)
	assert.Less(t, float64(w.Eval(70)), float64(w.Eval(55)))
	assert.Less(t, float64(w.Eval(0)), 1e-8)
}

func TestRickerEval(t *testing.T) {
	w, err := NewRicker(0.1, 40, 1)
	require.NoError(t, err)

	// Peak amplitude at the center, symmetric about it.
	assert.InDelta(t, 1, float64(w.Eval(40)), 1e-6)
	assert.InDelta(t, float64(w.Eval(30)), float64(w.Eval(50)), 1e-6)
	// The wavelet integrates to zero, so it must go negative off-center.
	assert.Negative(t, float64(w.Eval(45)))
}

func TestStepEval(t *testing.T) {
	w := NewStep(10, 0.5)
	assert.Zero(t, w.Eval(9))
	assert.Equal(t, float32(0.5), w.Eval(10))
	assert.Equal(t, float32(0.5), w.Eval(1000))
}

func TestPointSourceModes(t *testing.T) {
	ez := make([]float32, 16*16)
	ez[5*16+5] = 0.7

	soft := NewPoint(5, 5, NewStep(0, 1), Soft)
	soft.Inject(ez, 0, 16, 16)
	assert.InDelta(t, 1.7, float64(ez[5*16+5]), 1e-6)

	hard := NewPoint(5, 5, NewStep(0, 1), Hard)
	hard.Inject(ez, 0, 16, 16)
	assert.Equal(t, float32(1), ez[5*16+5])
}

func TestPointSourceOutOfRangeIgnored(t *testing.T) {
	ez := make([]float32, 8*8)
	NewPoint(20, 20, NewStep(0, 1), Soft).Inject(ez, 0, 8, 8)
	for _, v := range ez {
		assert.Zero(t, v)
	}
}

func TestPlaneWaveVerticalLine(t *testing.T) {
	w, h := 24, 16
	ez := make([]float32, w*h)
	wave := NewStep(0, 1)
	src := NewPlaneWaveVertical(10, wave, Soft)
	src.Inject(ez, 0, w, h)

	for y := 0; y < h; y++ {
		v := ez[y*w+10]
		if y == 0 || y == h-1 {
			assert.Zero(t, v, "row %d", y)
		} else {
			assert.Equal(t, emwave.Courant, v, "row %d", y)
		}
	}
	// Nothing outside the line.
	assert.Zero(t, ez[5*w+9])
	assert.Zero(t, ez[5*w+11])
}

func TestPlaneWaveHorizontalLine(t *testing.T) {
	w, h := 16, 24
	ez := make([]float32, w*h)
	src := NewPlaneWaveHorizontal(7, NewStep(0, 2), Soft)
	src.Inject(ez, 0, w, h)

	for x := 1; x < w-1; x++ {
		assert.Equal(t, 2*emwave.Courant, ez[7*w+x], "col %d", x)
	}
	assert.Zero(t, ez[6*w+5])
}

func TestGaussianBeamProfile(t *testing.T) {
	_, err := NewGaussianBeam(10, 32, 0, Waveform{}, Soft)
	assert.ErrorIs(t, err, emwave.ErrInvalidParameter)

	w, h := 32, 64
	ez := make([]float32, w*h)
	src, err := NewGaussianBeam(10, 32, 8, NewStep(0, 1), Soft)
	require.NoError(t, err)
	src.Inject(ez, 0, w, h)

	center := ez[32*w+10]
	assert.InDelta(t, float64(emwave.Courant), float64(center), 1e-6)
	// Symmetric and decaying away from the waist center.
	assert.InDelta(t, float64(ez[28*w+10]), float64(ez[36*w+10]), 1e-6)
	assert.Greater(t, center, ez[40*w+10])
	assert.Greater(t, ez[40*w+10], float32(0))
}

func TestLinearArrayLayout(t *testing.T) {
	_, err := NewLinearArray(10, 10, 0, 5, 0.1, Soft)
	assert.ErrorIs(t, err, emwave.ErrInvalidParameter)
	_, err = NewLinearArray(10, 10, 4, 5, 0.6, Soft)
	assert.ErrorIs(t, err, emwave.ErrInvalidParameter)

	arr, err := NewLinearArray(10, 20, 8, 10, 0.08, Soft)
	require.NoError(t, err)
	require.Equal(t, 8, arr.ElementCount())
	for k, e := range arr.Elements {
		assert.Equal(t, 10, e.X)
		assert.Equal(t, 20+10*k, e.Y)
		assert.Zero(t, e.Phase)
	}
}

func TestProgressivePhaseSteering(t *testing.T) {
	arr, err := NewLinearArray(10, 20, 8, 10, 0.08, Soft)
	require.NoError(t, err)

	dphi := math.Pi / 4
	arr.SetProgressivePhase(dphi)
	for k, e := range arr.Elements {
		assert.InDelta(t, float64(k)*dphi, e.Phase, 1e-12)
	}

	arr.SetElementPhase(3, 1.5)
	assert.Equal(t, 1.5, arr.Elements[3].Phase)
	arr.SetElementPhase(99, 1.5) // ignored
}

func TestArrayInjectionUsesPhase(t *testing.T) {
	w, h := 64, 64
	arr, err := NewLinearArray(10, 10, 2, 10, 0.125, Soft)
	require.NoError(t, err)
	arr.SetProgressivePhase(math.Pi / 2)

	ez := make([]float32, w*h)
	arr.Inject(ez, 0, w, h)
	// Element 0: sin(0) = 0; element 1: sin(pi/2) = 1, scaled by Courant.
	assert.InDelta(t, 0, float64(ez[10*w+10]), 1e-6)
	assert.InDelta(t, float64(emwave.Courant), float64(ez[20*w+10]), 1e-6)
}
