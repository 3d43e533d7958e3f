package probe

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emwave/fdtdlab/internal/emwave"
)

func TestNewAnalyzerValidatesSize(t *testing.T) {
	for _, size := range []int{0, 8, 100, -16} {
		_, err := NewAnalyzer(size)
		assert.ErrorIs(t, err, emwave.ErrInvalidParameter, "size %d", size)
	}
	a, err := NewAnalyzer(256)
	require.NoError(t, err)
	assert.Equal(t, 256, a.Size())
	assert.Equal(t, 128, a.Bins())
}

func sinusoid(n int, f float64) []float32 {
	out := make([]float32, n)
	for k := range out {
		out[k] = float32(math.Sin(2 * math.Pi * f * float64(k)))
	}
	return out
}

func TestSpectrumPeakAtExactBin(t *testing.T) {
	const size = 256
	a, err := NewAnalyzer(size)
	require.NoError(t, err)

	// f = 32/256 lands exactly on bin 32.
	spectrum := a.Compute(sinusoid(size, 32.0/size))
	require.Len(t, spectrum, size/2)

	peak := a.FindPeakBin()
	assert.Equal(t, 32, peak)

	// Peak must clear the median bin by at least 30 dB.
	sorted := append([]float64(nil), spectrum...)
	sort.Float64s(sorted)
	median := sorted[len(sorted)/2]
	assert.GreaterOrEqual(t, spectrum[peak]-median, 30.0)
}

func TestSpectrumPeakNearestBin(t *testing.T) {
	const size = 256
	a, err := NewAnalyzer(size)
	require.NoError(t, err)

	// f = 0.1 -> 25.6 cycles per window; nearest bin is 26.
	a.Compute(sinusoid(size, 0.1))
	assert.Equal(t, 26, a.FindPeakBin())
}

func TestBinToFrequency(t *testing.T) {
	a, err := NewAnalyzer(256)
	require.NoError(t, err)
	assert.InDelta(t, 0.1015625, a.BinToFrequency(26), 1e-9)
	assert.Zero(t, a.BinToFrequency(0))
}

func TestSilenceHitsFloor(t *testing.T) {
	a, err := NewAnalyzer(64)
	require.NoError(t, err)
	spectrum := a.Compute(make([]float32, 64))
	for k, v := range spectrum {
		assert.InDelta(t, -200, v, 1e-9, "bin %d", k)
	}
	// DC is excluded from the peak search even on a flat spectrum.
	assert.GreaterOrEqual(t, a.FindPeakBin(), 1)
}

func TestShortInputZeroPadded(t *testing.T) {
	a, err := NewAnalyzer(64)
	require.NoError(t, err)
	spectrum := a.Compute([]float32{1, 1, 1, 1})
	for _, v := range spectrum {
		assert.False(t, math.IsNaN(v))
		assert.False(t, math.IsInf(v, 0))
	}
}

func TestProbeFeedsAnalyzer(t *testing.T) {
	p, err := NewProbe(0, 0, 256)
	require.NoError(t, err)
	ez := make([]float32, 1)
	for i := 0; i < 256; i++ {
		ez[0] = float32(math.Sin(2 * math.Pi * 0.125 * float64(i)))
		p.Record(ez, 1)
	}

	a, err := NewAnalyzer(256)
	require.NoError(t, err)
	a.Compute(p.Snapshot())
	// 0.125 * 256 = bin 32.
	assert.Equal(t, 32, a.FindPeakBin())
}
