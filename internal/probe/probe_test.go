package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emwave/fdtdlab/internal/emwave"
)

func TestNewProbeValidatesSize(t *testing.T) {
	for _, size := range []int{0, -4, 3, 100} {
		_, err := NewProbe(0, 0, size)
		assert.ErrorIs(t, err, emwave.ErrInvalidParameter, "size %d", size)
	}
	p, err := NewProbe(3, 4, 64)
	require.NoError(t, err)
	assert.Equal(t, 64, p.Len())
	x, y := p.Position()
	assert.Equal(t, 3, x)
	assert.Equal(t, 4, y)
}

func fieldWith(w, h, x, y int, v float32) []float32 {
	ez := make([]float32, w*h)
	ez[y*w+x] = v
	return ez
}

func TestRecordAndLastValue(t *testing.T) {
	p, err := NewProbe(2, 1, 16)
	require.NoError(t, err)

	p.Record(fieldWith(8, 4, 2, 1, 0.5), 8)
	assert.Equal(t, float32(0.5), p.LastValue())
	assert.Equal(t, 1, p.WritePos())
}

func TestSnapshotChronologicalOrder(t *testing.T) {
	p, err := NewProbe(0, 0, 16)
	require.NoError(t, err)

	// Overfill the ring so it wraps: samples 0..19, ring keeps 4..19.
	ez := make([]float32, 4)
	for i := 0; i < 20; i++ {
		ez[0] = float32(i)
		p.Record(ez, 4)
	}

	snap := p.Snapshot()
	require.Len(t, snap, 16)
	for i, v := range snap {
		assert.Equal(t, float32(i+4), v, "position %d", i)
	}
}

func TestClearRewinds(t *testing.T) {
	p, err := NewProbe(0, 0, 16)
	require.NoError(t, err)
	ez := []float32{1}
	p.Record(ez, 1)
	p.Clear()

	assert.Zero(t, p.WritePos())
	for _, v := range p.Snapshot() {
		assert.Zero(t, v)
	}
}

func TestSetPositionClearsBuffer(t *testing.T) {
	p, err := NewProbe(0, 0, 16)
	require.NoError(t, err)
	p.Record([]float32{3}, 1)
	p.SetPosition(5, 6)

	x, y := p.Position()
	assert.Equal(t, 5, x)
	assert.Equal(t, 6, y)
	assert.Zero(t, p.WritePos())
	assert.Zero(t, p.LastValue())
}

func TestRecordOutsideFieldIgnored(t *testing.T) {
	p, err := NewProbe(10, 10, 16)
	require.NoError(t, err)
	p.Record(make([]float32, 16), 4) // 4x4 field, probe outside
	assert.Zero(t, p.WritePos())
}
