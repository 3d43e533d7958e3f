package materials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emwave/fdtdlab/internal/emwave"
)

func TestVacuumCoefficients(t *testing.T) {
	ca, cb := Coefficients(ByID(Vacuum), emwave.Dt)
	assert.Equal(t, float32(1), ca)
	assert.Equal(t, emwave.Dt, cb)
}

func TestPECCoefficients(t *testing.T) {
	ca, cb := Coefficients(ByID(Metal), emwave.Dt)
	assert.Zero(t, ca)
	assert.Zero(t, cb)
	assert.True(t, ByID(Metal).IsPEC())
}

func TestDielectricSlowsWave(t *testing.T) {
	_, cbGlass := Coefficients(ByID(Glass), emwave.Dt)
	_, cbVac := Coefficients(ByID(Vacuum), emwave.Dt)
	assert.Less(t, cbGlass, cbVac)

	// Lossless dielectrics keep ca = 1 exactly.
	caGlass, _ := Coefficients(ByID(Glass), emwave.Dt)
	assert.InDelta(t, 1.0, float64(caGlass), 1e-6)
}

func TestLossyMaterialDecays(t *testing.T) {
	ca, _ := Coefficients(ByID(Absorb), emwave.Dt)
	assert.Less(t, ca, float32(1))
	assert.Greater(t, ca, float32(0))

	caStrong, _ := Coefficients(ByID(StrongAbsorb), emwave.Dt)
	assert.Less(t, caStrong, ca)
}

func TestPaletteIsClosed(t *testing.T) {
	require.Equal(t, 9, Count)
	assert.Equal(t, "Vacuum", Name(Vacuum))
	assert.Equal(t, "Metal", Name(Metal))
	assert.Equal(t, "Unknown", Name(ID(200)))

	// Unknown IDs fall back to vacuum, not a zero Material.
	m := ByID(ID(200))
	assert.Equal(t, float32(1), m.EpsilonR)
}

func TestPaletteInvariants(t *testing.T) {
	for id := ID(0); int(id) < Count; id++ {
		m := ByID(id)
		assert.GreaterOrEqual(t, m.EpsilonR, float32(1), "id %d", id)
		assert.GreaterOrEqual(t, m.MuR, float32(1), "id %d", id)
		assert.GreaterOrEqual(t, m.Sigma, float32(0), "id %d", id)
	}
}

func TestNewValidation(t *testing.T) {
	_, err := New(0.5, 1, 0)
	assert.ErrorIs(t, err, emwave.ErrInvalidParameter)

	_, err = New(2, 1, -0.1)
	assert.ErrorIs(t, err, emwave.ErrInvalidParameter)

	m, err := New(4, 1, 0.2)
	require.NoError(t, err)
	assert.Equal(t, Dielectric, m.Kind)
}
