package materials

import (
	"fmt"

	"github.com/emwave/fdtdlab/internal/emwave"
)

// Kind classifies how the updater treats a material.
type Kind uint8

const (
	Dielectric Kind = iota
	PEC
	Absorber
	Source
)

// ID indexes the fixed material palette.
type ID uint8

const (
	Vacuum ID = iota
	Glass
	Water
	Metal
	Absorb
	Crystal
	Silicon
	Air
	StrongAbsorb
)

// Material holds the electromagnetic properties of one palette entry.
type Material struct {
	EpsilonR float32
	MuR      float32
	Sigma    float32
	Kind     Kind
}

// IsPEC reports whether the material is a perfect electric conductor.
func (m Material) IsPEC() bool { return m.Kind == PEC }

// New validates and builds a generic dielectric.
func New(epsilonR, muR, sigma float32) (Material, error) {
	if epsilonR < 1 {
		return Material{}, fmt.Errorf("%w: epsilon_r %v < 1", emwave.ErrInvalidParameter, epsilonR)
	}
	if muR < 1 {
		return Material{}, fmt.Errorf("%w: mu_r %v < 1", emwave.ErrInvalidParameter, muR)
	}
	if sigma < 0 {
		return Material{}, fmt.Errorf("%w: sigma %v < 0", emwave.ErrInvalidParameter, sigma)
	}
	return Material{EpsilonR: epsilonR, MuR: muR, Sigma: sigma, Kind: Dielectric}, nil
}

// palette is closed and immutable; IDs match the drawing toolbox.
var palette = [...]Material{
	Vacuum:       {EpsilonR: 1, MuR: 1, Sigma: 0, Kind: Dielectric},
	Glass:        {EpsilonR: 2.25, MuR: 1, Sigma: 0, Kind: Dielectric},
	Water:        {EpsilonR: 78, MuR: 1, Sigma: 0.05, Kind: Dielectric},
	Metal:        {EpsilonR: 1, MuR: 1, Sigma: 0, Kind: PEC},
	Absorb:       {EpsilonR: 1, MuR: 1, Sigma: 0.5, Kind: Absorber},
	Crystal:      {EpsilonR: 4, MuR: 1, Sigma: 0, Kind: Dielectric},
	Silicon:      {EpsilonR: 11.7, MuR: 1, Sigma: 0, Kind: Dielectric},
	Air:          {EpsilonR: 1.0006, MuR: 1, Sigma: 0, Kind: Dielectric},
	StrongAbsorb: {EpsilonR: 1, MuR: 1, Sigma: 2.0, Kind: Absorber},
}

var names = [...]string{
	Vacuum:       "Vacuum",
	Glass:        "Glass",
	Water:        "Water",
	Metal:        "Metal",
	Absorb:       "Absorber",
	Crystal:      "Crystal",
	Silicon:      "Silicon",
	Air:          "Air",
	StrongAbsorb: "StrongAbsorber",
}

// Count is the number of palette entries.
const Count = len(palette)

// ByID returns the palette entry for id. Unknown IDs map to Vacuum.
func ByID(id ID) Material {
	if int(id) >= len(palette) {
		return palette[Vacuum]
	}
	return palette[id]
}

// Name returns the display name for id.
func Name(id ID) string {
	if int(id) >= len(names) {
		return "Unknown"
	}
	return names[id]
}

// Coefficients derives the E-update pair (ca, cb) for a material under the
// normalized units (eps0 = mu0 = dx = 1, dt = Courant).
//
//	denom = eps_r + sigma*dt/2
//	ca    = (eps_r - sigma*dt/2) / denom
//	cb    = dt / denom
//
// PEC pins both to zero so Ez holds at whatever the mask enforces.
func Coefficients(m Material, dt float32) (ca, cb float32) {
	if m.IsPEC() {
		return 0, 0
	}
	half := m.Sigma * dt / 2
	denom := m.EpsilonR + half
	return (m.EpsilonR - half) / denom, dt / denom
}
