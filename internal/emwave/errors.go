package emwave

import "errors"

// Domain errors shared across the solver packages.
var (
	// ErrInvalidGeometry indicates a grid dimension outside the supported range.
	ErrInvalidGeometry = errors.New("emwave: invalid grid geometry")

	// ErrInvalidParameter indicates a physically meaningless construction
	// argument (negative sigma, eps_r below 1, non power-of-two buffer, ...).
	ErrInvalidParameter = errors.New("emwave: parameter out of valid bounds")

	// ErrUnstable indicates the field state diverged (NaN or Inf detected).
	// The grid records it; Step becomes a no-op until Reset.
	ErrUnstable = errors.New("emwave: simulation unstable (field diverged)")
)
