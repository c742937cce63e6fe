package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, caches and transport
// clients return these (optionally wrapped) so services can translate them
// into domain errors.
//
//   - ErrNotFound: key or record does not exist
//   - ErrUnavailable: backing service temporarily unreachable
//   - ErrInvalidState: stored value cannot be interpreted
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
