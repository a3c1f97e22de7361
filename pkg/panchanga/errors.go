package panchanga

import "errors"

var (
	// ErrInvalidEphemeris is returned when a Panchanga or Solver is built
	// without a usable ephemeris.
	ErrInvalidEphemeris = errors.New("panchanga: invalid ephemeris provider")

	// ErrNoTithi is returned when a Karana is requested before any Tithi
	// has been computed.
	ErrNoTithi = errors.New("panchanga: karana requires a prior tithi")

	// ErrNoConvergence is returned when the boundary solver exhausts its
	// iteration cap.
	ErrNoConvergence = errors.New("panchanga: boundary search did not converge")

	// ErrOutOfDomain is returned for NaN or out-of-range longitudes,
	// non-positive unit widths and malformed sunrise windows.
	ErrOutOfDomain = errors.New("panchanga: input out of domain")
)
