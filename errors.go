package dm200

import "errors"

// Sentinel errors returned by Decode. They mirror the kinds spec.md's
// error-handling design names, surfaced as Go errors at the package
// boundary even though internally every stage recovers locally and
// produces an empty string rather than propagating a Go error.
var (
	// ErrNotFound means no preprocessing configuration produced a
	// non-empty decode: no perimeter, no timing match, a Reed-Solomon
	// failure, or a decoder state error, in every attempt tried.
	ErrNotFound = errors.New("symbol not found")

	// ErrInvalidImage means the input buffer's dimensions or
	// bits-per-pixel were outside the supported contract.
	ErrInvalidImage = errors.New("invalid image input")

	// ErrInvalidConfig means Config's fields are out of range (for
	// example a grid dimension bound outside [8, 144]).
	ErrInvalidConfig = errors.New("invalid configuration")
)
