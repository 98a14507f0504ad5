package dm200

import "github.com/lmars/dm200/grid"

// Config configures Decode's behaviour, mirroring the teacher's
// DecodeOptions: a plain exported struct built with zero-value-safe
// struct literals, no env/flag parsing in the core.
type Config struct {
	// Debug threads through for callers that want to dump intermediate
	// state themselves; dm200 never emits anything on its own.
	Debug bool

	// HumanReadable applies the HIBC > ISO 15434 > GS1 > raw ASCII
	// post-processing precedence to the decoded payload.
	HumanReadable bool

	// GS1URLPrefix, when set, renders a GS1 Digital Link URL instead of
	// the plain human-readable field listing for GS1 payloads. Only
	// consulted when HumanReadable is also set.
	GS1URLPrefix string

	// MinGridDimension and MaxGridDimension bound the IEC 16022 sizes
	// the timing detector will consider; zero means "use the full
	// [8, 144] range".
	MinGridDimension int
	MaxGridDimension int

	// SamplingRadius is the half-width, in pixels, of the window
	// averaged around each module centre; zero lets the preprocessing
	// driver try each of its own sampling radii.
	SamplingRadius int

	// SamplingWindow selects solid or ring sampling; defaults to solid.
	SamplingWindow grid.SamplingWindow

	// ComputeQuality requests an ISO/IEC 15415 metrics pass on the
	// winning decode attempt.
	ComputeQuality bool

	// MaxWorkers bounds the parallel preprocessing driver's worker
	// count; zero means runtime.GOMAXPROCS, clamped to 12 (spec.md §5).
	MaxWorkers int
}

func (c Config) validate() error {
	if c.MinGridDimension != 0 && (c.MinGridDimension < 8 || c.MinGridDimension > 144) {
		return ErrInvalidConfig
	}
	if c.MaxGridDimension != 0 && (c.MaxGridDimension < 8 || c.MaxGridDimension > 144) {
		return ErrInvalidConfig
	}
	if c.MinGridDimension != 0 && c.MaxGridDimension != 0 && c.MinGridDimension > c.MaxGridDimension {
		return ErrInvalidConfig
	}
	return nil
}
