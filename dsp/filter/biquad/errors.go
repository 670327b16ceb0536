package biquad

import "errors"

var (
	// ErrNoLanes is returned by NewEngine for a lane count below one.
	ErrNoLanes = errors.New("biquad: lane count must be positive")

	// ErrLaneIndex is returned by per-lane accessors for an index outside [0, N).
	ErrLaneIndex = errors.New("biquad: lane index out of range")

	// ErrUnknownKernel is returned when a requested lane kernel is not
	// registered, not supported by the CPU, or has no kernel for the
	// engine's sample type.
	ErrUnknownKernel = errors.New("biquad: unknown lane kernel")
)
