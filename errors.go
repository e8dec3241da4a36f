package fastdhash

import "errors"

// Input-contract violations. Reported synchronously before any pixel is
// read; no partial work is ever done.
var (
	ErrDimensions = errors.New("fastdhash: width and height must be at least 1")
	ErrChannels   = errors.New("fastdhash: channel count must be between 1 and 4")
	ErrBufferSize = errors.New("fastdhash: pixel buffer too small")
)

// Internal invariant violations. Unreachable for valid inputs; surfaced
// as errors rather than silently producing a wrong hash.
var (
	ErrGeometry      = errors.New("fastdhash: invalid source geometry")
	ErrDegenerateBin = errors.New("fastdhash: grid bin received no samples")
)

// Hash text parsing failures.
var (
	ErrHexLength = errors.New("fastdhash: hash text must be 16 hex digits")
	ErrHexDigit  = errors.New("fastdhash: invalid hex digit")
)
