package raster

import "errors"

var (
	// ErrZeroViewport is returned when a Viewport with non-positive width
	// or height is supplied to the rasterizer. This is a programmer
	// contract violation, not a recoverable domain edge case.
	ErrZeroViewport = errors.New("raster: viewport width and height must be positive")

	// ErrVaryingsLayoutMismatch is returned when the three vertices of a
	// triangle carry varyings slices of different lengths, which would
	// make interpolation undefined.
	ErrVaryingsLayoutMismatch = errors.New("raster: triangle vertices have mismatched varyings layout")
)
