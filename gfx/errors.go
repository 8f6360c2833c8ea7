package gfx

import "errors"

var (
	// ErrNoProgramBound is returned by DrawMesh when no program is bound.
	// Init binds solid_color, so a Graphics built by Init always has one.
	// This is a programmer contract violation.
	ErrNoProgramBound = errors.New("gfx: draw_mesh called with no program bound")

	// ErrZeroFramebuffer is returned by Init when asked to create a
	// framebuffer with non-positive width or height.
	ErrZeroFramebuffer = errors.New("gfx: framebuffer width and height must be positive")

	// ErrInvalidSubmesh is returned when a Submesh's index range falls
	// outside the bound MeshSource's index buffer.
	ErrInvalidSubmesh = errors.New("gfx: submesh index range out of bounds")
)
