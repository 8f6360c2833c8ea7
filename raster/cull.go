package raster

// SignedArea returns twice the signed area of the screen-space triangle,
// positive for CCW winding in a y-down window coordinate system.
func SignedArea(tri Triangle) float32 {
	return EdgeFunction(tri.V0, tri.V1, tri.V2.X, tri.V2.Y)
}

// ShouldCull reports whether a triangle should be discarded given the
// configured cull mode and front-face winding convention. A zero-area
// triangle is always culled regardless of mode, since it is degenerate
// and draws nothing (§4.4.4 edge case).
func ShouldCull(tri Triangle, mode CullMode, front FrontFace) bool {
	area := SignedArea(tri)
	if area == 0 {
		return true
	}

	isCCW := area > 0
	isFront := isCCW
	if front == FrontFaceCW {
		isFront = !isCCW
	}

	switch mode {
	case CullFront:
		return isFront
	case CullBack:
		return !isFront
	default:
		return false
	}
}

// IsFrontFacing reports the winding test result for a triangle, independent
// of the configured cull mode, exposed to the fragment stage as
// gl_FrontFacing.
func IsFrontFacing(tri Triangle, front FrontFace) bool {
	isCCW := SignedArea(tri) > 0
	if front == FrontFaceCW {
		return !isCCW
	}
	return isCCW
}
