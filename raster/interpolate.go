package raster

// InterpolateDepth computes the perspective-correct window-space depth at a
// pixel from barycentric weights and the triangle's three screen-space
// depths. Depth itself is already linear in screen space after the
// viewport transform, so this is a plain affine combination (unlike color
// varyings, which need the 1/w correction).
func InterpolateDepth(bary [3]float32, tri Triangle) float32 {
	return bary[0]*tri.V0.Z + bary[1]*tri.V1.Z + bary[2]*tri.V2.Z
}

// InterpolateInvW computes the interpolated 1/w (gl_FragCoord.w) at a pixel,
// the basis for perspective-correcting every other varying.
func InterpolateInvW(bary [3]float32, tri Triangle) float32 {
	return bary[0]*tri.V0.InvW + bary[1]*tri.V1.InvW + bary[2]*tri.V2.InvW
}

// InterpolateVaryings produces the perspective-correct interpolated
// varyings at a pixel. Each vertex's raw varyings were shaded while still
// in clip space, so they are first weighted by the vertex's own 1/w, then
// the barycentric-weighted sum is divided by the interpolated 1/w to
// recover perspective-correct values:
//
//	v(p) = (a*v0/w0 + b*v1/w1 + c*v2/w2) / (a/w0 + b/w1 + c/w2)
//
// invW is the already-computed InterpolateInvW result, passed in so
// callers that also need gl_FragCoord.w don't recompute it.
func InterpolateVaryings(dst []float32, bary [3]float32, tri Triangle, invW float32) {
	if invW == 0 {
		return
	}
	a := bary[0] * tri.V0.InvW
	b := bary[1] * tri.V1.InvW
	c := bary[2] * tri.V2.InvW
	inv := 1 / invW

	v0, v1, v2 := tri.V0.Varyings, tri.V1.Varyings, tri.V2.Varyings
	n := len(dst)
	for i := 0; i < n; i++ {
		dst[i] = (a*v0[i] + b*v1[i] + c*v2[i]) * inv
	}
}
