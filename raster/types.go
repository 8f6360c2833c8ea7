// Package raster implements CPU triangle rasterization: the edge-function
// scan conversion, perspective-correct barycentric interpolation, depth
// testing, and tile/quad work generation that feed a programmable shader
// pipeline.
//
// The algorithm is the Edge Function method (Pineda, 1988): three linear
// edge equations determine pixel coverage, and their values step by simple
// addition from one pixel to the next.
package raster

import math "github.com/chewxy/math32"

// Vertex is the fixed-layout input attribute record supplied by a MeshSource.
// Attributes not set by the caller default to their zero value; TexCoord and
// Color default to (0,0) and (0,0,0,0) respectively, Normal and Tangent
// default to the zero vector (no implicit identity direction is assumed by
// the core — a vertex shader that needs a fallback normal must supply one).
type Vertex struct {
	Position [3]float32
	TexCoord [2]float32
	Normal   [3]float32
	Tangent  [4]float32
	Color    [4]float32
}

// ClipSpaceVertex is the output of vertex shader processing: homogeneous
// clip-space position plus the varyings slice the shader populated.
type ClipSpaceVertex struct {
	// Position is (x, y, z, w) in clip space, before the perspective divide.
	Position [4]float32

	// Varyings holds the per-vertex values the fragment stage will
	// interpolate. Its length and layout are defined by the bound Program.
	Varyings []float32
}

// VertexRecord is the pipeline-internal representation of a vertex as it
// moves through VertexAssembly, VertexShading, PerspectiveDivide, and
// ViewportTransform.
type VertexRecord struct {
	ID int

	// Source is the caller-supplied attribute record, copied during
	// VertexAssembly.
	Source Vertex

	// Clip is the clip-space position written by the vertex stage.
	Clip [4]float32

	// Varyings is this vertex's exclusively-owned interpolation buffer.
	Varyings []float32

	// InvW holds 1/Clip[3]. gfx.DrawMesh leaves it zero; the 1/w used for
	// interpolation is carried by each triangle's ScreenVertex.
	InvW float32

	// Screen holds the window-space position. gfx.DrawMesh leaves it
	// zero; it builds ScreenVertex values per (possibly clipped) triangle.
	Screen ScreenVertex

	// Outcode records which frustum planes this vertex lies outside of.
	// Used by FaceAssembly for trivial accept/reject before rasterization.
	Outcode Outcode
}

// ScreenVertex is a vertex after perspective divide and viewport transform:
// integer-addressable window coordinates plus the perspective weight needed
// to correct barycentric interpolation.
type ScreenVertex struct {
	// X, Y are window-space pixel coordinates.
	X, Y float32

	// Z is the window-space depth, already mapped through the configured
	// depth range (see ViewportTransform).
	Z float32

	// InvW stores 1/clip_w, the perspective-correction weight.
	InvW float32

	// Varyings are this vertex's raw (not yet weighted by InvW) varyings.
	Varyings []float32
}

// FaceRecord groups three vertex indices into a triangle along with the
// flags FaceAssembly computes.
type FaceRecord struct {
	I0, I1, I2 int

	// Discard is set by back-face culling or degenerate-area detection.
	Discard bool

	// FrontFacing reports the winding test result, exposed to the
	// fragment stage as gl_FrontFacing.
	FrontFacing bool
}

// Fragment is a candidate pixel produced during scan conversion.
type Fragment struct {
	X, Y int

	// Depth is the perspective-correct interpolated window-space depth.
	Depth float32

	// InvW is the interpolated 1/clip_w at this pixel — gl_FragCoord.w.
	InvW float32

	// Bary holds the screen-space barycentric weights (a, b, c), summing
	// to 1 within a small epsilon. They are not perspective corrected;
	// Varyings are.
	Bary [3]float32

	// Varyings are the perspective-correct interpolated per-pixel values.
	Varyings []float32

	// Inside reports whether this pixel is covered by the triangle. Quads
	// generate fragments for all four corners regardless, so that
	// screen-space derivatives remain defined; only Inside fragments are
	// eligible for the depth test and color write.
	Inside bool
}

// Triangle is a fully assembled, screen-space triangle ready for scan
// conversion.
type Triangle struct {
	V0, V1, V2 ScreenVertex
}

// Viewport maps NDC to window coordinates and defines the depth range.
type Viewport struct {
	X, Y          int
	Width, Height int

	// DepthNear, DepthFar are Zn, Zf in the window-space depth mapping
	// (ViewportTransform). DepthNear=0.1 and DepthFar=100.0 are typical
	// defaults; reversed-Z setups use DepthNear > DepthFar's sense is
	// unaffected here since the mapping formula handles either order.
	DepthNear, DepthFar float32
}

// CompareFunc is a depth or stencil comparison function.
type CompareFunc uint8

const (
	CompareNever CompareFunc = iota
	CompareLess
	CompareEqual
	CompareLessEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterEqual
	CompareAlways
)

// CullMode selects which winding to discard during FaceAssembly.
type CullMode uint8

const (
	CullNone CullMode = iota
	CullFront
	CullBack
)

// FrontFace selects which winding order is considered front-facing.
type FrontFace uint8

const (
	FrontFaceCCW FrontFace = iota
	FrontFaceCW
)

func min2(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max2(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func min3(a, b, c float32) float32 { return min2(min2(a, b), c) }
func max3(a, b, c float32) float32 { return max2(max2(a, b), c) }

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// compareDepth evaluates compare(src, dst) for the given function.
// EQUAL and NOTEQUAL use a tolerance scaled by the magnitude of the
// compared values instead of bit-exact equality, since depth values
// reach the comparison after several float32 interpolation steps.
func compareDepth(src, dst float32, compare CompareFunc) bool {
	switch compare {
	case CompareNever:
		return false
	case CompareLess:
		return src < dst
	case CompareEqual:
		return depthEqual(src, dst)
	case CompareLessEqual:
		return src < dst || depthEqual(src, dst)
	case CompareGreater:
		return src > dst
	case CompareNotEqual:
		return !depthEqual(src, dst)
	case CompareGreaterEqual:
		return src > dst || depthEqual(src, dst)
	case CompareAlways:
		return true
	default:
		return false
	}
}

// depthEqual compares with an epsilon scaled by the larger magnitude,
// per spec: "machine epsilon scaled by magnitudes of the compared values".
func depthEqual(a, b float32) bool {
	diff := math.Abs(a - b)
	scale := max2(1.0, max2(math.Abs(a), math.Abs(b)))
	return diff <= scale*1e-6
}
