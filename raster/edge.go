package raster

// EdgeFunction evaluates the signed area of the parallelogram formed by
// (b-a) and (p-a), per Pineda (1988):
//
//	E(a, b, p) = (b.x - a.x) * (p.y - a.y) - (b.y - a.y) * (p.x - a.x)
//
// A positive value places p to the right of the directed edge a->b (for a
// CCW-wound triangle in a y-down window coordinate system); zero places p
// exactly on the edge.
func EdgeFunction(a, b ScreenVertex, px, py float32) float32 {
	return (b.X-a.X)*(py-a.Y) - (b.Y-a.Y)*(px-a.X)
}

// IncrementalEdge holds the per-edge step constants for scanning a
// triangle's bounding box one pixel at a time using only addition, avoiding
// a full EdgeFunction evaluation at every pixel.
type IncrementalEdge struct {
	// A, B are the edge-function's coefficients: stepping one pixel in X
	// adds A, stepping one pixel in Y adds B.
	A, B float32

	// TopLeft reports whether this is a top or left edge under the
	// top-left fill rule, used to break ties on shared edges so two
	// triangles sharing an edge never double-draw or leave a gap.
	TopLeft bool
}

// NewIncrementalEdge derives the step constants for the directed edge a->b.
func NewIncrementalEdge(a, b ScreenVertex) IncrementalEdge {
	return IncrementalEdge{
		A:       a.Y - b.Y,
		B:       b.X - a.X,
		TopLeft: isTopLeftEdge(a, b),
	}
}

// isTopLeftEdge implements the top-left fill rule: an edge is a "top" edge
// if it is horizontal and points left (decreasing x), or a "left" edge if
// it points upward (decreasing y, since window y grows downward).
func isTopLeftEdge(a, b ScreenVertex) bool {
	isTop := a.Y == b.Y && b.X < a.X
	isLeft := b.Y < a.Y
	return isTop || isLeft
}

// Covers applies the top-left rule to an edge-function value: positive
// values always count as covered; exactly-zero values count only on
// top-left edges, so interior pixels on a shared edge are claimed by
// exactly one of the two adjacent triangles.
func (e IncrementalEdge) Covers(value float32) bool {
	if value > 0 {
		return true
	}
	if value == 0 && e.TopLeft {
		return true
	}
	return false
}

// IncrementalTriangle precomputes everything needed to scan-convert a
// triangle by incremental stepping: the three edges, the starting
// edge-function values at a given origin pixel, and the reciprocal area
// for barycentric normalization.
type IncrementalTriangle struct {
	Tri Triangle

	E0, E1, E2 IncrementalEdge

	// Area is twice the triangle's signed area (the edge function
	// evaluated at the opposite vertex); triangles with Area <= 0 are
	// degenerate or back-facing for a CCW winding, and
	// NewIncrementalTriangle rejects them.
	Area float32

	// InvArea caches 1/Area for barycentric weight normalization.
	InvArea float32

	// MinX, MinY, MaxX, MaxY is the pixel-space bounding box, already
	// clamped to the viewport/scissor by the caller.
	MinX, MinY, MaxX, MaxY int

	// startE0, startE1, startE2 are the edge values at (MinX, MinY).
	startE0, startE1, startE2 float32
}

// NewIncrementalTriangle builds the incremental scan state for tri, with
// the bounding box clamped to [0, width) x [0, height).
func NewIncrementalTriangle(tri Triangle, width, height int) (IncrementalTriangle, bool) {
	area := EdgeFunction(tri.V0, tri.V1, tri.V2.X, tri.V2.Y)
	if area <= 0 {
		return IncrementalTriangle{}, false
	}

	minXf := min3(tri.V0.X, tri.V1.X, tri.V2.X)
	minYf := min3(tri.V0.Y, tri.V1.Y, tri.V2.Y)
	maxXf := max3(tri.V0.X, tri.V1.X, tri.V2.X)
	maxYf := max3(tri.V0.Y, tri.V1.Y, tri.V2.Y)

	minXI := maxInt(0, int(floorf(minXf)))
	minYI := maxInt(0, int(floorf(minYf)))
	maxXI := minInt(width-1, int(ceilf(maxXf)))
	maxYI := minInt(height-1, int(ceilf(maxYf)))
	if minXI > maxXI || minYI > maxYI {
		return IncrementalTriangle{}, false
	}

	px := float32(minXI) + 0.5
	py := float32(minYI) + 0.5

	it := IncrementalTriangle{
		Tri:     tri,
		E0:      NewIncrementalEdge(tri.V1, tri.V2),
		E1:      NewIncrementalEdge(tri.V2, tri.V0),
		E2:      NewIncrementalEdge(tri.V0, tri.V1),
		Area:    area,
		InvArea: 1 / area,
		MinX:    minXI,
		MinY:    minYI,
		MaxX:    maxXI,
		MaxY:    maxYI,
	}
	it.startE0 = EdgeFunction(tri.V1, tri.V2, px, py)
	it.startE1 = EdgeFunction(tri.V2, tri.V0, px, py)
	it.startE2 = EdgeFunction(tri.V0, tri.V1, px, py)
	return it, true
}

// Sample evaluates coverage and screen-space barycentric weights at pixel
// (x, y) within it's bounding box. The weights are not perspective
// corrected; InterpolateVaryings applies the 1/w correction. ok is false
// when the pixel lies outside the triangle.
func (it *IncrementalTriangle) Sample(x, y int) (bary [3]float32, ok bool) {
	bary, inside := it.SampleExtended(x, y)
	if !inside {
		return [3]float32{}, false
	}
	return bary, true
}

// SampleExtended evaluates the edge functions at (x, y) unconditionally,
// returning barycentric weights even when the pixel lies outside the
// triangle (weights then fall outside [0,1] and can be negative). inside
// reports whether the pixel passes the top-left coverage rule. Callers that
// need every lane of a quad populated with defined varyings for screen-space
// derivatives — not just the covered ones — use this instead of Sample.
func (it *IncrementalTriangle) SampleExtended(x, y int) (bary [3]float32, inside bool) {
	dx := float32(x - it.MinX)
	dy := float32(y - it.MinY)

	w0 := it.startE0 + dx*it.E0.A + dy*it.E0.B
	w1 := it.startE1 + dx*it.E1.A + dy*it.E1.B
	w2 := it.startE2 + dx*it.E2.A + dy*it.E2.B

	inside = it.E0.Covers(w0) && it.E1.Covers(w1) && it.E2.Covers(w2)

	a := w0 * it.InvArea
	b := w1 * it.InvArea
	c := w2 * it.InvArea
	return [3]float32{a, b, c}, inside
}

func floorf(v float32) float32 {
	i := float32(int32(v))
	if v < 0 && i != v {
		return i - 1
	}
	return i
}

func ceilf(v float32) float32 {
	f := floorf(v)
	if f != v {
		return f + 1
	}
	return f
}
