package raster

// Outcode is a bitmask of frustum planes a clip-space vertex lies outside
// of. A zero Outcode means the vertex is inside all six planes.
type Outcode uint8

const (
	OutcodeLeft Outcode = 1 << iota
	OutcodeRight
	OutcodeBottom
	OutcodeTop
	OutcodeNear
	OutcodeFar
)

// ComputeOutcode classifies a clip-space position against the six canonical
// frustum planes: -w <= x,y,z <= w.
func ComputeOutcode(clip [4]float32) Outcode {
	x, y, z, w := clip[0], clip[1], clip[2], clip[3]
	var code Outcode
	if x < -w {
		code |= OutcodeLeft
	}
	if x > w {
		code |= OutcodeRight
	}
	if y < -w {
		code |= OutcodeBottom
	}
	if y > w {
		code |= OutcodeTop
	}
	if z < -w {
		code |= OutcodeNear
	}
	if z > w {
		code |= OutcodeFar
	}
	return code
}

// ClipPlane identifies one of the six frustum planes for ClipTriangleAgainstPlane.
type ClipPlane uint8

const (
	ClipLeft ClipPlane = iota
	ClipRight
	ClipBottom
	ClipTop
	ClipNear
	ClipFar
)

// clipVertex is a clip-space vertex carried through the Sutherland-Hodgman
// clip loop, varyings included so interpolation at the cut points keeps
// attributes consistent.
type clipVertex struct {
	Pos      [4]float32
	Varyings []float32
}

func planeDistance(p ClipPlane, v [4]float32) float32 {
	x, y, z, w := v[0], v[1], v[2], v[3]
	switch p {
	case ClipLeft:
		return w + x
	case ClipRight:
		return w - x
	case ClipBottom:
		return w + y
	case ClipTop:
		return w - y
	case ClipNear:
		return w + z
	case ClipFar:
		return w - z
	default:
		return 0
	}
}

// ClipTriangleAgainstPlane clips a single triangle against one frustum
// plane using Sutherland-Hodgman, producing a convex polygon of 0, 3, or 4
// vertices (a triangle clipped against one plane can gain at most one
// vertex; an n-vertex polygon input yields at most n+1). Varyings are linearly interpolated at each cut point alongside
// position, matching the original's clip behavior of re-deriving attributes
// rather than discarding them.
func ClipTriangleAgainstPlane(plane ClipPlane, in []clipVertex) []clipVertex {
	if len(in) == 0 {
		return nil
	}
	out := make([]clipVertex, 0, len(in)+1)
	n := len(in)
	for i := 0; i < n; i++ {
		cur := in[i]
		prev := in[(i-1+n)%n]
		curIn := planeDistance(plane, cur.Pos) >= 0
		prevIn := planeDistance(plane, prev.Pos) >= 0

		if curIn {
			if !prevIn {
				out = append(out, intersectEdge(prev, cur, plane))
			}
			out = append(out, cur)
		} else if prevIn {
			out = append(out, intersectEdge(prev, cur, plane))
		}
	}
	return out
}

func intersectEdge(a, b clipVertex, plane ClipPlane) clipVertex {
	da := planeDistance(plane, a.Pos)
	db := planeDistance(plane, b.Pos)
	t := da / (da - db)

	var pos [4]float32
	for i := range pos {
		pos[i] = a.Pos[i] + t*(b.Pos[i]-a.Pos[i])
	}
	varyings := make([]float32, len(a.Varyings))
	for i := range varyings {
		varyings[i] = a.Varyings[i] + t*(b.Varyings[i]-a.Varyings[i])
	}
	return clipVertex{Pos: pos, Varyings: varyings}
}

// ClipTriangle clips a triangle against all six frustum planes in sequence
// and fan-triangulates the resulting convex polygon. It returns zero
// triangles if the input lies entirely outside any one plane.
func ClipTriangle(v0, v1, v2 ClipSpaceVertex) []ClipSpaceVertex {
	poly := []clipVertex{
		{Pos: v0.Position, Varyings: v0.Varyings},
		{Pos: v1.Position, Varyings: v1.Varyings},
		{Pos: v2.Position, Varyings: v2.Varyings},
	}
	planes := [...]ClipPlane{ClipLeft, ClipRight, ClipBottom, ClipTop, ClipNear, ClipFar}
	for _, p := range planes {
		poly = ClipTriangleAgainstPlane(p, poly)
		if len(poly) == 0 {
			return nil
		}
	}
	if len(poly) < 3 {
		return nil
	}

	out := make([]ClipSpaceVertex, 0, (len(poly)-2)*3)
	for i := 1; i+1 < len(poly); i++ {
		out = append(out,
			ClipSpaceVertex{Position: poly[0].Pos, Varyings: poly[0].Varyings},
			ClipSpaceVertex{Position: poly[i].Pos, Varyings: poly[i].Varyings},
			ClipSpaceVertex{Position: poly[i+1].Pos, Varyings: poly[i+1].Varyings},
		)
	}
	return out
}

// NeedsClip reports whether the combined outcodes indicate the triangle may
// straddle a frustum plane and require clipping, as opposed to a trivial
// accept (all inside, codes all zero) or trivial reject (all three share an
// outside plane, logical AND nonzero).
func NeedsClip(a, b, c Outcode) bool {
	if a|b|c == 0 {
		return false
	}
	if a&b&c != 0 {
		return false
	}
	return true
}

// TrivialReject reports whether all three vertices lie outside the same
// plane, which allows skipping the triangle without clipping.
func TrivialReject(a, b, c Outcode) bool {
	return a&b&c != 0
}
