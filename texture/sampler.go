package texture

import (
	math "github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms1"
	"github.com/soypat/glgl/math/ms2"
)

// Sampler applies a Texture's wrap and filter modes to produce a texel
// value from normalized [0,1] UV coordinates and a level-of-detail
// estimate.
type Sampler struct{}

// Sample2D samples tex at (u, v) with an explicit LOD. LOD 0 always reads
// level 0; higher LODs read generated mip levels when they are ready,
// otherwise fall back to level 0 (graceful degradation, never a stall).
func (Sampler) Sample2D(tex *Texture, u, v, lod float32) Texel {
	level := selectLevel(tex, lod)

	switch tex.filter {
	case FilterNearest, FilterNearestMipmapNearest, FilterNearestMipmapLinear:
		return sampleNearest(level, tex.wrap, tex.borderColor, u, v)
	default:
		return sampleBilinear(level, tex.wrap, tex.borderColor, u, v)
	}
}

// SampleUV is Sample2D with the coordinate expressed as an ms2.Vec, the
// shape a vertex shader's interpolated texcoord varying naturally takes
// when the caller works in ms2 throughout instead of splitting u/v.
func (s Sampler) SampleUV(tex *Texture, uv ms2.Vec, lod float32) Texel {
	return s.Sample2D(tex, uv.X, uv.Y, lod)
}

// selectLevel resolves which mip Buffer to read for a given LOD, applying
// the fallback-to-base rule when mips are not generated yet or the
// texture's filter doesn't use them.
func selectLevel(tex *Texture, lod float32) Buffer {
	if !tex.filter.usesMipmap() || !tex.mipReady() {
		return tex.base
	}
	tex.mu.Lock()
	levels := tex.levels
	tex.mu.Unlock()

	idx := int(math.Round(ms1.Clamp(lod, 0, float32(len(levels)-1))))
	return levels[idx]
}

// wrapCoord maps a possibly out-of-range texel coordinate into [0, size)
// (or signals a border/zero result) according to mode. ok is false only
// for WrapClampToBorder/WrapClampToZero coordinates that fell outside the
// texture, in which case the caller substitutes a fixed color instead of
// reading a texel.
func wrapCoord(coord float32, size int, mode WrapMode) (idx int, ok bool) {
	if size <= 0 {
		return 0, false
	}
	n := float32(size)
	switch mode {
	case WrapRepeat:
		c := coord - math.Floor(coord/n)*n
		return clampIdx(int(c), size), true
	case WrapMirroredRepeat:
		period := 2 * n
		c := coord - math.Floor(coord/period)*period
		if c >= n {
			c = period - c - 1
		}
		return clampIdx(int(c), size), true
	case WrapClampToEdge:
		return clampIdx(int(coord), size), true
	case WrapClampToBorder, WrapClampToZero:
		if coord < 0 || coord >= n {
			return 0, false
		}
		return clampIdx(int(coord), size), true
	default:
		return clampIdx(int(coord), size), true
	}
}

func clampIdx(v, size int) int {
	if v < 0 {
		return 0
	}
	if v >= size {
		return size - 1
	}
	return v
}

func sampleNearest(level Buffer, wrap WrapMode, border Texel, u, v float32) Texel {
	x := u*float32(level.Width()) - 0.5
	y := v*float32(level.Height()) - 0.5
	ix, okx := wrapCoord(math.Round(x), level.Width(), wrap)
	iy, oky := wrapCoord(math.Round(y), level.Height(), wrap)
	if !okx || !oky {
		return borderOrZero(wrap, border)
	}
	return level.Get(ix, iy)
}

func sampleBilinear(level Buffer, wrap WrapMode, border Texel, u, v float32) Texel {
	x := u*float32(level.Width()) - 0.5
	y := v*float32(level.Height()) - 0.5
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	fx := x - x0
	fy := y - y0

	get := func(ix, iy float32) Texel {
		px, okx := wrapCoord(ix, level.Width(), wrap)
		py, oky := wrapCoord(iy, level.Height(), wrap)
		if !okx || !oky {
			return borderOrZero(wrap, border)
		}
		return level.Get(px, py)
	}

	a := get(x0, y0)
	b := get(x0+1, y0)
	c := get(x0, y0+1)
	d := get(x0+1, y0+1)

	top := lerpTexel(a, b, fx)
	bottom := lerpTexel(c, d, fx)
	return lerpTexel(top, bottom, fy)
}

func borderOrZero(wrap WrapMode, border Texel) Texel {
	if wrap == WrapClampToBorder {
		return border
	}
	return Texel{}
}
