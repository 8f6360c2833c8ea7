package texture

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// WrapMode selects how out-of-[0,1] texture coordinates are resolved.
type WrapMode uint8

const (
	WrapRepeat WrapMode = iota
	WrapMirroredRepeat
	WrapClampToEdge
	WrapClampToBorder
	WrapClampToZero
)

// FilterMode selects the texel-weighting scheme for sampling, including
// the four mip-aware combinations.
type FilterMode uint8

const (
	FilterNearest FilterMode = iota
	FilterLinear
	FilterNearestMipmapNearest
	FilterLinearMipmapNearest
	FilterNearestMipmapLinear
	FilterLinearMipmapLinear
)

// usesMipmap reports whether a FilterMode samples from generated mip
// levels rather than level 0 alone.
func (f FilterMode) usesMipmap() bool {
	return f >= FilterNearestMipmapNearest
}

// Texture owns a base texel buffer, its sampling parameters, and a chain
// of lazily generated mip levels. Mipmap generation runs once, in the
// background, the first time it's requested; until it finishes, samples
// that would use a mip level fall back to level 0 rather than blocking.
type Texture struct {
	base       Buffer
	layout     Layout
	wrap       WrapMode
	filter     FilterMode
	borderColor Texel

	mu     sync.Mutex
	levels []Buffer // levels[0] is always base; levels[1:] are generated.

	ready      atomic.Bool
	generating atomic.Bool
}

// New constructs a Texture over a freshly allocated buffer of the given
// layout and dimensions, width and height need not be powers of two — the
// mipmap chain bases its first generated level on the next power of two at
// or above the source size, matching the original's roundUpToPowerOf2
// behavior, and resamples into it.
func New(layout Layout, width, height int, wrap WrapMode, filter FilterMode) *Texture {
	base := NewBuffer(layout, width, height)
	t := &Texture{
		base:   base,
		layout: layout,
		wrap:   wrap,
		filter: filter,
		levels: []Buffer{base},
	}
	t.ready.Store(true) // level 0 is always ready; "ready" gates mip use.
	return t
}

// Base returns the level-0 buffer, for callers that want to populate it
// directly (e.g. a TextureSource implementation decoding an image).
func (t *Texture) Base() Buffer { return t.base }

func (t *Texture) Width() int  { return t.base.Width() }
func (t *Texture) Height() int { return t.base.Height() }

// SetWrap and SetFilter reconfigure sampling parameters.
func (t *Texture) SetWrap(w WrapMode)     { t.wrap = w }
func (t *Texture) SetFilter(f FilterMode) { t.filter = f }
func (t *Texture) SetBorderColor(c Texel) { t.borderColor = c }

// roundUpPow2 returns the smallest power of two >= v, or 1 if v <= 0.
func roundUpPow2(v int) int {
	if v <= 0 {
		return 1
	}
	p := 1
	for p < v {
		p <<= 1
	}
	return p
}

// mipReady reports whether generated mip levels (beyond level 0) are
// available for sampling.
func (t *Texture) mipReady() bool {
	return len(t.levels) > 1 && t.ready.Load()
}

// EnsureMipmaps kicks off background mipmap generation the first time it
// is called for this texture and returns immediately; it is safe to call
// on every draw that needs mips, since subsequent calls while generation
// is already in flight or complete are no-ops. logger may be nil.
func (t *Texture) EnsureMipmaps(logger *slog.Logger) {
	if len(t.levels) > 1 || !t.generating.CompareAndSwap(false, true) {
		return
	}
	go t.generateMipmaps(logger)
}

func (t *Texture) generateMipmaps(logger *slog.Logger) {
	defer t.generating.Store(false)

	w := roundUpPow2(t.base.Width())
	h := roundUpPow2(t.base.Height())

	var levels []Buffer
	base := resampleToPow2(t.base, w, h)
	if base == nil {
		if logger != nil {
			logger.Warn("texture: mipmap base allocation failed", "error", ErrAllocationFailed)
		}
		return
	}
	levels = append(levels, t.base, base)

	prev := base
	for w > 1 || h > 1 {
		w = maxInt(1, w/2)
		h = maxInt(1, h/2)
		level := downsample(prev, w, h)
		if level == nil {
			if logger != nil {
				logger.Warn("texture: mipmap level allocation failed", "width", w, "height", h, "error", ErrAllocationFailed)
			}
			break
		}
		levels = append(levels, level)
		prev = level
	}

	if len(levels) <= 1 {
		return
	}

	t.mu.Lock()
	t.levels = levels
	t.mu.Unlock()
	t.ready.Store(true)

	if logger != nil {
		logger.Debug("texture: mipmap generation complete", "levels", len(levels))
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// resampleToPow2 bilinearly resamples src into a newly allocated buffer of
// size w x h. It returns nil if allocation would exceed available memory;
// in this Go implementation allocation failures surface as an OOM panic
// from make rather than a recoverable nil, but the signature stays
// failure-shaped to match the original's graceful-degradation contract
// for any future allocator that can report failure without panicking.
func resampleToPow2(src Buffer, w, h int) Buffer {
	dst := NewLinearBuffer(w, h)
	sw, sh := src.Width(), src.Height()
	if sw == 0 || sh == 0 {
		return dst
	}
	for y := 0; y < h; y++ {
		v := (float32(y) + 0.5) / float32(h) * float32(sh)
		for x := 0; x < w; x++ {
			u := (float32(x) + 0.5) / float32(w) * float32(sw)
			dst.Set(x, y, bilinearSample(src, u, v))
		}
	}
	return dst
}

// downsample halves src into a newly allocated w x h buffer by box
// filtering 2x2 source texel neighborhoods.
func downsample(src Buffer, w, h int) Buffer {
	dst := NewLinearBuffer(w, h)
	sw, sh := src.Width(), src.Height()
	for y := 0; y < h; y++ {
		sy := minInt(sh-1, y*2)
		sy1 := minInt(sh-1, sy+1)
		for x := 0; x < w; x++ {
			sx := minInt(sw-1, x*2)
			sx1 := minInt(sw-1, sx+1)
			a := src.Get(sx, sy)
			b := src.Get(sx1, sy)
			c := src.Get(sx, sy1)
			d := src.Get(sx1, sy1)
			dst.Set(x, y, Texel{
				R: (a.R + b.R + c.R + d.R) * 0.25,
				G: (a.G + b.G + c.G + d.G) * 0.25,
				B: (a.B + b.B + c.B + d.B) * 0.25,
				A: (a.A + b.A + c.A + d.A) * 0.25,
			})
		}
	}
	return dst
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func bilinearSample(src Buffer, u, v float32) Texel {
	x0 := int(u)
	y0 := int(v)
	x1 := minInt(src.Width()-1, x0+1)
	y1 := minInt(src.Height()-1, y0+1)
	fx := u - float32(x0)
	fy := v - float32(y0)

	a := src.Get(x0, y0)
	b := src.Get(x1, y0)
	c := src.Get(x0, y1)
	d := src.Get(x1, y1)

	top := lerpTexel(a, b, fx)
	bottom := lerpTexel(c, d, fx)
	return lerpTexel(top, bottom, fy)
}

func lerpTexel(a, b Texel, t float32) Texel {
	return Texel{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}
