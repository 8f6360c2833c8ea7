package raster

// DepthBuffer is a single-plane float32 depth/Z buffer. It deliberately
// does not hardcode a near/far convention: callers choose the clear value
// and CompareFunc, so both a conventional [0,1] LESS setup and a
// reversed-Z [1,0] GREATER setup are expressed the same way.
type DepthBuffer struct {
	width, height int
	data          []float32
}

// NewDepthBuffer allocates a depth buffer of the given dimensions.
func NewDepthBuffer(width, height int) *DepthBuffer {
	return &DepthBuffer{
		width:  width,
		height: height,
		data:   make([]float32, width*height),
	}
}

// Width and Height report the buffer's dimensions.
func (d *DepthBuffer) Width() int  { return d.width }
func (d *DepthBuffer) Height() int { return d.height }

// Clear fills the buffer with value (1.0 for the conventional convention,
// 0.0 for reversed-Z).
func (d *DepthBuffer) Clear(value float32) {
	for i := range d.data {
		d.data[i] = value
	}
}

// At returns the depth value at (x, y). Out-of-bounds reads return 0 and
// never panic, matching the sampler's clamp-at-edges posture for
// out-of-contract coordinates.
func (d *DepthBuffer) At(x, y int) float32 {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return 0
	}
	return d.data[y*d.width+x]
}

// Set writes a depth value at (x, y); out-of-bounds writes are silently
// dropped (§7 domain edge case, not an error).
func (d *DepthBuffer) Set(x, y int, value float32) {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return
	}
	d.data[y*d.width+x] = value
}

// TestAndSet performs the depth comparison compare(src, current) and, if it
// passes, writes src into the buffer. It reports whether the test passed.
// This is the single read-modify-write used by the rasterizer's per-pixel
// depth test so the comparison and write never race within one goroutine's
// block of pixels.
func (d *DepthBuffer) TestAndSet(x, y int, src float32, compare CompareFunc) bool {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return false
	}
	idx := y*d.width + x
	if compareDepth(src, d.data[idx], compare) {
		d.data[idx] = src
		return true
	}
	return false
}
