// Package framebuffer holds the color and depth planes a Graphics facade
// draws into and the front/back swap that exposes a stable frame to readers
// while the next frame is being rasterized.
package framebuffer

import "github.com/pixelforge/swraster/raster"

// Color is a packed RGBA color, one byte per channel, matching the
// conventional 8-bit-per-channel presentation format consumed by display
// or encoding code downstream of get_output.
type Color struct {
	R, G, B, A uint8
}

// Framebuffer owns a color plane and a depth plane for one render target,
// plus a second color plane used as the front buffer so swap_buffers can
// hand a complete frame to a reader without blocking the next draw.
type Framebuffer struct {
	width, height int

	back  []Color
	front []Color

	depth *raster.DepthBuffer

	clearColor Color
	clearDepth float32
}

// New allocates a framebuffer of the given pixel dimensions. Width and
// height must both be positive; New does not validate this itself —
// callers at the facade boundary are responsible for rejecting
// zero-or-negative sizes per the programmer-contract error tier.
func New(width, height int) *Framebuffer {
	return &Framebuffer{
		width:      width,
		height:     height,
		back:       make([]Color, width*height),
		front:      make([]Color, width*height),
		depth:      raster.NewDepthBuffer(width, height),
		clearDepth: 1.0,
	}
}

// Width and Height report the framebuffer's pixel dimensions.
func (f *Framebuffer) Width() int  { return f.width }
func (f *Framebuffer) Height() int { return f.height }

// Depth returns the depth plane backing this framebuffer.
func (f *Framebuffer) Depth() *raster.DepthBuffer { return f.depth }

// SetClearValues configures the values Clear will use. clearDepth should
// be 1.0 for the conventional LESS convention or 0.0 for reversed-Z
// GREATER, matching whatever CompareFunc the bound pipeline uses.
func (f *Framebuffer) SetClearValues(color Color, clearDepth float32) {
	f.clearColor = color
	f.clearDepth = clearDepth
}

// Clear resets the back color plane and depth plane to their configured
// clear values.
func (f *Framebuffer) Clear() {
	for i := range f.back {
		f.back[i] = f.clearColor
	}
	f.depth.Clear(f.clearDepth)
}

// SetPixel writes a color to the back buffer at (x, y). Out-of-bounds
// writes are silently dropped, matching the rasterizer's scissor-clamped
// dispatch which should never produce one in practice.
func (f *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	f.back[y*f.width+x] = c
}

// At reads a color from the back buffer at (x, y).
func (f *Framebuffer) At(x, y int) Color {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return Color{}
	}
	return f.back[y*f.width+x]
}

// Swap exchanges the front and back color planes, publishing the frame
// just rendered for GetOutput while the next Clear/draw cycle begins
// writing into what is now the back buffer.
func (f *Framebuffer) Swap() {
	f.front, f.back = f.back, f.front
}

// Output returns the most recently swapped-in front buffer, row-major,
// top-left origin.
func (f *Framebuffer) Output() []Color {
	return f.front
}
