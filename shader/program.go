// Package shader defines the programmable vertex/fragment shader contract
// consumed by the gfx pipeline, plus a small set of built-in programs.
//
// A Program is two plain Go callables sharing a Uniforms block and a fixed
// Varyings layout, not a bytecode VM: the caller writes vertex and
// fragment logic directly in Go, the same way the teacher's callback-based
// shader model works.
package shader

import "github.com/pixelforge/swraster/raster"

// VaryingsLayout names each float32 slot of a Varyings block, purely for
// debugging/introspection; the shader stage addresses slots by index.
type VaryingsLayout []string

// VertexInput is what a vertex shader receives for one vertex.
type VertexInput struct {
	Vertex   raster.Vertex
	Uniforms any
}

// VertexOutput is what a vertex shader must produce: the clip-space
// position and the varyings for this vertex, matching VaryingsLayout's
// length.
type VertexOutput struct {
	Position [4]float32
	Varyings []float32
}

// VertexFunc is the vertex stage of a Program.
type VertexFunc func(in VertexInput) VertexOutput

// FragmentInput is what a fragment shader receives for one fragment.
type FragmentInput struct {
	Varyings    []float32
	FrontFacing bool
	Uniforms    any

	// Derivatives, when non-nil, holds the same-quad neighbor varyings a
	// fragment shader may consult to approximate ddx/ddy for texture LOD.
	// It is nil for implementations that don't need screen-space
	// derivatives.
	Derivatives *QuadDerivatives
}

// QuadDerivatives exposes a fragment's 2x2 quad neighbors so a fragment
// shader (or, more commonly, the texture sampler it calls into) can
// estimate screen-space derivatives without the shader author needing to
// know about the underlying block/quad dispatch.
type QuadDerivatives struct {
	// Lane is this fragment's position in quadOrigins order: 0=TL, 1=TR,
	// 2=BL, 3=BR.
	Lane int
	// Varyings holds all four lanes' varyings, populated for covered and
	// uncovered lanes alike; Inside reports whether a given lane was
	// covered by the triangle.
	Varyings [4][]float32
	Inside   [4]bool
}

// FragmentOutput is what a fragment shader must produce.
type FragmentOutput struct {
	Color   [4]float32
	Discard bool
}

// FragmentFunc is the fragment stage of a Program.
type FragmentFunc func(in FragmentInput) FragmentOutput

// Program bundles a vertex stage and fragment stage sharing a varyings
// layout. Uniforms are supplied per-draw-call rather than baked into the
// Program, so one Program instance can be reused across draws with
// different uniform values.
type Program struct {
	Name string

	Vertex   VertexFunc
	Fragment FragmentFunc

	// VaryingsCount is the fixed number of float32 varyings this
	// program's vertex stage writes and fragment stage reads.
	VaryingsCount int

	Layout VaryingsLayout
}

// Clone returns a shallow copy of the Program for use by one worker
// goroutine. VertexFunc and FragmentFunc are plain functions and safe to
// share; Clone exists so callers that stash per-worker scratch state
// alongside a Program (e.g. a scratch Uniforms value) have a natural place
// to do so without mutating the shared original.
func (p *Program) Clone() *Program {
	clone := *p
	return &clone
}
