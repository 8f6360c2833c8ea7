// Package gfx is the external facade: init/use_program/set_*/clear/
// draw_mesh/swap_buffers/get_output, wiring the raster, shader, texture,
// mesh, and framebuffer packages into one pipeline.
package gfx

import (
	"sync"

	"github.com/soypat/glgl/math/ms2"

	"github.com/pixelforge/swraster/framebuffer"
	"github.com/pixelforge/swraster/mesh"
	"github.com/pixelforge/swraster/raster"
	"github.com/pixelforge/swraster/shader"
	"github.com/pixelforge/swraster/texture"
)

// MatrixProvider supplies the per-draw transform matrices a caller
// computes from its own scene graph. Graphics does not compose view,
// projection, and model matrices itself — it consumes whatever the
// provider has already composed, in column-major order.
type MatrixProvider interface {
	ModelViewProjection() [16]float32
	Model() [16]float32
}

// TextureSource supplies a texture for binding to the current material.
type TextureSource interface {
	Texture() *texture.Texture
}

// frontFacingSlot is an extra varyings slot appended after every program's
// declared varyings, carrying a constant 0/1 per triangle so the fragment
// stage can recover gl_FrontFacing after barycentric interpolation has
// discarded which original triangle a fragment came from.
const frontFacingSlot = 1

// Graphics is the top-level facade. Zero value is not usable; construct
// with Init.
type Graphics struct {
	mu sync.Mutex

	fb       *framebuffer.Framebuffer
	pipeline *raster.Pipeline
	pool     *raster.WorkerPool
	registry *shader.Registry
	sampler  texture.Sampler

	program      *shader.Program
	uniforms     *shader.MVP
	boundTexture *texture.Texture

	vertexCache []vertexCacheEntry
	cacheMesh   mesh.Source
}

type vertexCacheEntry struct {
	valid  bool
	record raster.VertexRecord
}

// Init allocates a Graphics facade targeting a width x height framebuffer,
// with a worker pool sized to workers (values <= 0 default to 1 worker,
// a single-threaded but still-correct configuration useful for tests).
func Init(width, height, workers int) (*Graphics, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrZeroFramebuffer
	}
	g := &Graphics{
		fb:       framebuffer.New(width, height),
		pipeline: raster.NewPipeline(),
		pool:     raster.NewWorkerPool(workers),
		registry: shader.NewRegistry(),
		uniforms: &shader.MVP{Color: [4]float32{1, 1, 1, 1}},
	}
	// Reversed-Z by default: the 0.1..100 depth range is listed far-to-near
	// so near geometry maps to larger depths, tested with CompareGreater
	// against a cleared depth of 0.
	g.pipeline.SetViewport(raster.Viewport{Width: width, Height: height, DepthNear: 100.0, DepthFar: 0.1})
	g.pipeline.SetDepthFunc(raster.CompareGreater)
	g.fb.SetClearValues(framebuffer.Color{}, 0.0)
	g.registry.Register(shader.NewTexturedProgram(g.sampleBoundTexture))
	g.program = shader.SolidColorProgram
	return g, nil
}

// Registry exposes the program registry so callers can register custom
// materials before selecting them by name with UseProgram.
func (g *Graphics) Registry() *shader.Registry { return g.registry }

// UseProgram selects the active material by name.
func (g *Graphics) UseProgram(name string) error {
	p, err := g.registry.Lookup(name)
	if err != nil {
		return err
	}
	g.mu.Lock()
	g.program = p
	g.mu.Unlock()
	return nil
}

// SetUniformColor sets the uniform base color used by every built-in
// material.
func (g *Graphics) SetUniformColor(r, gC, b, a float32) {
	g.mu.Lock()
	g.uniforms.Color = [4]float32{r, gC, b, a}
	g.mu.Unlock()
}

// SetLight configures BlinnPhongProgram's uniform light parameters.
func (g *Graphics) SetLight(dir, color, viewPos [3]float32) {
	g.mu.Lock()
	g.uniforms.LightDir = dir
	g.uniforms.LightColor = color
	g.uniforms.ViewPos = viewPos
	g.mu.Unlock()
}

// SetCamera applies a MatrixProvider's matrices to the current uniforms.
func (g *Graphics) SetCamera(mp MatrixProvider) {
	g.mu.Lock()
	g.uniforms.ModelViewProjection = mp.ModelViewProjection()
	g.uniforms.Model = mp.Model()
	g.mu.Unlock()
}

// BindTexture sets the texture sampled by the "textured" built-in material.
func (g *Graphics) BindTexture(src TextureSource) {
	g.mu.Lock()
	g.boundTexture = src.Texture()
	g.mu.Unlock()
	if g.boundTexture != nil {
		g.boundTexture.EnsureMipmaps(Logger())
	}
}

func (g *Graphics) sampleBoundTexture(u, v float32) [4]float32 {
	tex := g.boundTexture
	if tex == nil {
		return [4]float32{1, 0, 1, 1} // magenta: conventional missing-texture signal
	}
	t := g.sampler.SampleUV(tex, ms2.Vec{X: u, Y: v}, 0)
	return [4]float32{t.R, t.G, t.B, t.A}
}

// SetViewport reconfigures the rasterizer's viewport. It does not resize
// the framebuffer; callers that want a different output resolution must
// construct a new Graphics.
func (g *Graphics) SetViewport(v raster.Viewport) {
	g.pipeline.SetViewport(v)
}

// SetDepthFunc configures the depth comparison. Pair CompareGreater with
// SetClearValues(..., 0.0) for reversed-Z, or CompareLess with
// SetClearValues(..., 1.0) for the conventional convention.
func (g *Graphics) SetDepthFunc(fn raster.CompareFunc) {
	g.pipeline.SetDepthFunc(fn)
}

func (g *Graphics) SetDepthWrite(enabled bool) { g.pipeline.SetDepthWrite(enabled) }
func (g *Graphics) SetCullMode(m raster.CullMode) { g.pipeline.SetCullMode(m) }
func (g *Graphics) SetFrontFace(f raster.FrontFace) { g.pipeline.SetFrontFace(f) }

// SetClearValues configures the color and depth Clear resets to.
func (g *Graphics) SetClearValues(c framebuffer.Color, depth float32) {
	g.fb.SetClearValues(c, depth)
}

// Clear resets the back buffer's color and depth planes.
func (g *Graphics) Clear() {
	g.fb.Clear()
}

// SwapBuffers publishes the back buffer as the new front buffer.
func (g *Graphics) SwapBuffers() {
	g.fb.Swap()
}

// GetOutput returns the most recently swapped-in frame, row-major,
// top-left origin.
func (g *Graphics) GetOutput() []framebuffer.Color {
	return g.fb.Output()
}

// DrawMesh runs the full pipeline — vertex assembly, vertex shading,
// clipping, perspective divide, viewport transform, face assembly and
// culling, and scan conversion — for the given Submesh of src, using the
// currently bound program and uniforms.
func (g *Graphics) DrawMesh(src mesh.Source, sub mesh.Submesh) error {
	g.mu.Lock()
	program := g.program
	uniforms := g.uniforms
	g.mu.Unlock()

	if program == nil {
		return ErrNoProgramBound
	}
	if sub.IndexOffset < 0 || sub.IndexCount < 0 || sub.IndexOffset+sub.IndexCount > src.IndexCount() {
		return ErrInvalidSubmesh
	}

	cullMode, frontFace, _, _, viewport := g.pipeline.Snapshot()
	varyingsLen := program.VaryingsCount + frontFacingSlot

	if g.cacheMesh != src {
		g.cacheMesh = src
		g.vertexCache = make([]vertexCacheEntry, src.VertexCount())
	} else {
		for i := range g.vertexCache {
			g.vertexCache[i].valid = false
		}
	}

	shadeVertex := func(idx int) *raster.VertexRecord {
		entry := &g.vertexCache[idx]
		if entry.valid {
			return &entry.record
		}
		v := src.Vertex(idx)
		out := program.Vertex(shader.VertexInput{Vertex: v, Uniforms: uniforms})
		entry.record = raster.VertexRecord{
			ID:      idx,
			Source:  v,
			Clip:    out.Position,
			Outcode: raster.ComputeOutcode(out.Position),
		}
		entry.record.Varyings = out.Varyings
		entry.valid = true
		return &entry.record
	}

	var tris []raster.Triangle

	for i := sub.IndexOffset; i+2 < sub.IndexOffset+sub.IndexCount; i += 3 {
		i0 := src.Index(i)
		i1 := src.Index(i + 1)
		i2 := src.Index(i + 2)

		v0 := shadeVertex(i0)
		v1 := shadeVertex(i1)
		v2 := shadeVertex(i2)

		if raster.TrivialReject(v0.Outcode, v1.Outcode, v2.Outcode) {
			continue
		}

		var clipVerts []raster.ClipSpaceVertex
		if raster.NeedsClip(v0.Outcode, v1.Outcode, v2.Outcode) {
			clipVerts = raster.ClipTriangle(
				raster.ClipSpaceVertex{Position: v0.Clip, Varyings: v0.Varyings},
				raster.ClipSpaceVertex{Position: v1.Clip, Varyings: v1.Varyings},
				raster.ClipSpaceVertex{Position: v2.Clip, Varyings: v2.Varyings},
			)
		} else {
			clipVerts = []raster.ClipSpaceVertex{
				{Position: v0.Clip, Varyings: v0.Varyings},
				{Position: v1.Clip, Varyings: v1.Varyings},
				{Position: v2.Clip, Varyings: v2.Varyings},
			}
		}

		for t := 0; t+2 < len(clipVerts); t += 3 {
			sv0 := viewportTransform(clipVerts[t], viewport)
			sv1 := viewportTransform(clipVerts[t+1], viewport)
			sv2 := viewportTransform(clipVerts[t+2], viewport)
			tri := raster.Triangle{V0: sv0, V1: sv1, V2: sv2}

			face := raster.FaceRecord{I0: i0, I1: i1, I2: i2}
			face.Discard = raster.ShouldCull(tri, cullMode, frontFace)
			if face.Discard {
				continue
			}
			face.FrontFacing = raster.IsFrontFacing(tri, frontFace)
			appendFrontFacing(&tri, face.FrontFacing)
			tris = append(tris, tri)
		}
	}

	if len(tris) == 0 {
		return nil
	}

	shade := func(quad *raster.FragmentQuad, lane int) (color [4]float32, discard bool) {
		frag := &quad.Fragments[lane]
		n := len(frag.Varyings)
		declared := frag.Varyings[:n-frontFacingSlot]
		frontFacing := frag.Varyings[n-frontFacingSlot] > 0.5

		out := program.Fragment(shader.FragmentInput{
			Varyings:    declared,
			FrontFacing: frontFacing,
			Uniforms:    uniforms,
			Derivatives: buildDerivatives(quad, lane, n-frontFacingSlot),
		})
		return out.Color, out.Discard
	}

	write := func(x, y int, color [4]float32) {
		g.fb.SetPixel(x, y, toColor(color))
	}

	return g.pipeline.DrawTriangles(g.pool, tris, varyingsLen, g.fb.Depth(), shade, write)
}

// buildDerivatives exposes all four quad lanes' varyings, not just the ones
// that lie inside the triangle: a ddx/ddy estimate at an edge pixel needs
// its neighbor's value even when that neighbor missed coverage, which is
// exactly why the rasterizer still computes extended barycentric weights
// for outside lanes instead of leaving them zero.
func buildDerivatives(quad *raster.FragmentQuad, lane, n int) *shader.QuadDerivatives {
	d := &shader.QuadDerivatives{Lane: lane}
	for i := 0; i < 4; i++ {
		f := &quad.Fragments[i]
		d.Inside[i] = f.Inside
		if len(f.Varyings) >= n {
			d.Varyings[i] = f.Varyings[:n]
		}
	}
	return d
}

func appendFrontFacing(tri *raster.Triangle, frontFacing bool) {
	val := float32(0)
	if frontFacing {
		val = 1
	}
	tri.V0.Varyings = append(append([]float32{}, tri.V0.Varyings...), val)
	tri.V1.Varyings = append(append([]float32{}, tri.V1.Varyings...), val)
	tri.V2.Varyings = append(append([]float32{}, tri.V2.Varyings...), val)
}

func viewportTransform(v raster.ClipSpaceVertex, vp raster.Viewport) raster.ScreenVertex {
	invW := float32(1)
	if v.Position[3] != 0 {
		invW = 1 / v.Position[3]
	}
	ndcX := v.Position[0] * invW
	ndcY := v.Position[1] * invW
	ndcZ := v.Position[2] * invW

	screenX := (ndcX*0.5 + 0.5) * float32(vp.Width) + float32(vp.X)
	screenY := (ndcY*0.5 + 0.5) * float32(vp.Height) + float32(vp.Y)
	// Reversed-Z is reached by swapping DepthNear/DepthFar at the
	// Viewport rather than by substituting the spec's literal formula
	// here; both conventions pass through the same affine map.
	screenZ := vp.DepthNear + (ndcZ*0.5+0.5)*(vp.DepthFar-vp.DepthNear)

	return raster.ScreenVertex{
		X: screenX, Y: screenY, Z: screenZ,
		InvW:     invW,
		Varyings: append([]float32{}, v.Varyings...),
	}
}

func toColor(c [4]float32) framebuffer.Color {
	return framebuffer.Color{
		R: clamp255(c[0]), G: clamp255(c[1]), B: clamp255(c[2]), A: clamp255(c[3]),
	}
}

func clamp255(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}
