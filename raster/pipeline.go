package raster

import "sync"

// Pipeline holds the rasterizer-wide state shared across draw calls:
// culling convention, depth test configuration, and the viewport. Setter
// methods are guarded by a mutex since a Graphics facade may reconfigure
// state from one goroutine while a previous draw's worker pool is still
// finishing on others.
type Pipeline struct {
	mu sync.Mutex

	cullMode  CullMode
	frontFace FrontFace

	depthFunc  CompareFunc
	depthWrite bool

	viewport Viewport
}

// NewPipeline returns a Pipeline with the conventional defaults: back-face
// culling, counter-clockwise front faces, LESS depth comparison with
// writes enabled. Callers that want the reversed-Z convention described in
// the design notes call SetDepthFunc(CompareGreater) and clear the depth
// buffer to 0 instead of 1.
func NewPipeline() *Pipeline {
	return &Pipeline{
		cullMode:   CullBack,
		frontFace:  FrontFaceCCW,
		depthFunc:  CompareLess,
		depthWrite: true,
	}
}

func (p *Pipeline) SetCullMode(mode CullMode) {
	p.mu.Lock()
	p.cullMode = mode
	p.mu.Unlock()
}

func (p *Pipeline) SetFrontFace(f FrontFace) {
	p.mu.Lock()
	p.frontFace = f
	p.mu.Unlock()
}

// SetDepthFunc configures the comparison used to accept a new fragment's
// depth against the buffer. Pair CompareGreater with a 0.0 clear depth for
// a reversed-Z setup, or CompareLess with a 1.0 clear depth for the
// conventional one; Pipeline enforces neither convention itself.
func (p *Pipeline) SetDepthFunc(fn CompareFunc) {
	p.mu.Lock()
	p.depthFunc = fn
	p.mu.Unlock()
}

func (p *Pipeline) SetDepthWrite(enabled bool) {
	p.mu.Lock()
	p.depthWrite = enabled
	p.mu.Unlock()
}

func (p *Pipeline) SetViewport(v Viewport) {
	p.mu.Lock()
	p.viewport = v
	p.mu.Unlock()
}

// snapshot copies the current configuration under lock so a draw call can
// run against a stable view of it without holding the mutex for the
// duration of rasterization.
func (p *Pipeline) snapshot() (CullMode, FrontFace, CompareFunc, bool, Viewport) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cullMode, p.frontFace, p.depthFunc, p.depthWrite, p.viewport
}

// Snapshot exposes the current configuration for callers (such as a
// Graphics facade) that need it to assemble geometry outside Pipeline's
// own DrawTriangles call.
func (p *Pipeline) Snapshot() (CullMode, FrontFace, CompareFunc, bool, Viewport) {
	return p.snapshot()
}

// ShadeFunc is invoked once per lane of every quad walked, covered or not
// (Fragment.Inside tells which); only covered lanes that pass the depth
// test and are not discarded reach the WriteFunc. It returns
// the fragment's output color and whether the fragment shader elected to
// discard it (e.g. alpha test), matching the programmable fragment stage's
// callback contract.
type ShadeFunc func(quad *FragmentQuad, lane int) (color [4]float32, discard bool)

// WriteFunc commits a shaded, depth-tested fragment's color to the target.
type WriteFunc func(x, y int, color [4]float32)

// DrawTriangles bins tris to the pool's block grid and rasterizes each
// block concurrently: for every block a worker walks its fragment quads,
// computes coverage, barycentric weights, depth, and perspective-correct
// varyings for all four lanes (so screen-space derivatives stay defined
// even at triangle edges), performs the depth test for covered lanes,
// invokes shade on all four lanes, and invokes write for every covered
// lane that passed the depth test and was not discarded.
//
// varyingsLen is the number of float32 varyings per vertex; every triangle
// in tris must use the same layout (ErrVaryingsLayoutMismatch otherwise).
func (p *Pipeline) DrawTriangles(pool *WorkerPool, tris []Triangle, varyingsLen int, depth *DepthBuffer, shade ShadeFunc, write WriteFunc) error {
	_, _, depthFunc, depthWrite, viewport := p.snapshot()
	if viewport.Width <= 0 || viewport.Height <= 0 {
		return ErrZeroViewport
	}

	grid := NewBlockGrid(viewport.Width, viewport.Height)

	incrementals := make([]IncrementalTriangle, 0, len(tris))
	for _, t := range tris {
		if len(t.V0.Varyings) != varyingsLen || len(t.V1.Varyings) != varyingsLen || len(t.V2.Varyings) != varyingsLen {
			return ErrVaryingsLayoutMismatch
		}
		it, ok := NewIncrementalTriangle(t, viewport.Width, viewport.Height)
		if !ok {
			continue
		}
		incrementals = append(incrementals, it)
	}
	if len(incrementals) == 0 {
		return nil
	}

	perBlock := binTrianglesToBlocks(grid, incrementals)

	for blockIdx, members := range perBlock {
		if len(members) == 0 {
			continue
		}
		block := grid.Block(blockIdx%grid.Cols, blockIdx/grid.Cols)
		members := members
		pool.Submit(func() {
			rasterizeBlock(block, members, varyingsLen, depth, depthFunc, depthWrite, shade, write)
		})
	}
	pool.Wait()
	return nil
}

// binTrianglesToBlocks assigns each incremental triangle to every block
// its bounding box overlaps.
func binTrianglesToBlocks(grid BlockGrid, tris []IncrementalTriangle) [][]*IncrementalTriangle {
	perBlock := make([][]*IncrementalTriangle, grid.Count())
	for i := range tris {
		t := &tris[i]
		colStart := maxInt(0, t.MinX/BlockSize)
		colEnd := minInt(grid.Cols-1, t.MaxX/BlockSize)
		rowStart := maxInt(0, t.MinY/BlockSize)
		rowEnd := minInt(grid.Rows-1, t.MaxY/BlockSize)
		for row := rowStart; row <= rowEnd; row++ {
			for col := colStart; col <= colEnd; col++ {
				idx := row*grid.Cols + col
				perBlock[idx] = append(perBlock[idx], t)
			}
		}
	}
	return perBlock
}

func rasterizeBlock(block Block, tris []*IncrementalTriangle, varyingsLen int, depth *DepthBuffer, depthFunc CompareFunc, depthWrite bool, shade ShadeFunc, write WriteFunc) {
	x0, y0 := block.X, block.Y
	x1, y1 := block.X+block.Width, block.Y+block.Height

	for _, it := range tris {
		minX := maxInt(x0, it.MinX)
		minY := maxInt(y0, it.MinY)
		maxX := minInt(x1-1, it.MaxX)
		maxY := minInt(y1-1, it.MaxY)
		if minX > maxX || minY > maxY {
			continue
		}

		WalkQuads(minX, minY, maxX+1, maxY+1, func(qx, qy int) {
			// Every lane is evaluated regardless of coverage: a derivative
			// needs its quad neighbor's varyings defined even when that
			// neighbor falls outside the triangle.
			var quad FragmentQuad
			for lane, off := range quadOrigins {
				px, py := qx+off[0], qy+off[1]
				frag := &quad.Fragments[lane]
				frag.X, frag.Y = px, py

				bary, inside := it.SampleExtended(px, py)
				frag.Inside = inside
				frag.Bary = bary
				frag.Depth = InterpolateDepth(bary, it.Tri)
				frag.InvW = InterpolateInvW(bary, it.Tri)
				if frag.Varyings == nil {
					frag.Varyings = make([]float32, varyingsLen)
				}
				InterpolateVaryings(frag.Varyings, bary, it.Tri, frag.InvW)
			}
			for lane := range quad.Fragments {
				frag := &quad.Fragments[lane]
				passedDepth := false
				if frag.Inside {
					if depthWrite {
						passedDepth = depth.TestAndSet(frag.X, frag.Y, frag.Depth, depthFunc)
					} else {
						passedDepth = compareDepth(frag.Depth, depth.At(frag.X, frag.Y), depthFunc)
					}
				}
				color, discard := shade(&quad, lane)
				if !frag.Inside || !passedDepth || discard {
					continue
				}
				write(frag.X, frag.Y, color)
			}
		})
	}
}
