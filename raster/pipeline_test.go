package raster

import "testing"

func TestPipelineDrawTrianglesWritesCoveredPixels(t *testing.T) {
	p := NewPipeline()
	p.SetViewport(Viewport{Width: 16, Height: 16, DepthNear: 0, DepthFar: 1})
	p.SetDepthFunc(CompareLess)

	pool := NewWorkerPool(2)
	defer pool.Close()

	depth := NewDepthBuffer(16, 16)
	depth.Clear(1.0)

	tri := Triangle{
		V0: ScreenVertex{X: 1, Y: 1, Z: 0.5, InvW: 1, Varyings: []float32{1}},
		V1: ScreenVertex{X: 14, Y: 1, Z: 0.5, InvW: 1, Varyings: []float32{1}},
		V2: ScreenVertex{X: 1, Y: 14, Z: 0.5, InvW: 1, Varyings: []float32{1}},
	}

	var written int
	shade := func(quad *FragmentQuad, lane int) (color [4]float32, discard bool) {
		return [4]float32{1, 1, 1, 1}, false
	}
	write := func(x, y int, color [4]float32) {
		written++
	}

	if err := p.DrawTriangles(pool, []Triangle{tri}, 1, depth, shade, write); err != nil {
		t.Fatalf("DrawTriangles() error = %v", err)
	}
	if written == 0 {
		t.Error("expected at least one fragment written")
	}
}

func TestPipelineDrawTrianglesRejectsZeroViewport(t *testing.T) {
	p := NewPipeline()
	pool := NewWorkerPool(1)
	defer pool.Close()

	depth := NewDepthBuffer(4, 4)
	tri := Triangle{
		V0: ScreenVertex{X: 0, Y: 0},
		V1: ScreenVertex{X: 3, Y: 0},
		V2: ScreenVertex{X: 0, Y: 3},
	}
	err := p.DrawTriangles(pool, []Triangle{tri}, 0, depth, func(*FragmentQuad, int) ([4]float32, bool) {
		return [4]float32{}, false
	}, func(int, int, [4]float32) {})
	if err != ErrZeroViewport {
		t.Errorf("DrawTriangles() error = %v, want ErrZeroViewport", err)
	}
}

func TestPipelineDrawTrianglesShadesOutsideLanesWithDefinedVaryings(t *testing.T) {
	// A triangle whose hypotenuse cuts diagonally through a block: some
	// quads straddling that edge must have lanes outside the triangle,
	// and those lanes must still reach shade with Inside=false and
	// non-nil Varyings (so a derivative over the quad stays defined).
	p := NewPipeline()
	p.SetViewport(Viewport{Width: 16, Height: 16, DepthNear: 0, DepthFar: 1})

	pool := NewWorkerPool(1)
	defer pool.Close()

	depth := NewDepthBuffer(16, 16)
	depth.Clear(1.0)

	tri := Triangle{
		V0: ScreenVertex{X: 0, Y: 0, Z: 0.5, InvW: 1, Varyings: []float32{1}},
		V1: ScreenVertex{X: 16, Y: 0, Z: 0.5, InvW: 1, Varyings: []float32{1}},
		V2: ScreenVertex{X: 0, Y: 16, Z: 0.5, InvW: 1, Varyings: []float32{1}},
	}

	var sawOutsideLane bool
	shade := func(quad *FragmentQuad, lane int) (color [4]float32, discard bool) {
		frag := &quad.Fragments[lane]
		if !frag.Inside {
			sawOutsideLane = true
			if frag.Varyings == nil {
				t.Error("outside lane reached shade with nil Varyings")
			}
		}
		return [4]float32{}, false
	}
	write := func(x, y int, color [4]float32) {}

	if err := p.DrawTriangles(pool, []Triangle{tri}, 1, depth, shade, write); err != nil {
		t.Fatalf("DrawTriangles() error = %v", err)
	}
	if !sawOutsideLane {
		t.Error("expected at least one outside-triangle lane to reach shade along the hypotenuse")
	}
}

func TestPipelineDrawTrianglesDepthTestBlocksOccluded(t *testing.T) {
	p := NewPipeline()
	p.SetViewport(Viewport{Width: 8, Height: 8})
	p.SetDepthFunc(CompareLess)

	pool := NewWorkerPool(1)
	defer pool.Close()

	depth := NewDepthBuffer(8, 8)
	depth.Clear(1.0)

	near := Triangle{
		V0: ScreenVertex{X: 0, Y: 0, Z: 0.1, InvW: 1},
		V1: ScreenVertex{X: 8, Y: 0, Z: 0.1, InvW: 1},
		V2: ScreenVertex{X: 0, Y: 8, Z: 0.1, InvW: 1},
	}
	far := Triangle{
		V0: ScreenVertex{X: 0, Y: 0, Z: 0.9, InvW: 1},
		V1: ScreenVertex{X: 8, Y: 0, Z: 0.9, InvW: 1},
		V2: ScreenVertex{X: 0, Y: 8, Z: 0.9, InvW: 1},
	}

	var colors []float32
	shade := func(quad *FragmentQuad, lane int) ([4]float32, bool) {
		return [4]float32{quad.Fragments[lane].Depth, 0, 0, 1}, false
	}
	write := func(x, y int, color [4]float32) {
		colors = append(colors, color[0])
	}

	if err := p.DrawTriangles(pool, []Triangle{near}, 0, depth, shade, write); err != nil {
		t.Fatal(err)
	}
	if err := p.DrawTriangles(pool, []Triangle{far}, 0, depth, shade, write); err != nil {
		t.Fatal(err)
	}
	for _, c := range colors {
		if c > 0.5 {
			t.Errorf("far triangle wrote depth %v after near triangle passed depth test", c)
		}
	}
}
