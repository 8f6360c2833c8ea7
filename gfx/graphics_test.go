package gfx

import (
	"testing"

	"github.com/pixelforge/swraster/framebuffer"
	"github.com/pixelforge/swraster/mesh"
	"github.com/pixelforge/swraster/raster"
)

type identityCamera struct{}

func (identityCamera) ModelViewProjection() [16]float32 { return identity4() }
func (identityCamera) Model() [16]float32               { return identity4() }

func identity4() [16]float32 {
	var m [16]float32
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

func TestInitRejectsZeroFramebuffer(t *testing.T) {
	if _, err := Init(0, 10, 1); err != ErrZeroFramebuffer {
		t.Errorf("Init(0, 10, 1) error = %v, want ErrZeroFramebuffer", err)
	}
}

func TestDrawMeshRejectsWithNoProgramBoundIsUnreachableAfterInit(t *testing.T) {
	// Init always binds solid_color by default, so this documents that
	// contract rather than exercising a nil program directly (Graphics
	// has no exported way to unset the program once Init has run).
	g, err := Init(8, 8, 1)
	if err != nil {
		t.Fatal(err)
	}
	g.SetCamera(identityCamera{})
	buf := triangleMesh()
	if err := g.DrawMesh(buf, buf.Triangles()); err != nil {
		t.Errorf("DrawMesh() error = %v, want nil with default program bound", err)
	}
}

func triangleMesh() *mesh.Buffer {
	return &mesh.Buffer{
		Vertices: []raster.Vertex{
			{Position: [3]float32{-0.5, -0.5, 0}, Color: [4]float32{1, 0, 0, 1}},
			{Position: [3]float32{0.5, -0.5, 0}, Color: [4]float32{0, 1, 0, 1}},
			{Position: [3]float32{0, 0.5, 0}, Color: [4]float32{0, 0, 1, 1}},
		},
		Indices: []int{0, 1, 2},
	}
}

func TestDrawMeshFillsTriangleInterior(t *testing.T) {
	g, err := Init(32, 32, 2)
	if err != nil {
		t.Fatal(err)
	}
	g.SetUniformColor(1, 1, 1, 1)
	g.SetCamera(identityCamera{})
	g.Clear()

	buf := triangleMesh()
	if err := g.DrawMesh(buf, buf.Triangles()); err != nil {
		t.Fatal(err)
	}
	g.SwapBuffers()

	out := g.GetOutput()
	var litPixels int
	for _, c := range out {
		if c.R > 0 || c.G > 0 || c.B > 0 {
			litPixels++
		}
	}
	if litPixels == 0 {
		t.Error("expected DrawMesh to light at least one pixel inside the triangle")
	}
}

func TestDrawMeshRejectsInvalidSubmesh(t *testing.T) {
	g, err := Init(8, 8, 1)
	if err != nil {
		t.Fatal(err)
	}
	buf := triangleMesh()
	err = g.DrawMesh(buf, mesh.Submesh{IndexOffset: 0, IndexCount: 100})
	if err != ErrInvalidSubmesh {
		t.Errorf("DrawMesh() error = %v, want ErrInvalidSubmesh", err)
	}
}

func TestUseProgramUnknownNameErrors(t *testing.T) {
	g, err := Init(8, 8, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.UseProgram("does_not_exist"); err == nil {
		t.Error("expected error selecting an unregistered program")
	}
}

func TestSwapBuffersPublishesClearedFrame(t *testing.T) {
	g, err := Init(4, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	g.SetClearValues(framebuffer.Color{R: 10, G: 20, B: 30, A: 255}, 1.0)
	g.Clear()
	g.SwapBuffers()

	out := g.GetOutput()
	if out[0].R != 10 || out[0].G != 20 || out[0].B != 30 {
		t.Errorf("GetOutput()[0] = %+v, want clear color", out[0])
	}
}
