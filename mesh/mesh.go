// Package mesh defines the vertex/index buffer contract a caller supplies
// to Graphics.DrawMesh, plus a simple in-memory implementation.
package mesh

import "github.com/pixelforge/swraster/raster"

// Source is the interface Graphics.DrawMesh consumes to read vertex and
// index data without committing callers to any particular storage layout.
type Source interface {
	// VertexCount returns the number of vertices addressable by indices.
	VertexCount() int
	// Vertex returns the attribute record for vertex index i.
	Vertex(i int) raster.Vertex
	// IndexCount returns the number of indices; IndexCount/3 is the
	// triangle count.
	IndexCount() int
	// Index returns the vertex index at position i.
	Index(i int) int
}

// Submesh identifies a contiguous run of indices within a larger Source,
// letting one vertex/index buffer back multiple draw calls with different
// materials.
type Submesh struct {
	IndexOffset int
	IndexCount  int
}

// Buffer is a minimal in-memory Source: a flat vertex slice and a flat
// index slice.
type Buffer struct {
	Vertices []raster.Vertex
	Indices  []int
}

func (b *Buffer) VertexCount() int         { return len(b.Vertices) }
func (b *Buffer) Vertex(i int) raster.Vertex { return b.Vertices[i] }
func (b *Buffer) IndexCount() int          { return len(b.Indices) }
func (b *Buffer) Index(i int) int          { return b.Indices[i] }

// Triangles returns the Submesh covering this buffer's entire index range,
// for callers that draw the whole mesh as one material.
func (b *Buffer) Triangles() Submesh {
	return Submesh{IndexOffset: 0, IndexCount: len(b.Indices)}
}
