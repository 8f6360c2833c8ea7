package raster

// BlockSize is the edge length in pixels of a screen-space block: the unit
// of work dispatched to the worker pool. Each block is further walked in
// 2x2 fragment quads so the fragment stage can estimate screen-space
// derivatives (texture LOD) from same-block neighbors.
const BlockSize = 32

// QuadSize is the edge length in pixels of a fragment quad.
const QuadSize = 2

// Block is one BlockSize x BlockSize screen-space work unit.
type Block struct {
	X, Y          int
	Width, Height int
}

// BlockGrid partitions a width x height target into Blocks, the last row
// and column clipped to the target's actual bounds.
type BlockGrid struct {
	Width, Height int
	Cols, Rows    int
}

// NewBlockGrid builds the grid of blocks covering a width x height target.
func NewBlockGrid(width, height int) BlockGrid {
	cols := (width + BlockSize - 1) / BlockSize
	rows := (height + BlockSize - 1) / BlockSize
	return BlockGrid{Width: width, Height: height, Cols: cols, Rows: rows}
}

// Block returns the block at grid position (col, row).
func (g BlockGrid) Block(col, row int) Block {
	x := col * BlockSize
	y := row * BlockSize
	w := minInt(BlockSize, g.Width-x)
	h := minInt(BlockSize, g.Height-y)
	return Block{X: x, Y: y, Width: w, Height: h}
}

// Count returns the total number of blocks in the grid.
func (g BlockGrid) Count() int { return g.Cols * g.Rows }

// Intersects reports whether an incremental triangle's bounding box
// overlaps the block, used to bin triangles to the blocks they can
// possibly touch before dispatching per-block work to the pool.
func (g BlockGrid) Intersects(b Block, it *IncrementalTriangle) bool {
	return it.MaxX >= b.X && it.MinX < b.X+b.Width &&
		it.MaxY >= b.Y && it.MinY < b.Y+b.Height
}

// FragmentQuad is a 2x2 group of fragments produced together so the
// fragment stage can estimate ddx/ddy screen-space derivatives (texture
// LOD selection) from the difference between quad lanes. All four lanes
// are always populated, even when one or more fall outside the triangle
// (Fragment.Inside is false for those), since a derivative needs its
// neighbor's value regardless of coverage.
type FragmentQuad struct {
	Fragments [4]Fragment
}

// quadOrigins lists the four lane offsets within a quad in a fixed order:
// top-left, top-right, bottom-left, bottom-right.
var quadOrigins = [4][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}

// WalkQuads calls fn once per 2x2 fragment quad covering [x0,x1) x [y0,y1),
// aligning quad boundaries to even pixel coordinates so adjacent blocks'
// quads never straddle a block seam.
func WalkQuads(x0, y0, x1, y1 int, fn func(qx, qy int)) {
	startX := x0 &^ 1
	startY := y0 &^ 1
	for qy := startY; qy < y1; qy += QuadSize {
		for qx := startX; qx < x1; qx += QuadSize {
			fn(qx, qy)
		}
	}
}
