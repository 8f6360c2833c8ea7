package texture

import (
	"fmt"
	"testing"
)

func TestLinearBufferIndexing(t *testing.T) {
	b := NewLinearBuffer(4, 4)
	want := Texel{R: 1, G: 0.5, B: 0.25, A: 1}
	b.Set(2, 3, want)
	if got := b.Get(2, 3); got != want {
		t.Errorf("Get(2,3) = %v, want %v", got, want)
	}
}

func TestLinearBufferOutOfBoundsIsSilent(t *testing.T) {
	b := NewLinearBuffer(4, 4)
	b.Set(-1, 0, Texel{R: 1})
	b.Set(0, 100, Texel{R: 1})
	if got := b.Get(100, 100); got != (Texel{}) {
		t.Errorf("out-of-bounds Get() = %v, want zero Texel", got)
	}
}

func TestTiledBufferRoundTrip(t *testing.T) {
	b := NewTiledBuffer(9, 5) // not a multiple of the 4x4 tile size
	for y := 0; y < 5; y++ {
		for x := 0; x < 9; x++ {
			b.Set(x, y, Texel{R: float32(x), G: float32(y)})
		}
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 9; x++ {
			got := b.Get(x, y)
			if got.R != float32(x) || got.G != float32(y) {
				t.Fatalf("Get(%d,%d) = %v, want R=%d G=%d", x, y, got, x, y)
			}
		}
	}
}

func TestTiledBufferIndexFormula(t *testing.T) {
	// Matches the bit-shift/mask layout: tile (1,0) at tileSize=4 starts
	// at index (0*tileCols + 1) << 2 << 2 = 16 for a 2-tile-wide buffer.
	b := NewTiledBuffer(8, 4) // tileCols = 2
	idx, ok := b.index(4, 0)
	if !ok {
		t.Fatal("expected in-bounds index")
	}
	if idx != 16 {
		t.Errorf("index(4,0) = %d, want 16", idx)
	}
}

func TestMortonBufferIsReservedStub(t *testing.T) {
	b := NewMortonBuffer(8, 8)
	b.Set(3, 3, Texel{R: 1})
	b.Set(5, 5, Texel{G: 1})
	// Both writes alias the same single storage slot until implemented.
	if got := b.Get(3, 3); got.G != 1 {
		t.Errorf("expected MortonBuffer writes to alias a single slot, got %v", got)
	}
}

func TestNewBufferSelectsLayout(t *testing.T) {
	tests := []struct {
		layout Layout
		want   string
	}{
		{LayoutLinear, "*texture.LinearBuffer"},
		{LayoutTiled, "*texture.TiledBuffer"},
		{LayoutMorton, "*texture.MortonBuffer"},
	}
	for _, tt := range tests {
		buf := NewBuffer(tt.layout, 4, 4)
		if got := fmt.Sprintf("%T", buf); got != tt.want {
			t.Errorf("layout %v: NewBuffer() type = %s, want %s", tt.layout, got, tt.want)
		}
		if buf.Width() != 4 || buf.Height() != 4 {
			t.Errorf("layout %v: dimensions = %dx%d, want 4x4", tt.layout, buf.Width(), buf.Height())
		}
	}
}
