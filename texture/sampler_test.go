package texture

import (
	"testing"

	"github.com/soypat/glgl/math/ms2"
)

func TestWrapCoordRepeat(t *testing.T) {
	idx, ok := wrapCoord(-1, 4, WrapRepeat)
	if !ok || idx != 3 {
		t.Errorf("wrapCoord(-1, 4, REPEAT) = (%d, %v), want (3, true)", idx, ok)
	}
	idx, ok = wrapCoord(5, 4, WrapRepeat)
	if !ok || idx != 1 {
		t.Errorf("wrapCoord(5, 4, REPEAT) = (%d, %v), want (1, true)", idx, ok)
	}
}

func TestWrapCoordClampToEdge(t *testing.T) {
	idx, ok := wrapCoord(-5, 4, WrapClampToEdge)
	if !ok || idx != 0 {
		t.Errorf("wrapCoord(-5, 4, CLAMP_TO_EDGE) = (%d, %v), want (0, true)", idx, ok)
	}
	idx, ok = wrapCoord(50, 4, WrapClampToEdge)
	if !ok || idx != 3 {
		t.Errorf("wrapCoord(50, 4, CLAMP_TO_EDGE) = (%d, %v), want (3, true)", idx, ok)
	}
}

func TestWrapCoordClampToBorderReturnsNotOK(t *testing.T) {
	_, ok := wrapCoord(-1, 4, WrapClampToBorder)
	if ok {
		t.Error("expected out-of-range coordinate under CLAMP_TO_BORDER to report ok=false")
	}
	_, ok = wrapCoord(2, 4, WrapClampToBorder)
	if !ok {
		t.Error("expected in-range coordinate under CLAMP_TO_BORDER to report ok=true")
	}
}

func TestWrapCoordMirroredRepeat(t *testing.T) {
	// At period 8 (2*size), coordinate 4 mirrors back: c=4 < n=4? no equal,
	// so c>=n branch: c = 8-4-1=3.
	idx, ok := wrapCoord(4, 4, WrapMirroredRepeat)
	if !ok || idx != 3 {
		t.Errorf("wrapCoord(4, 4, MIRRORED_REPEAT) = (%d, %v), want (3, true)", idx, ok)
	}
}

func TestSampleNearestReadsExactTexel(t *testing.T) {
	buf := NewLinearBuffer(2, 2)
	buf.Set(1, 1, Texel{R: 1, G: 1, B: 1, A: 1})

	got := sampleNearest(buf, WrapClampToEdge, Texel{}, 0.9, 0.9)
	if got.R != 1 {
		t.Errorf("sampleNearest near (1,1) = %v, want R=1", got)
	}
}

func TestSampleBilinearBlendsNeighbors(t *testing.T) {
	buf := NewLinearBuffer(2, 1)
	buf.Set(0, 0, Texel{R: 0})
	buf.Set(1, 0, Texel{R: 1})

	got := sampleBilinear(buf, WrapClampToEdge, Texel{}, 0.5, 0.5)
	if got.R < 0.01 || got.R > 0.99 {
		t.Errorf("sampleBilinear midpoint R = %v, want strictly between 0 and 1", got.R)
	}
}

func TestSampleUVMatchesSample2D(t *testing.T) {
	tex := New(LayoutLinear, 2, 2, WrapClampToEdge, FilterNearest)
	tex.Base().Set(1, 1, Texel{R: 1, G: 1, B: 1, A: 1})

	var s Sampler
	want := s.Sample2D(tex, 0.9, 0.9, 0)
	got := s.SampleUV(tex, ms2.Vec{X: 0.9, Y: 0.9}, 0)
	if got != want {
		t.Errorf("SampleUV() = %v, want %v (matching Sample2D)", got, want)
	}
}

func TestBorderOrZeroUsesBorderColorOnlyForClampToBorder(t *testing.T) {
	border := Texel{R: 1, G: 1, B: 1, A: 1}
	if got := borderOrZero(WrapClampToBorder, border); got != border {
		t.Errorf("borderOrZero(CLAMP_TO_BORDER) = %v, want border color", got)
	}
	if got := borderOrZero(WrapClampToZero, border); got != (Texel{}) {
		t.Errorf("borderOrZero(CLAMP_TO_ZERO) = %v, want zero texel", got)
	}
}
