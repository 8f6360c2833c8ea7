package shader

import "testing"

func TestSolidColorProgramPassesUniformColor(t *testing.T) {
	u := &MVP{Color: [4]float32{0.2, 0.4, 0.6, 1}}
	out := SolidColorProgram.Fragment(FragmentInput{Uniforms: u})
	if out.Color != u.Color {
		t.Errorf("SolidColorProgram.Fragment() color = %v, want %v", out.Color, u.Color)
	}
}

func TestVertexColorProgramInterpolatesAttribute(t *testing.T) {
	u := &MVP{ModelViewProjection: identity4()}
	in := VertexInput{Uniforms: u}
	in.Vertex.Position = [3]float32{1, 2, 3}
	in.Vertex.Color = [4]float32{0.1, 0.2, 0.3, 1}

	out := VertexColorProgram.Vertex(in)
	if len(out.Varyings) != 4 {
		t.Fatalf("expected 4 varyings, got %d", len(out.Varyings))
	}
	for i, want := range in.Vertex.Color {
		if out.Varyings[i] != want {
			t.Errorf("varying[%d] = %v, want %v", i, out.Varyings[i], want)
		}
	}
}

func TestProgramCloneIsIndependentValue(t *testing.T) {
	clone := SolidColorProgram.Clone()
	clone.Name = "renamed"
	if SolidColorProgram.Name == "renamed" {
		t.Error("Clone() mutated the original Program")
	}
}

func identity4() [16]float32 {
	var m [16]float32
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}
