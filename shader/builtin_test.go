package shader

import "testing"

func TestNewTexturedProgramSamplesUV(t *testing.T) {
	var gotU, gotV float32
	prog := NewTexturedProgram(func(u, v float32) [4]float32 {
		gotU, gotV = u, v
		return [4]float32{u, v, 0, 1}
	})

	in := VertexInput{Uniforms: &MVP{ModelViewProjection: identity4()}}
	in.Vertex.TexCoord = [2]float32{0.25, 0.75}
	out := prog.Vertex(in)

	fragOut := prog.Fragment(FragmentInput{Varyings: out.Varyings})
	if gotU != 0.25 || gotV != 0.75 {
		t.Errorf("sampleFunc called with (%v, %v), want (0.25, 0.75)", gotU, gotV)
	}
	if fragOut.Color[0] != 0.25 || fragOut.Color[1] != 0.75 {
		t.Errorf("fragment color = %v, want (0.25, 0.75, 0, 1)", fragOut.Color)
	}
}

func TestBlinnPhongProgramBrightestFacingLight(t *testing.T) {
	u := &MVP{
		Model:      identity4(),
		Color:      [4]float32{1, 1, 1, 1},
		LightDir:   [3]float32{0, 0, 1},
		LightColor: [3]float32{1, 1, 1},
		ViewPos:    [3]float32{0, 0, 5},
	}

	facing := BlinnPhongProgram.Fragment(FragmentInput{
		Uniforms: u,
		Varyings: []float32{0, 0, 1, 0, 0, 0}, // normal +Z, position origin
	})
	away := BlinnPhongProgram.Fragment(FragmentInput{
		Uniforms: u,
		Varyings: []float32{0, 0, -1, 0, 0, 0}, // normal -Z, facing away from light
	})

	if facing.Color[0] <= away.Color[0] {
		t.Errorf("surface facing the light (%v) should be brighter than surface facing away (%v)", facing.Color[0], away.Color[0])
	}
}

func TestNormalize3HandlesZeroVector(t *testing.T) {
	got := normalize3([3]float32{0, 0, 0})
	if got != ([3]float32{0, 0, 0}) {
		t.Errorf("normalize3(zero) = %v, want zero vector unchanged", got)
	}
}
