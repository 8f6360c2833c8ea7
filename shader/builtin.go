package shader

import math "github.com/chewxy/math32"

// MVP is the uniform block shared by the built-in programs: a
// model-view-projection matrix in column-major order plus a model matrix
// for world-space lighting calculations.
type MVP struct {
	ModelViewProjection [16]float32
	Model               [16]float32
	Color               [4]float32

	// LightDir and LightColor are used by BlinnPhongProgram only.
	LightDir   [3]float32
	LightColor [3]float32
	ViewPos    [3]float32
}

func mulMat4Vec4(m [16]float32, v [4]float32) [4]float32 {
	var out [4]float32
	for row := 0; row < 4; row++ {
		out[row] = m[row]*v[0] + m[row+4]*v[1] + m[row+8]*v[2] + m[row+12]*v[3]
	}
	return out
}

func mulMat4Vec3AsDirection(m [16]float32, v [3]float32) [3]float32 {
	return [3]float32{
		m[0]*v[0] + m[4]*v[1] + m[8]*v[2],
		m[1]*v[0] + m[5]*v[1] + m[9]*v[2],
		m[2]*v[0] + m[6]*v[1] + m[10]*v[2],
	}
}

// SolidColorProgram shades every fragment with the uniform Color, ignoring
// vertex attributes beyond position. Its varyings layout is empty.
var SolidColorProgram = &Program{
	Name:          "solid_color",
	VaryingsCount: 0,
	Layout:        VaryingsLayout{},
	Vertex: func(in VertexInput) VertexOutput {
		u := in.Uniforms.(*MVP)
		p := in.Vertex.Position
		clip := mulMat4Vec4(u.ModelViewProjection, [4]float32{p[0], p[1], p[2], 1})
		return VertexOutput{Position: clip}
	},
	Fragment: func(in FragmentInput) FragmentOutput {
		u := in.Uniforms.(*MVP)
		return FragmentOutput{Color: u.Color}
	},
}

// vertexColorLayout names VertexColorProgram's four interpolated varyings.
var vertexColorLayout = VaryingsLayout{"r", "g", "b", "a"}

// VertexColorProgram interpolates the per-vertex Color attribute across
// the triangle.
var VertexColorProgram = &Program{
	Name:          "vertex_color",
	VaryingsCount: 4,
	Layout:        vertexColorLayout,
	Vertex: func(in VertexInput) VertexOutput {
		u := in.Uniforms.(*MVP)
		p := in.Vertex.Position
		clip := mulMat4Vec4(u.ModelViewProjection, [4]float32{p[0], p[1], p[2], 1})
		c := in.Vertex.Color
		return VertexOutput{Position: clip, Varyings: []float32{c[0], c[1], c[2], c[3]}}
	},
	Fragment: func(in FragmentInput) FragmentOutput {
		v := in.Varyings
		return FragmentOutput{Color: [4]float32{v[0], v[1], v[2], v[3]}}
	},
}

// texturedLayout names TexturedProgram's two UV varyings.
var texturedLayout = VaryingsLayout{"u", "v"}

// NewTexturedProgram builds a program that interpolates a UV coordinate
// and samples sampleFunc(u, v) per fragment. This package does not import
// texture itself, to avoid a dependency cycle; the gfx facade binds a
// texture.Sampler's Sample2D method (or a wrapper around it) as
// sampleFunc when it builds a textured material.
func NewTexturedProgram(sampleFunc func(u, v float32) [4]float32) *Program {
	return &Program{
		Name:          "textured",
		VaryingsCount: 2,
		Layout:        texturedLayout,
		Vertex: func(in VertexInput) VertexOutput {
			u := in.Uniforms.(*MVP)
			p := in.Vertex.Position
			clip := mulMat4Vec4(u.ModelViewProjection, [4]float32{p[0], p[1], p[2], 1})
			uv := in.Vertex.TexCoord
			return VertexOutput{Position: clip, Varyings: []float32{uv[0], uv[1]}}
		},
		Fragment: func(in FragmentInput) FragmentOutput {
			v := in.Varyings
			return FragmentOutput{Color: sampleFunc(v[0], v[1])}
		},
	}
}

// blinnPhongLayout interleaves world-space normal and world-space position.
var blinnPhongLayout = VaryingsLayout{"nx", "ny", "nz", "wx", "wy", "wz"}

// BlinnPhongProgram is a per-fragment Blinn-Phong lighting material: the
// vertex stage transforms normals to world space and passes through
// world-space position, the fragment stage combines ambient, diffuse, and
// specular terms using the uniform light and view parameters.
var BlinnPhongProgram = &Program{
	Name:          "blinn_phong",
	VaryingsCount: 6,
	Layout:        blinnPhongLayout,
	Vertex: func(in VertexInput) VertexOutput {
		u := in.Uniforms.(*MVP)
		p := in.Vertex.Position
		clip := mulMat4Vec4(u.ModelViewProjection, [4]float32{p[0], p[1], p[2], 1})
		worldPos := mulMat4Vec4(u.Model, [4]float32{p[0], p[1], p[2], 1})
		worldNormal := mulMat4Vec3AsDirection(u.Model, in.Vertex.Normal)
		return VertexOutput{
			Position: clip,
			Varyings: []float32{
				worldNormal[0], worldNormal[1], worldNormal[2],
				worldPos[0], worldPos[1], worldPos[2],
			},
		}
	},
	Fragment: func(in FragmentInput) FragmentOutput {
		u := in.Uniforms.(*MVP)
		v := in.Varyings
		n := normalize3([3]float32{v[0], v[1], v[2]})
		worldPos := [3]float32{v[3], v[4], v[5]}

		lightDir := normalize3(u.LightDir)
		viewDir := normalize3(sub3(u.ViewPos, worldPos))
		halfDir := normalize3(add3(lightDir, viewDir))

		ambient := float32(0.1)
		diffuse := maxf(dot3(n, lightDir), 0)
		specular := powf(maxf(dot3(n, halfDir), 0), 32)

		intensity := ambient + diffuse + specular*0.5
		color := [4]float32{
			u.Color[0] * u.LightColor[0] * intensity,
			u.Color[1] * u.LightColor[1] * intensity,
			u.Color[2] * u.LightColor[2] * intensity,
			u.Color[3],
		}
		return FragmentOutput{Color: color}
	},
}

func normalize3(v [3]float32) [3]float32 {
	l := sqrtf(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l == 0 {
		return v
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}

func add3(a, b [3]float32) [3]float32 { return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }
func sub3(a, b [3]float32) [3]float32 { return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func dot3(a, b [3]float32) float32    { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func sqrtf(v float32) float32 { return math.Sqrt(v) }
func powf(a, b float32) float32 { return math.Pow(a, b) }
