package texture

import (
	math "github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
)

// CubeFace indexes the six faces of a CubeTexture in the conventional
// +X,-X,+Y,-Y,+Z,-Z order.
type CubeFace uint8

const (
	CubeFacePosX CubeFace = iota
	CubeFaceNegX
	CubeFacePosY
	CubeFaceNegY
	CubeFacePosZ
	CubeFaceNegZ
)

// CubeTexture is six independent 2D Textures sharing sampling parameters,
// addressed by a 3D direction vector instead of a UV pair.
type CubeTexture struct {
	Faces [6]*Texture
}

// NewCubeTexture constructs a cube texture with each face allocated at
// size x size.
func NewCubeTexture(layout Layout, size int, wrap WrapMode, filter FilterMode) *CubeTexture {
	var c CubeTexture
	for i := range c.Faces {
		c.Faces[i] = New(layout, size, size, wrap, filter)
	}
	return &c
}

// SampleCube selects the major axis of dir to pick a face, projects the
// remaining two components onto that face's UV square, and samples it.
func (s Sampler) SampleCube(cube *CubeTexture, dir ms3.Vec) Texel {
	face, u, v := cubeFaceUV(dir)
	tex := cube.Faces[face]
	if tex == nil {
		return Texel{}
	}
	return s.Sample2D(tex, u, v, 0)
}

// cubeFaceUV implements the standard cubemap face-selection algorithm:
// the component with the largest absolute value picks the face, and the
// other two components, divided by that magnitude, give face-local
// coordinates in [-1, 1] which are then remapped to [0, 1].
func cubeFaceUV(dir ms3.Vec) (CubeFace, float32, float32) {
	ax, ay, az := math.Abs(dir.X), math.Abs(dir.Y), math.Abs(dir.Z)

	var face CubeFace
	var ma, sc, tc float32

	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if dir.X > 0 {
			face = CubeFacePosX
			sc, tc = -dir.Z, -dir.Y
		} else {
			face = CubeFaceNegX
			sc, tc = dir.Z, -dir.Y
		}
	case ay >= ax && ay >= az:
		ma = ay
		if dir.Y > 0 {
			face = CubeFacePosY
			sc, tc = dir.X, dir.Z
		} else {
			face = CubeFaceNegY
			sc, tc = dir.X, -dir.Z
		}
	default:
		ma = az
		if dir.Z > 0 {
			face = CubeFacePosZ
			sc, tc = dir.X, -dir.Y
		} else {
			face = CubeFaceNegZ
			sc, tc = -dir.X, -dir.Y
		}
	}

	if ma == 0 {
		return face, 0.5, 0.5
	}
	u := (sc/ma + 1) * 0.5
	v := (tc/ma + 1) * 0.5
	return face, u, v
}
