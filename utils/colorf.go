package utils

import "github.com/go-gl/mathgl/mgl32"

// ColorFloat is an RGBA colour with float32 channels in [0, 1].
type ColorFloat [4]float32

func (c *ColorFloat) RGBA() (r, g, b, a uint32) {
	const mf = float32(256*256 - 1)
	r = uint32(c[0] * mf)
	g = uint32(c[1] * mf)
	b = uint32(c[2] * mf)
	a = uint32(c[3] * mf)
	return
}

func NewColorFloatA(c []float32) ColorFloat {
	return ColorFloat{c[0], c[1], c[2], c[3]}
}

func NewColorFloat(c []float32) ColorFloat {
	return ColorFloat{c[0], c[1], c[2], 1.0}
}

func ColorFromVec3(v mgl32.Vec3, alpha float32) ColorFloat {
	return ColorFloat{v[0], v[1], v[2], alpha}
}

// Broadcast a single intensity over rgb with full alpha.
func ColorFromScalar(s float32) ColorFloat {
	return ColorFloat{s, s, s, 1.0}
}
