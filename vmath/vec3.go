package vmath

import (
	"github.com/chewxy/math32"
)

// Vec3 is a float32 3D vector for the camera-space math in the renderer. The
// simulation kernel works on packed float buffers directly; only code that
// needs whole-point transforms goes through here
type Vec3 struct {
	X, Y, Z float32
}

func Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func MagSq(v Vec3) float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func Mag(v Vec3) float32 {
	return math32.Sqrt(MagSq(v))
}

// RotateX rotates v around the horizontal axis by angle radians
func RotateX(v Vec3, angle float32) Vec3 {
	sin, cos := math32.Sincos(angle)
	return Vec3{
		X: v.X,
		Y: v.Y*cos - v.Z*sin,
		Z: v.Y*sin + v.Z*cos,
	}
}
