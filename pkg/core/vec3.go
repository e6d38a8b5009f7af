package core

import (
	"math"

	"github.com/golang/geo/r3"
)

// Vec3 represents a 3D point, direction or RGB color.
// Arithmetic comes from r3.Vector: Add, Sub, Mul, Dot, Cross, Norm, Normalize.
type Vec3 = r3.Vector

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Reflect mirrors v around n: 2*n*dot(n, v) - v.
// Neither vector has to be normalized; the result scales with |n|^2.
func Reflect(v, n Vec3) Vec3 {
	return n.Mul(2 * n.Dot(v)).Sub(v)
}

// CosAngle returns dot(a, b) / (|a| * |b|), or 0 when either vector has zero length
func CosAngle(a, b Vec3) float64 {
	lengths := a.Norm() * b.Norm()
	if lengths == 0 {
		return 0
	}
	return a.Dot(b) / lengths
}

// Negate returns the negative of the vector
func Negate(v Vec3) Vec3 {
	return Vec3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Clamp returns a vector with components clamped to [minVal, maxVal]
func Clamp(v Vec3, minVal, maxVal float64) Vec3 {
	return Vec3{
		X: max(minVal, min(maxVal, v.X)),
		Y: max(minVal, min(maxVal, v.Y)),
		Z: max(minVal, min(maxVal, v.Z)),
	}
}

// IsFinite reports whether every component is neither NaN nor infinite
func IsFinite(v Vec3) bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// IsZero reports whether all components are exactly zero
func IsZero(v Vec3) bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
