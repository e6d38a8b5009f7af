package core

import "math"

// Epsilon offsets shadow and reflection rays away from the surface they start on
const Epsilon = 0.03

// Ray is a parametrized line scanned over the open interval (TMin, TMax).
// Direction does not need to be normalized.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	TMin      float64
	TMax      float64
}

// NewRay creates a new ray over (tMin, tMax)
func NewRay(origin, direction Vec3, tMin, tMax float64) Ray {
	return Ray{Origin: origin, Direction: direction, TMin: tMin, TMax: tMax}
}

// NewSecondaryRay creates a ray leaving a surface, starting at Epsilon and unbounded
func NewSecondaryRay(origin, direction Vec3) Ray {
	return NewRay(origin, direction, Epsilon, math.Inf(1))
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// InRange reports whether t lies strictly inside (TMin, TMax)
func (r Ray) InRange(t float64) bool {
	return t > r.TMin && t < r.TMax
}
