package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-softraycast/pkg/core"
	"github.com/df07/go-softraycast/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3         `json:"center"`
	Radius   float64           `json:"radius"`
	Material material.Material `json:"material"`
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) Sphere {
	return Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// IntersectSphere returns the ray parameters where the ray crosses the sphere surface.
// The "+" root is returned first and the "-" root second; they are not sorted.
// A tangent ray (zero discriminant) counts as a miss, as does a degenerate ray or sphere.
func IntersectSphere(ray core.Ray, s Sphere) (t1, t2 float64, ok bool) {
	if s.Radius <= 0 {
		return 0, 0, false
	}

	// Vector from sphere center to ray origin
	oc := ray.Origin.Sub(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	if a == 0 {
		return 0, 0, false
	}
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if !(discriminant > 0) {
		return 0, 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	t1 = (-b + sqrtD) / (2 * a)
	t2 = (-b - sqrtD) / (2 * a)
	return t1, t2, true
}

// Intersect is IntersectSphere bound to s
func (s Sphere) Intersect(ray core.Ray) (t1, t2 float64, ok bool) {
	return IntersectSphere(ray, s)
}

// Normal returns the outward unit normal at a point on the surface
func (s Sphere) Normal(point core.Vec3) core.Vec3 {
	return point.Sub(s.Center).Normalize()
}

// Validate checks the sphere geometry and normalizes its material
func (s Sphere) Validate() (Sphere, error) {
	if !core.IsFinite(s.Center) {
		return Sphere{}, fmt.Errorf("center %v is not finite", s.Center)
	}
	if !(s.Radius > 0) || math.IsInf(s.Radius, 1) {
		return Sphere{}, fmt.Errorf("radius %v must be positive and finite", s.Radius)
	}
	mat, err := s.Material.Normalized()
	if err != nil {
		return Sphere{}, fmt.Errorf("material: %w", err)
	}
	s.Material = mat
	return s, nil
}

func (s Sphere) String() string {
	return fmt.Sprintf("Center: [%.2f,%.2f,%.2f] r = %.2f, color = [%.2f, %.2f, %.2f]",
		s.Center.X, s.Center.Y, s.Center.Z, s.Radius,
		s.Material.Color.X, s.Material.Color.Y, s.Material.Color.Z)
}
