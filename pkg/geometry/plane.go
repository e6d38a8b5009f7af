package geometry

import (
	"fmt"

	"github.com/df07/go-softraycast/pkg/core"
	"github.com/df07/go-softraycast/pkg/material"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3         `json:"point"`  // A point on the plane
	Normal   core.Vec3         `json:"normal"` // Unit normal, normalized by Validate
	Material material.Material `json:"material"`
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, mat material.Material) Plane {
	return Plane{
		Point:    point,
		Normal:   normal.Normalize(),
		Material: mat,
	}
}

// IntersectPlane returns the ray parameter where the ray crosses the plane.
// A ray parallel to the plane has no solution.
func IntersectPlane(ray core.Ray, p Plane) (float64, bool) {
	denominator := p.Normal.Dot(ray.Direction)
	if denominator == 0 {
		return 0, false
	}

	// t = (point_on_plane - ray_origin) · normal / (normal · ray_direction)
	return p.Point.Sub(ray.Origin).Dot(p.Normal) / denominator, true
}

// Intersect is IntersectPlane bound to p
func (p Plane) Intersect(ray core.Ray) (float64, bool) {
	return IntersectPlane(ray, p)
}

// FacingNormal returns the plane normal flipped to face against the incoming direction
func (p Plane) FacingNormal(direction core.Vec3) core.Vec3 {
	if direction.Dot(p.Normal) > 0 {
		return core.Negate(p.Normal)
	}
	return p.Normal
}

// Validate checks the plane geometry, normalizes its normal and its material
func (p Plane) Validate() (Plane, error) {
	if !core.IsFinite(p.Point) {
		return Plane{}, fmt.Errorf("point %v is not finite", p.Point)
	}
	if !core.IsFinite(p.Normal) || core.IsZero(p.Normal) {
		return Plane{}, fmt.Errorf("normal %v must be a finite non-zero vector", p.Normal)
	}
	mat, err := p.Material.Normalized()
	if err != nil {
		return Plane{}, fmt.Errorf("material: %w", err)
	}
	p.Normal = p.Normal.Normalize()
	p.Material = mat
	return p, nil
}

func (p Plane) String() string {
	return fmt.Sprintf("Point: [%.2f,%.2f,%.2f] n = [%.2f,%.2f,%.2f]",
		p.Point.X, p.Point.Y, p.Point.Z, p.Normal.X, p.Normal.Y, p.Normal.Z)
}
