package integrator

import (
	"github.com/df07/go-softraycast/pkg/core"
	"github.com/df07/go-softraycast/pkg/geometry"
	"github.com/df07/go-softraycast/pkg/scene"
)

// Trace returns the color seen along ray. A miss yields background. A hit is shaded
// locally; if the surface is reflective and depth < maxDepth a reflection ray is
// traced at depth+1 and blended in by the reflective coefficient.
func Trace(ray core.Ray, s *scene.Scene, background core.Vec3, depth, maxDepth int) core.Vec3 {
	return trace(ray, s, background, depth, maxDepth, nil)
}

func trace(ray core.Ray, s *scene.Scene, background core.Vec3, depth, maxDepth int, counter *RayCounter) core.Vec3 {
	hit, ok := findNearest(ray, s, counter)
	if !ok {
		counter.addMiss()
		return background
	}

	point := ray.At(hit.T)
	normal := surfaceNormal(s, hit, point, ray.Direction)
	view := core.Negate(ray.Direction)
	mat := s.Material(hit)

	intensity := computeLighting(s, point, view, normal, mat.Specular, counter)
	local := mat.Shade(intensity)

	if depth >= maxDepth || !mat.IsReflective() {
		return local
	}

	counter.addReflection()
	reflectRay := core.NewSecondaryRay(point, core.Reflect(view, normal))
	reflected := trace(reflectRay, s, background, depth+1, maxDepth, counter)
	return mat.Blend(local, reflected)
}

// surfaceNormal returns the unit normal used for shading at point.
// Spheres use the outward normal; planes face the incoming ray.
func surfaceNormal(s *scene.Scene, hit geometry.Hit, point, direction core.Vec3) core.Vec3 {
	if hit.Kind == geometry.KindPlane {
		return s.Planes[hit.Index].FacingNormal(direction)
	}
	return s.Spheres[hit.Index].Normal(point)
}
