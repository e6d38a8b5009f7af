package integrator

import (
	"github.com/df07/go-softraycast/pkg/core"
	"github.com/df07/go-softraycast/pkg/geometry"
	"github.com/df07/go-softraycast/pkg/scene"
)

// FindNearest returns the closest primitive whose surface the ray crosses strictly
// inside (TMin, TMax). Spheres are scanned before planes, each in scene order, and
// on an exact tie the primitive encountered first wins.
func FindNearest(ray core.Ray, s *scene.Scene) (geometry.Hit, bool) {
	return findNearest(ray, s, nil)
}

// Occluded reports whether anything lies on the ray inside (TMin, TMax)
func Occluded(ray core.Ray, s *scene.Scene) bool {
	return occluded(ray, s, nil)
}

func findNearest(ray core.Ray, s *scene.Scene, counter *RayCounter) (geometry.Hit, bool) {
	var best geometry.Hit
	found := false

	consider := func(kind geometry.Kind, index int, t float64) {
		// Strict comparison keeps the earlier primitive on exact ties
		if ray.InRange(t) && (!found || t < best.T) {
			best = geometry.Hit{Kind: kind, Index: index, T: t}
			found = true
		}
	}

	for i, sphere := range s.Spheres {
		counter.addTest()
		t1, t2, ok := geometry.IntersectSphere(ray, sphere)
		if !ok {
			continue
		}
		consider(geometry.KindSphere, i, t1)
		consider(geometry.KindSphere, i, t2)
	}

	for i, plane := range s.Planes {
		counter.addTest()
		if t, ok := geometry.IntersectPlane(ray, plane); ok {
			consider(geometry.KindPlane, i, t)
		}
	}

	return best, found
}

// occluded answers the same question as findNearest returning a hit, but stops
// at the first in-range root since shadow rays ignore which primitive blocks them
func occluded(ray core.Ray, s *scene.Scene, counter *RayCounter) bool {
	for _, sphere := range s.Spheres {
		counter.addTest()
		t1, t2, ok := geometry.IntersectSphere(ray, sphere)
		if ok && (ray.InRange(t1) || ray.InRange(t2)) {
			return true
		}
	}

	for _, plane := range s.Planes {
		counter.addTest()
		if t, ok := geometry.IntersectPlane(ray, plane); ok && ray.InRange(t) {
			return true
		}
	}

	return false
}
