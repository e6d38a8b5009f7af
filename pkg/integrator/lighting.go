package integrator

import (
	"math"

	"github.com/df07/go-softraycast/pkg/core"
	"github.com/df07/go-softraycast/pkg/lights"
	"github.com/df07/go-softraycast/pkg/material"
	"github.com/df07/go-softraycast/pkg/scene"
)

// ComputeLighting returns the light intensity arriving at point, one scalar applied
// equally to every color channel. The sum is not clamped.
//
// Ambient lights always contribute. Point and directional lights contribute a
// diffuse and, unless specular is material.NoSpecular, a highlight term, but only
// when their shadow ray reaches the light unobstructed. All cosines are divided
// by the operand lengths so normal, view and light direction need not be unit length.
func ComputeLighting(s *scene.Scene, point, view, normal core.Vec3, specular int) float64 {
	return computeLighting(s, point, view, normal, specular, nil)
}

func computeLighting(s *scene.Scene, point, view, normal core.Vec3, specular int, counter *RayCounter) float64 {
	intensity := 0.0

	for _, light := range s.Lights {
		if light.Type == lights.Ambient {
			// Ambient light does not cause shadows
			intensity += light.Intensity
			continue
		}

		shadowRay, ok := light.ShadowRay(point)
		if !ok {
			continue
		}
		counter.addShadow()
		if occluded(shadowRay, s, counter) {
			continue
		}
		direction := shadowRay.Direction

		// Diffuse
		nDotL := normal.Dot(direction)
		if nDotL > 0 {
			intensity += light.Intensity * nDotL / (normal.Norm() * direction.Norm())
		}

		// Specular
		if specular != material.NoSpecular {
			r := core.Reflect(direction, normal)
			rDotV := r.Dot(view)
			if rDotV > 0 {
				cosAlpha := rDotV / (r.Norm() * view.Norm())
				intensity += light.Intensity * math.Pow(cosAlpha, float64(specular))
			}
		}
	}

	return intensity
}
