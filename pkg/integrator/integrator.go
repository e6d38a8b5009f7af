package integrator

import (
	"github.com/df07/go-softraycast/pkg/core"
	"github.com/df07/go-softraycast/pkg/scene"
)

// Integrator computes the color seen along a primary ray.
// Implementations must treat the scene as read-only so a single value
// can serve many pixels concurrently.
type Integrator interface {
	RayColor(ray core.Ray, s *scene.Scene) core.Vec3
}

// Whitted traces direct lighting with hard shadows plus recursive mirror reflection
type Whitted struct {
	MaxDepth int         // Reflection bounce limit
	Counter  *RayCounter // Optional instrumentation, may be nil
}

// NewWhitted creates a Whitted integrator with the given bounce limit
func NewWhitted(maxDepth int) *Whitted {
	return &Whitted{MaxDepth: maxDepth}
}

// RayColor traces a primary ray against the scene and its background
func (w *Whitted) RayColor(ray core.Ray, s *scene.Scene) core.Vec3 {
	w.Counter.addPrimary()
	return trace(ray, s, s.Background, 0, w.MaxDepth, w.Counter)
}
