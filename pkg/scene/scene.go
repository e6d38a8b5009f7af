package scene

import (
	"fmt"

	"github.com/df07/go-softraycast/pkg/core"
	"github.com/df07/go-softraycast/pkg/geometry"
	"github.com/df07/go-softraycast/pkg/lights"
	"github.com/df07/go-softraycast/pkg/material"
)

// DefaultMaxDepth is the reflection bounce limit used when a scene does not set one
const DefaultMaxDepth = 2

// CameraConfig places the viewer. Angles are in degrees.
type CameraConfig struct {
	Position core.Vec3 `json:"position"`
	Yaw      float64   `json:"yaw"`   // Rotation around the Y axis
	Pitch    float64   `json:"pitch"` // Rotation around the X axis
	Roll     float64   `json:"roll"`  // Rotation around the Z axis
}

// Scene contains all the elements needed for rendering.
// It is built once and must not be mutated while a render is in progress.
type Scene struct {
	Name       string
	Spheres    []geometry.Sphere // Scanned in order; earlier primitives win exact ties
	Planes     []geometry.Plane  // Scanned after all spheres
	Lights     []lights.Light
	Background core.Vec3 // Color returned for rays that hit nothing, channels in [0,255]
	MaxDepth   int       // Recommended reflection bounce limit
	Camera     CameraConfig
}

// PrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) PrimitiveCount() int {
	return len(s.Spheres) + len(s.Planes)
}

// Material returns the material of the primitive a hit refers to
func (s *Scene) Material(hit geometry.Hit) material.Material {
	if hit.Kind == geometry.KindPlane {
		return s.Planes[hit.Index].Material
	}
	return s.Spheres[hit.Index].Material
}

// Describe returns a short human readable summary
func (s *Scene) Describe() string {
	return fmt.Sprintf("%s: %d spheres, %d planes, %d lights", s.Name, len(s.Spheres), len(s.Planes), len(s.Lights))
}

// Builder accumulates primitives and lights and produces a validated Scene
type Builder struct {
	scene Scene
	errs  []error
}

// NewBuilder creates a builder with a black background and the default bounce limit
func NewBuilder(name string) *Builder {
	return &Builder{
		scene: Scene{
			Name:     name,
			MaxDepth: DefaultMaxDepth,
		},
	}
}

// AddSphere validates and appends a sphere
func (b *Builder) AddSphere(sphere geometry.Sphere) *Builder {
	validated, err := sphere.Validate()
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("sphere %d: %w", len(b.scene.Spheres), err))
		return b
	}
	b.scene.Spheres = append(b.scene.Spheres, validated)
	return b
}

// AddPlane validates and appends a plane
func (b *Builder) AddPlane(plane geometry.Plane) *Builder {
	validated, err := plane.Validate()
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("plane %d: %w", len(b.scene.Planes), err))
		return b
	}
	b.scene.Planes = append(b.scene.Planes, validated)
	return b
}

// AddLight validates and appends a light
func (b *Builder) AddLight(light lights.Light) *Builder {
	if err := light.Validate(); err != nil {
		b.errs = append(b.errs, fmt.Errorf("light %d: %w", len(b.scene.Lights), err))
		return b
	}
	b.scene.Lights = append(b.scene.Lights, light)
	return b
}

// SetBackground sets the color returned for rays that escape the scene
func (b *Builder) SetBackground(color core.Vec3) *Builder {
	if !core.IsFinite(color) {
		b.errs = append(b.errs, fmt.Errorf("background %v is not finite", color))
		return b
	}
	b.scene.Background = color
	return b
}

// SetMaxDepth sets the recommended reflection bounce limit
func (b *Builder) SetMaxDepth(depth int) *Builder {
	if depth < 0 {
		b.errs = append(b.errs, fmt.Errorf("max depth %d must not be negative", depth))
		return b
	}
	b.scene.MaxDepth = depth
	return b
}

// SetCamera sets the viewer placement
func (b *Builder) SetCamera(camera CameraConfig) *Builder {
	b.scene.Camera = camera
	return b
}

// Build returns the scene, or the first validation error encountered
func (b *Builder) Build() (*Scene, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("invalid scene %q: %w", b.scene.Name, b.errs[0])
	}

	// Copy slices so later builder calls cannot alias the built scene
	s := b.scene
	s.Spheres = append([]geometry.Sphere(nil), b.scene.Spheres...)
	s.Planes = append([]geometry.Plane(nil), b.scene.Planes...)
	s.Lights = append([]lights.Light(nil), b.scene.Lights...)
	return &s, nil
}

// MustBuild is Build for scenes defined in code, which are known to be valid
func (b *Builder) MustBuild() *Scene {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
