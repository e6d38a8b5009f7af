package material

import (
	"fmt"
	"math"

	"github.com/df07/go-softraycast/pkg/core"
)

// NoSpecular disables the highlight term of a material
const NoSpecular = -1

// Material describes how a surface responds to light.
// Color channels are nominally in [0,255] but are never clamped here.
type Material struct {
	Color      core.Vec3 `json:"color"`
	Specular   int       `json:"specular"`   // Highlight exponent, NoSpecular to disable
	Reflective float64   `json:"reflective"` // Blend weight of the mirrored color, 0 = fully diffuse
}

// NewMaterial creates a new material
func NewMaterial(color core.Vec3, specular int, reflective float64) Material {
	return Material{
		Color:      color,
		Specular:   specular,
		Reflective: reflective,
	}
}

// NewDiffuse creates a matte material without highlight or reflection
func NewDiffuse(color core.Vec3) Material {
	return NewMaterial(color, NoSpecular, 0)
}

// HasSpecular reports whether the highlight term applies
func (m Material) HasSpecular() bool {
	return m.Specular != NoSpecular
}

// IsReflective reports whether a reflection ray should be spawned
func (m Material) IsReflective() bool {
	return m.Reflective > 0
}

// Shade scales the surface color by a light intensity clamped to [0, 1]
func (m Material) Shade(intensity float64) core.Vec3 {
	return m.Color.Mul(max(0, min(1, intensity)))
}

// Blend mixes local and reflected color by the reflective coefficient
func (m Material) Blend(local, reflected core.Vec3) core.Vec3 {
	return local.Mul(1 - m.Reflective).Add(reflected.Mul(m.Reflective))
}

// Normalized validates the material and returns a copy with Reflective clamped to [0, 1]
func (m Material) Normalized() (Material, error) {
	if !core.IsFinite(m.Color) {
		return Material{}, fmt.Errorf("color %v is not finite", m.Color)
	}
	if m.Specular < 0 && m.Specular != NoSpecular {
		return Material{}, fmt.Errorf("specular exponent %d must be %d or non-negative", m.Specular, NoSpecular)
	}
	if math.IsNaN(m.Reflective) {
		return Material{}, fmt.Errorf("reflective coefficient is NaN")
	}
	m.Reflective = max(0, min(1, m.Reflective))
	return m, nil
}
