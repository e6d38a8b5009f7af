package lights

import (
	"fmt"
	"math"

	"github.com/df07/go-softraycast/pkg/core"
)

// Type selects how a light contributes to a shaded point
type Type int

const (
	Ambient Type = iota
	Point
	Directional
)

func (t Type) String() string {
	switch t {
	case Ambient:
		return "ambient"
	case Point:
		return "point"
	case Directional:
		return "directional"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ParseType converts a light type name to a Type
func ParseType(name string) (Type, error) {
	switch name {
	case "ambient":
		return Ambient, nil
	case "point":
		return Point, nil
	case "directional":
		return Directional, nil
	default:
		return 0, fmt.Errorf("unknown light type %q", name)
	}
}

// MarshalText implements encoding.TextMarshaler
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Light is a tagged union over ambient, point and directional lights.
// Ambient uses only Intensity, Point uses Position, Directional uses Direction.
// Intensities are additive weights and are not required to sum to 1.
type Light struct {
	Type      Type      `json:"type"`
	Intensity float64   `json:"intensity"`
	Position  core.Vec3 `json:"position"`
	Direction core.Vec3 `json:"direction"`
}

// NewAmbient creates an ambient light
func NewAmbient(intensity float64) Light {
	return Light{Type: Ambient, Intensity: intensity}
}

// NewPoint creates a point light at position
func NewPoint(intensity float64, position core.Vec3) Light {
	return Light{Type: Point, Intensity: intensity, Position: position}
}

// NewDirectional creates a directional light. The direction points from
// the surface toward the light and is used as given.
func NewDirectional(intensity float64, direction core.Vec3) Light {
	return Light{Type: Directional, Intensity: intensity, Direction: direction}
}

// ShadowRay returns the ray from point toward the light used for occlusion tests.
// For point lights the ray reaches the light at t = 1, so only occluders strictly
// between the surface and the light count. Ambient lights cast no shadow ray.
func (l Light) ShadowRay(point core.Vec3) (core.Ray, bool) {
	switch l.Type {
	case Point:
		return core.NewRay(point, l.Position.Sub(point), core.Epsilon, 1), true
	case Directional:
		return core.NewRay(point, l.Direction, core.Epsilon, math.Inf(1)), true
	default:
		return core.Ray{}, false
	}
}

// Validate checks that the light can be evaluated without producing NaN
func (l Light) Validate() error {
	if math.IsNaN(l.Intensity) || math.IsInf(l.Intensity, 0) {
		return fmt.Errorf("%s light intensity %v is not finite", l.Type, l.Intensity)
	}
	switch l.Type {
	case Ambient:
		return nil
	case Point:
		if !core.IsFinite(l.Position) {
			return fmt.Errorf("point light position %v is not finite", l.Position)
		}
		return nil
	case Directional:
		if !core.IsFinite(l.Direction) || core.IsZero(l.Direction) {
			return fmt.Errorf("directional light direction %v must be a finite non-zero vector", l.Direction)
		}
		return nil
	default:
		return fmt.Errorf("unknown light type %d", int(l.Type))
	}
}
