package lights

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/df07/go-softraycast/pkg/core"
)

func TestLight_ShadowRay(t *testing.T) {
	point := core.NewVec3(0, 0, 1)

	tests := []struct {
		name         string
		light        Light
		expectRay    bool
		expectedDir  core.Vec3
		expectedTMax float64
	}{
		{
			name:      "ambient casts no shadow",
			light:     NewAmbient(0.2),
			expectRay: false,
		},
		{
			name:         "point light reaches the light at t=1",
			light:        NewPoint(0.6, core.NewVec3(2, 1, 0)),
			expectRay:    true,
			expectedDir:  core.NewVec3(2, 1, -1),
			expectedTMax: 1,
		},
		{
			name:         "directional light is unbounded and not negated",
			light:        NewDirectional(0.2, core.NewVec3(1, 4, 4)),
			expectRay:    true,
			expectedDir:  core.NewVec3(1, 4, 4),
			expectedTMax: math.Inf(1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray, ok := tt.light.ShadowRay(point)
			if ok != tt.expectRay {
				t.Fatalf("Expected shadow ray %v, got %v", tt.expectRay, ok)
			}
			if !ok {
				return
			}
			if ray.Origin != point {
				t.Errorf("Expected origin %v, got %v", point, ray.Origin)
			}
			if ray.Direction.Sub(tt.expectedDir).Norm() > 1e-9 {
				t.Errorf("Expected direction %v, got %v", tt.expectedDir, ray.Direction)
			}
			if ray.TMin != core.Epsilon {
				t.Errorf("Expected TMin %f, got %f", core.Epsilon, ray.TMin)
			}
			if ray.TMax != tt.expectedTMax {
				t.Errorf("Expected TMax %f, got %f", tt.expectedTMax, ray.TMax)
			}
		})
	}
}

func TestLight_Validate(t *testing.T) {
	tests := []struct {
		name        string
		light       Light
		expectError bool
	}{
		{"ambient", NewAmbient(0.2), false},
		{"point", NewPoint(0.6, core.NewVec3(2, 1, 0)), false},
		{"directional", NewDirectional(0.2, core.NewVec3(1, 4, 4)), false},
		{"zero direction", NewDirectional(0.2, core.NewVec3(0, 0, 0)), true},
		{"NaN intensity", NewAmbient(math.NaN()), true},
		{"infinite position", NewPoint(1, core.NewVec3(math.Inf(1), 0, 0)), true},
		{"unknown type", Light{Type: Type(9), Intensity: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.light.Validate()
			if tt.expectError && err == nil {
				t.Error("Expected error, got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestType_JSON(t *testing.T) {
	var light Light
	if err := json.Unmarshal([]byte(`{"type":"directional","intensity":0.2,"direction":{"x":1,"y":4,"z":4}}`), &light); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if light.Type != Directional {
		t.Errorf("Expected directional light, got %s", light.Type)
	}
	if light.Direction != core.NewVec3(1, 4, 4) {
		t.Errorf("Expected direction (1,4,4), got %v", light.Direction)
	}

	if err := json.Unmarshal([]byte(`{"type":"spot"}`), &light); err == nil {
		t.Error("Expected error for unknown light type")
	}
}
