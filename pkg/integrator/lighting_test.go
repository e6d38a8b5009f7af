package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-softraycast/pkg/core"
	"github.com/df07/go-softraycast/pkg/geometry"
	"github.com/df07/go-softraycast/pkg/lights"
	"github.com/df07/go-softraycast/pkg/material"
	"github.com/df07/go-softraycast/pkg/scene"
)

const tolerance = 1e-9

func TestComputeLighting_AmbientOnly(t *testing.T) {
	s := scene.NewBuilder("ambient").
		AddSphere(geometry.NewSphere(core.NewVec3(0, 0, 5), 1, red)).
		AddLight(lights.NewAmbient(0.3)).
		AddLight(lights.NewAmbient(0.25)).
		MustBuild()

	cases := []struct {
		point, view, normal core.Vec3
		specular            int
	}{
		{core.NewVec3(0, 0, 4), core.NewVec3(0, 0, -1), core.NewVec3(0, 0, -1), 500},
		{core.NewVec3(10, -3, 2), core.NewVec3(1, 1, 1), core.NewVec3(0, 1, 0), material.NoSpecular},
		{core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 0), 0},
	}

	for i, c := range cases {
		got := ComputeLighting(s, c.point, c.view, c.normal, c.specular)
		if math.Abs(got-0.55) > tolerance {
			t.Errorf("case %d: expected 0.55, got %v", i, got)
		}
	}
}

func TestComputeLighting_Terms(t *testing.T) {
	point := core.NewVec3(0, 0, 0)
	up := core.NewVec3(0, 1, 0)

	tests := []struct {
		name     string
		lights   []lights.Light
		view     core.Vec3
		normal   core.Vec3
		specular int
		expected float64
	}{
		{
			name:     "point light diffuse only",
			lights:   []lights.Light{lights.NewAmbient(0.2), lights.NewPoint(0.6, core.NewVec3(0, 10, 0))},
			view:     up,
			normal:   up,
			specular: material.NoSpecular,
			expected: 0.8,
		},
		{
			name:     "point light with highlight",
			lights:   []lights.Light{lights.NewAmbient(0.2), lights.NewPoint(0.6, core.NewVec3(0, 10, 0))},
			view:     up,
			normal:   up,
			specular: 10,
			expected: 1.4,
		},
		{
			name:     "unnormalized normal and view",
			lights:   []lights.Light{lights.NewPoint(0.6, core.NewVec3(0, 10, 0))},
			view:     core.NewVec3(0, 7, 0),
			normal:   core.NewVec3(0, 3, 0),
			specular: 10,
			expected: 1.2,
		},
		{
			name:     "diffuse at 60 degrees",
			lights:   []lights.Light{lights.NewDirectional(0.5, core.NewVec3(0, 1, math.Sqrt(3)))},
			view:     up,
			normal:   up,
			specular: material.NoSpecular,
			expected: 0.25,
		},
		{
			name:     "light behind surface",
			lights:   []lights.Light{lights.NewDirectional(0.5, core.NewVec3(0, -1, 0))},
			view:     up,
			normal:   up,
			specular: 100,
			expected: 0,
		},
		{
			name:     "sum is not clamped",
			lights:   []lights.Light{lights.NewAmbient(1), lights.NewDirectional(1, up)},
			view:     up,
			normal:   up,
			specular: material.NoSpecular,
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := scene.NewBuilder(tt.name)
			for _, l := range tt.lights {
				b.AddLight(l)
			}
			s := b.MustBuild()

			got := ComputeLighting(s, point, tt.view, tt.normal, tt.specular)
			if math.Abs(got-tt.expected) > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestComputeLighting_Shadow(t *testing.T) {
	point := core.NewVec3(0, 0, 0)
	up := core.NewVec3(0, 1, 0)

	tests := []struct {
		name     string
		occluder core.Vec3
		expected float64
	}{
		{"occluder between point and light", core.NewVec3(0, 5, 0), 0.2},
		{"occluder beyond the light", core.NewVec3(0, 20, 0), 1.4},
		{"occluder off the shadow ray", core.NewVec3(5, 5, 0), 1.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scene.NewBuilder("shadow").
				AddSphere(geometry.NewSphere(tt.occluder, 1, red)).
				AddLight(lights.NewAmbient(0.2)).
				AddLight(lights.NewPoint(0.6, core.NewVec3(0, 10, 0))).
				MustBuild()

			got := ComputeLighting(s, point, up, up, 10)
			if math.Abs(got-tt.expected) > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestComputeLighting_DirectionalShadow(t *testing.T) {
	up := core.NewVec3(0, 1, 0)
	s := scene.NewBuilder("directional shadow").
		AddSphere(geometry.NewSphere(core.NewVec3(0, 1000, 0), 1, red)).
		AddLight(lights.NewAmbient(0.1)).
		AddLight(lights.NewDirectional(0.7, up)).
		MustBuild()

	got := ComputeLighting(s, core.NewVec3(0, 0, 0), up, up, material.NoSpecular)
	if math.Abs(got-0.1) > tolerance {
		t.Errorf("Expected only ambient 0.1 under a distant occluder, got %v", got)
	}
}

func TestComputeLighting_LightAtSurfacePoint(t *testing.T) {
	s := scene.NewBuilder("degenerate").
		AddLight(lights.NewPoint(0.5, core.NewVec3(1, 2, 3))).
		MustBuild()

	got := ComputeLighting(s, core.NewVec3(1, 2, 3), core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0), 10)
	if math.IsNaN(got) || got != 0 {
		t.Errorf("Expected 0 for a light at the shaded point, got %v", got)
	}
}
