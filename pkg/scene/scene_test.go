package scene

import (
	"math"
	"testing"

	"github.com/df07/go-softraycast/pkg/core"
	"github.com/df07/go-softraycast/pkg/geometry"
	"github.com/df07/go-softraycast/pkg/lights"
	"github.com/df07/go-softraycast/pkg/material"
)

func TestBuiltinScenes(t *testing.T) {
	for _, info := range BuiltinScenes() {
		t.Run(info.ID, func(t *testing.T) {
			s, ok := Builtin(info.ID)
			if !ok {
				t.Fatalf("Builtin(%q) not found", info.ID)
			}
			if s.PrimitiveCount() == 0 {
				t.Error("Expected scene to contain primitives")
			}
			if len(s.Lights) == 0 {
				t.Error("Expected scene to contain lights")
			}
		})
	}

	if _, ok := Builtin("nonexistent"); ok {
		t.Error("Expected unknown scene to be reported")
	}
}

func TestNewDefaultScene(t *testing.T) {
	s := NewDefaultScene()

	if len(s.Spheres) != 4 {
		t.Errorf("Expected 4 spheres, got %d", len(s.Spheres))
	}
	if len(s.Planes) != 0 {
		t.Errorf("Expected no planes, got %d", len(s.Planes))
	}
	if len(s.Lights) != 3 {
		t.Errorf("Expected 3 lights, got %d", len(s.Lights))
	}
	if s.MaxDepth != DefaultMaxDepth {
		t.Errorf("Expected max depth %d, got %d", DefaultMaxDepth, s.MaxDepth)
	}
	if s.Spheres[0].Material.Color != core.NewVec3(255, 0, 0) {
		t.Errorf("Expected first sphere to be red, got %v", s.Spheres[0].Material.Color)
	}
}

func TestBuilder_Validation(t *testing.T) {
	mat := material.NewMaterial(core.NewVec3(255, 255, 255), 10, 0.5)

	tests := []struct {
		name  string
		build func(b *Builder)
	}{
		{"zero radius", func(b *Builder) { b.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, 0), 0, mat)) }},
		{"zero plane normal", func(b *Builder) { b.AddPlane(geometry.Plane{Normal: core.NewVec3(0, 0, 0), Material: mat}) }},
		{"bad specular", func(b *Builder) {
			b.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewMaterial(core.NewVec3(1, 1, 1), -7, 0)))
		}},
		{"zero directional light", func(b *Builder) { b.AddLight(lights.NewDirectional(1, core.NewVec3(0, 0, 0))) }},
		{"NaN background", func(b *Builder) { b.SetBackground(core.NewVec3(math.NaN(), 0, 0)) }},
		{"negative depth", func(b *Builder) { b.SetMaxDepth(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder("invalid")
			tt.build(b)
			s, err := b.Build()
			if err == nil {
				t.Error("Expected validation error, got none")
			}
			if s != nil {
				t.Errorf("Expected nil scene, got %+v", s)
			}
		})
	}
}

func TestBuilder_ClampsReflective(t *testing.T) {
	s, err := NewBuilder("clamp").
		AddSphere(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewMaterial(core.NewVec3(1, 1, 1), 10, 3))).
		Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.Spheres[0].Material.Reflective != 1 {
		t.Errorf("Expected reflective clamped to 1, got %f", s.Spheres[0].Material.Reflective)
	}
}

func TestBuilder_BuildDoesNotAlias(t *testing.T) {
	mat := material.NewDiffuse(core.NewVec3(1, 1, 1))
	b := NewBuilder("alias").AddSphere(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, mat))

	first, err := b.Build()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	b.AddSphere(geometry.NewSphere(core.NewVec3(5, 0, 0), 1, mat))

	if len(first.Spheres) != 1 {
		t.Errorf("Expected built scene to keep 1 sphere, got %d", len(first.Spheres))
	}
}

func TestScene_Material(t *testing.T) {
	s := NewPlaneScene()

	sphereMat := s.Material(geometry.Hit{Kind: geometry.KindSphere, Index: 1})
	if sphereMat.Color != core.NewVec3(0, 0, 255) {
		t.Errorf("Expected blue sphere material, got %v", sphereMat.Color)
	}

	planeMat := s.Material(geometry.Hit{Kind: geometry.KindPlane, Index: 0})
	if planeMat.Color != core.NewVec3(255, 255, 0) {
		t.Errorf("Expected yellow plane material, got %v", planeMat.Color)
	}
}
