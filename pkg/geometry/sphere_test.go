package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-softraycast/pkg/core"
	"github.com/df07/go-softraycast/pkg/material"
)

var testMaterial = material.NewMaterial(core.NewVec3(255, 0, 0), 500, 0.2)

func newTestRay(origin, direction core.Vec3) core.Ray {
	return core.NewRay(origin, direction, 0, math.Inf(1))
}

func TestIntersectSphere_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := newTestRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	if t1, t2, ok := IntersectSphere(ray, sphere); ok {
		t.Errorf("Expected miss, but got roots %f, %f", t1, t2)
	}
}

func TestIntersectSphere_RootOrder(t *testing.T) {
	tests := []struct {
		name       string
		rayOrigin  core.Vec3
		rayDir     core.Vec3
		radius     float64
		expectedT1 float64
		expectedT2 float64
	}{
		{
			name:       "entry and exit along +z",
			rayOrigin:  core.NewVec3(0, 0, -2),
			rayDir:     core.NewVec3(0, 0, 1),
			radius:     1,
			expectedT1: 3, // "+" root first
			expectedT2: 1,
		},
		{
			name:       "unnormalized direction scales t",
			rayOrigin:  core.NewVec3(0, 0, -4),
			rayDir:     core.NewVec3(0, 0, 2),
			radius:     2,
			expectedT1: 3,
			expectedT2: 1,
		},
		{
			name:       "origin inside sphere",
			rayOrigin:  core.NewVec3(0, 0, 0),
			rayDir:     core.NewVec3(1, 0, 0),
			radius:     1,
			expectedT1: 1,
			expectedT2: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(core.NewVec3(0, 0, 0), tt.radius, testMaterial)
			t1, t2, ok := sphere.Intersect(newTestRay(tt.rayOrigin, tt.rayDir))
			if !ok {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(t1-tt.expectedT1) > 1e-9 {
				t.Errorf("Expected first root %f, got %f", tt.expectedT1, t1)
			}
			if math.Abs(t2-tt.expectedT2) > 1e-9 {
				t.Errorf("Expected second root %f, got %f", tt.expectedT2, t2)
			}
		})
	}
}

func TestIntersectSphere_TangentIsMiss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	// Grazes the sphere at (1, 0, 0): discriminant is exactly zero
	ray := newTestRay(core.NewVec3(1, 0, -2), core.NewVec3(0, 0, 1))

	if _, _, ok := IntersectSphere(ray, sphere); ok {
		t.Error("Expected tangent ray to be treated as a miss")
	}
}

func TestIntersectSphere_Degenerate(t *testing.T) {
	tests := []struct {
		name   string
		sphere Sphere
		ray    core.Ray
	}{
		{
			name:   "zero direction",
			sphere: NewSphere(core.NewVec3(0, 0, 0), 1, testMaterial),
			ray:    newTestRay(core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 0)),
		},
		{
			name:   "zero radius",
			sphere: NewSphere(core.NewVec3(0, 0, 0), 0, testMaterial),
			ray:    newTestRay(core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1)),
		},
		{
			name:   "NaN direction",
			sphere: NewSphere(core.NewVec3(0, 0, 0), 1, testMaterial),
			ray:    newTestRay(core.NewVec3(0, 0, -3), core.NewVec3(math.NaN(), 0, 1)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if t1, t2, ok := IntersectSphere(tt.ray, tt.sphere); ok {
				t.Errorf("Expected miss, got roots %f, %f", t1, t2)
			}
		})
	}
}

func TestSphere_Normal(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 1, 1), 2.0, testMaterial)
	normal := sphere.Normal(core.NewVec3(1, 3, 1))

	expected := core.NewVec3(0, 1, 0)
	if normal.Sub(expected).Norm() > 1e-9 {
		t.Errorf("Expected normal %v, got %v", expected, normal)
	}
}

func TestSphere_Validate(t *testing.T) {
	tests := []struct {
		name        string
		sphere      Sphere
		expectError bool
	}{
		{"valid", NewSphere(core.NewVec3(0, -1, 3), 1, testMaterial), false},
		{"zero radius", NewSphere(core.NewVec3(0, 0, 0), 0, testMaterial), true},
		{"negative radius", NewSphere(core.NewVec3(0, 0, 0), -1, testMaterial), true},
		{"infinite radius", NewSphere(core.NewVec3(0, 0, 0), math.Inf(1), testMaterial), true},
		{"NaN center", NewSphere(core.NewVec3(math.NaN(), 0, 0), 1, testMaterial), true},
		{"bad material", NewSphere(core.NewVec3(0, 0, 0), 1, material.NewMaterial(core.NewVec3(1, 1, 1), -3, 0)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.sphere.Validate()
			if tt.expectError && err == nil {
				t.Error("Expected error, got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}
