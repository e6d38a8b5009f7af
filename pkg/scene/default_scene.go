package scene

import (
	"github.com/df07/go-softraycast/pkg/core"
	"github.com/df07/go-softraycast/pkg/geometry"
	"github.com/df07/go-softraycast/pkg/lights"
	"github.com/df07/go-softraycast/pkg/material"
)

// NewDefaultScene creates the classic scene: three shiny spheres resting on a
// huge yellow sphere, lit by ambient, point and directional lights
func NewDefaultScene() *Scene {
	b := NewBuilder("default")
	addSpheres(b)
	b.AddSphere(geometry.NewSphere(core.NewVec3(0, -5001, 0), 5000,
		material.NewMaterial(core.NewVec3(255, 255, 0), 1000, 0.5)))
	addLights(b)
	return b.MustBuild()
}

// NewPlaneScene is the default scene with the ground sphere replaced by a plane
func NewPlaneScene() *Scene {
	b := NewBuilder("plane")
	addSpheres(b)
	b.AddPlane(geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0),
		material.NewMaterial(core.NewVec3(255, 255, 0), 1000, 0.5)))
	addLights(b)
	return b.MustBuild()
}

// NewMirrorScene places two facing mirrors around a matte sphere to stress the bounce limit
func NewMirrorScene() *Scene {
	mirror := material.NewMaterial(core.NewVec3(220, 220, 220), 1000, 0.9)
	b := NewBuilder("mirrors").
		SetMaxDepth(5).
		SetBackground(core.NewVec3(20, 20, 40)).
		AddSphere(geometry.NewSphere(core.NewVec3(0, 0, 4), 0.75, material.NewMaterial(core.NewVec3(255, 80, 0), 50, 0))).
		AddPlane(geometry.NewPlane(core.NewVec3(-2, 0, 0), core.NewVec3(1, 0, 0), mirror)).
		AddPlane(geometry.NewPlane(core.NewVec3(2, 0, 0), core.NewVec3(-1, 0, 0), mirror)).
		AddPlane(geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), material.NewDiffuse(core.NewVec3(200, 200, 200))))
	addLights(b)
	return b.MustBuild()
}

func addSpheres(b *Builder) {
	b.AddSphere(geometry.NewSphere(core.NewVec3(0, -1, 3), 1, material.NewMaterial(core.NewVec3(255, 0, 0), 500, 0.2)))
	b.AddSphere(geometry.NewSphere(core.NewVec3(2, 0, 4), 1, material.NewMaterial(core.NewVec3(0, 0, 255), 500, 0.3)))
	b.AddSphere(geometry.NewSphere(core.NewVec3(-2, 0, 4), 1, material.NewMaterial(core.NewVec3(0, 255, 0), 10, 0.4)))
}

func addLights(b *Builder) {
	b.AddLight(lights.NewAmbient(0.2))
	b.AddLight(lights.NewPoint(0.6, core.NewVec3(2, 1, 0)))
	b.AddLight(lights.NewDirectional(0.2, core.NewVec3(1, 4, 4)))
}

// Builtin returns a built-in scene by name
func Builtin(name string) (*Scene, bool) {
	switch name {
	case "default":
		return NewDefaultScene(), true
	case "plane":
		return NewPlaneScene(), true
	case "mirrors":
		return NewMirrorScene(), true
	default:
		return nil, false
	}
}
