package loaders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-softraycast/pkg/core"
	"github.com/df07/go-softraycast/pkg/geometry"
	"github.com/df07/go-softraycast/pkg/lights"
	"github.com/df07/go-softraycast/pkg/material"
	"github.com/df07/go-softraycast/pkg/scene"
)

// Vec is a JSON vector written as [x, y, z]
type Vec [3]float64

func (v Vec) toVec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

func fromVec3(v core.Vec3) Vec {
	return Vec{v.X, v.Y, v.Z}
}

// MaterialFile is the on-disk form of a material. An omitted specular means no highlight.
type MaterialFile struct {
	Color      Vec     `json:"color"`
	Specular   *int    `json:"specular,omitempty"`
	Reflective float64 `json:"reflective,omitempty"`
}

// SphereFile is the on-disk form of a sphere
type SphereFile struct {
	Center   Vec          `json:"center"`
	Radius   float64      `json:"radius"`
	Material MaterialFile `json:"material"`
}

// PlaneFile is the on-disk form of a plane
type PlaneFile struct {
	Point    Vec          `json:"point"`
	Normal   Vec          `json:"normal"`
	Material MaterialFile `json:"material"`
}

// LightFile is the on-disk form of a light
type LightFile struct {
	Type      lights.Type `json:"type"`
	Intensity float64     `json:"intensity"`
	Position  *Vec        `json:"position,omitempty"`
	Direction *Vec        `json:"direction,omitempty"`
}

// CameraFile is the on-disk form of the camera placement
type CameraFile struct {
	Position Vec     `json:"position"`
	Yaw      float64 `json:"yaw,omitempty"`
	Pitch    float64 `json:"pitch,omitempty"`
	Roll     float64 `json:"roll,omitempty"`
}

// SceneFile is a JSON scene document. The descriptive fields are also read by
// scene discovery.
type SceneFile struct {
	Name        string       `json:"name,omitempty"`
	Description string       `json:"description,omitempty"`
	Group       string       `json:"group,omitempty"`
	Variant     string       `json:"variant,omitempty"`
	Background  Vec          `json:"background"`
	MaxDepth    *int         `json:"maxDepth,omitempty"`
	Camera      *CameraFile  `json:"camera,omitempty"`
	Spheres     []SphereFile `json:"spheres,omitempty"`
	Planes      []PlaneFile  `json:"planes,omitempty"`
	Lights      []LightFile  `json:"lights,omitempty"`
}

func (m MaterialFile) toMaterial() material.Material {
	specular := material.NoSpecular
	if m.Specular != nil {
		specular = *m.Specular
	}
	return material.NewMaterial(m.Color.toVec3(), specular, m.Reflective)
}

func fromMaterial(m material.Material) MaterialFile {
	file := MaterialFile{Color: fromVec3(m.Color), Reflective: m.Reflective}
	if m.HasSpecular() {
		specular := m.Specular
		file.Specular = &specular
	}
	return file
}

func (l LightFile) toLight(index int) (lights.Light, error) {
	switch l.Type {
	case lights.Ambient:
		return lights.NewAmbient(l.Intensity), nil
	case lights.Point:
		if l.Position == nil {
			return lights.Light{}, fmt.Errorf("light %d: point light needs a position", index)
		}
		return lights.NewPoint(l.Intensity, l.Position.toVec3()), nil
	case lights.Directional:
		if l.Direction == nil {
			return lights.Light{}, fmt.Errorf("light %d: directional light needs a direction", index)
		}
		return lights.NewDirectional(l.Intensity, l.Direction.toVec3()), nil
	default:
		return lights.Light{}, fmt.Errorf("light %d: unknown type %s", index, l.Type)
	}
}

// Build converts the document into a validated scene
func (f *SceneFile) Build() (*scene.Scene, error) {
	b := scene.NewBuilder(f.Name).SetBackground(f.Background.toVec3())
	if f.MaxDepth != nil {
		b.SetMaxDepth(*f.MaxDepth)
	}
	if f.Camera != nil {
		b.SetCamera(scene.CameraConfig{
			Position: f.Camera.Position.toVec3(),
			Yaw:      f.Camera.Yaw,
			Pitch:    f.Camera.Pitch,
			Roll:     f.Camera.Roll,
		})
	}

	for _, s := range f.Spheres {
		b.AddSphere(geometry.NewSphere(s.Center.toVec3(), s.Radius, s.Material.toMaterial()))
	}
	for _, p := range f.Planes {
		// Plane is built directly so a zero normal reaches validation instead of being normalized to NaN
		b.AddPlane(geometry.Plane{Point: p.Point.toVec3(), Normal: p.Normal.toVec3(), Material: p.Material.toMaterial()})
	}
	for i, l := range f.Lights {
		light, err := l.toLight(i)
		if err != nil {
			return nil, err
		}
		b.AddLight(light)
	}

	return b.Build()
}

// NewSceneFile converts a scene into its on-disk form
func NewSceneFile(s *scene.Scene) *SceneFile {
	maxDepth := s.MaxDepth
	f := &SceneFile{
		Name:       s.Name,
		Background: fromVec3(s.Background),
		MaxDepth:   &maxDepth,
		Camera: &CameraFile{
			Position: fromVec3(s.Camera.Position),
			Yaw:      s.Camera.Yaw,
			Pitch:    s.Camera.Pitch,
			Roll:     s.Camera.Roll,
		},
	}

	for _, sphere := range s.Spheres {
		f.Spheres = append(f.Spheres, SphereFile{
			Center:   fromVec3(sphere.Center),
			Radius:   sphere.Radius,
			Material: fromMaterial(sphere.Material),
		})
	}
	for _, plane := range s.Planes {
		f.Planes = append(f.Planes, PlaneFile{
			Point:    fromVec3(plane.Point),
			Normal:   fromVec3(plane.Normal),
			Material: fromMaterial(plane.Material),
		})
	}
	for _, light := range s.Lights {
		lf := LightFile{Type: light.Type, Intensity: light.Intensity}
		switch light.Type {
		case lights.Point:
			position := fromVec3(light.Position)
			lf.Position = &position
		case lights.Directional:
			direction := fromVec3(light.Direction)
			lf.Direction = &direction
		}
		f.Lights = append(f.Lights, lf)
	}

	return f
}

// DecodeScene reads a JSON scene document and builds it. Unknown fields are rejected.
func DecodeScene(r io.Reader) (*scene.Scene, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var f SceneFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return f.Build()
}

// LoadScene reads a scene file. A document without a name is named after the file.
func LoadScene(path string) (*scene.Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer file.Close()

	s, err := DecodeScene(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// EncodeScene writes s as indented JSON
func EncodeScene(w io.Writer, s *scene.Scene) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewSceneFile(s)); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return nil
}

// SaveScene writes s to a JSON file
func SaveScene(path string, s *scene.Scene) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}
	defer file.Close()

	return EncodeScene(file, s)
}
