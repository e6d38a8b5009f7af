package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-softraycast/pkg/core"
	"github.com/df07/go-softraycast/pkg/geometry"
	"github.com/df07/go-softraycast/pkg/integrator"
	"github.com/df07/go-softraycast/pkg/material"
	"github.com/df07/go-softraycast/pkg/renderer"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType"`
	Index        int                    `json:"index"`     // Position of the primitive in its list
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`    // Shading normal
	Distance     float64                `json:"distance"`  // Ray parameter of the hit
	Intensity    float64                `json:"intensity"` // Unclamped light intensity at the point
	Color        string                 `json:"color"`     // Final pixel color
	Properties   map[string]interface{} `json:"properties"`
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	rgba := renderer.ColorToRGBA(c)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// extractMaterialInfo describes a material for the inspector
func extractMaterialInfo(mat material.Material) map[string]interface{} {
	properties := map[string]interface{}{
		"color":      hexColor(mat.Color),
		"reflective": mat.Reflective,
	}
	if mat.HasSpecular() {
		properties["specular"] = mat.Specular
	} else {
		properties["specular"] = "none"
	}
	return properties
}

// InspectResult contains information about the primitive hit by an inspection ray
type InspectResult struct {
	Hit      bool
	Record   geometry.Hit
	Point    core.Vec3
	Normal   core.Vec3
	Material material.Material
	Geometry map[string]interface{}
}

// inspectPixel casts the primary ray through a pixel and describes the nearest hit
func inspectPixel(rt *renderer.Raytracer, pixelX, pixelY int) InspectResult {
	sceneObj := rt.Scene()
	ray := rt.Camera().GetPixelRay(pixelX, pixelY)

	hit, ok := integrator.FindNearest(ray, sceneObj)
	if !ok {
		return InspectResult{Hit: false}
	}

	point := ray.At(hit.T)
	result := InspectResult{
		Hit:      true,
		Record:   hit,
		Point:    point,
		Material: sceneObj.Material(hit),
	}

	switch hit.Kind {
	case geometry.KindSphere:
		sphere := sceneObj.Spheres[hit.Index]
		result.Normal = sphere.Normal(point)
		result.Geometry = map[string]interface{}{
			"center": vecArray(sphere.Center),
			"radius": sphere.Radius,
		}
	case geometry.KindPlane:
		plane := sceneObj.Planes[hit.Index]
		result.Normal = plane.FacingNormal(ray.Direction)
		result.Geometry = map[string]interface{}{
			"point":  vecArray(plane.Point),
			"normal": vecArray(plane.Normal),
		}
	}

	return result
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	inspectReq := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	if pixelX < 0 || pixelX >= inspectReq.Width || pixelY < 0 || pixelY >= inspectReq.Height {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	rt, err := s.newRaytracer(inspectReq)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := inspectPixel(rt, pixelX, pixelY)
	if !result.Hit {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(InspectResponse{Hit: false, Color: hexColor(rt.Scene().Background)})
		return
	}

	ray := rt.Camera().GetPixelRay(pixelX, pixelY)
	intensity := integrator.ComputeLighting(rt.Scene(), result.Point, core.Negate(ray.Direction), result.Normal, result.Material.Specular)

	response := InspectResponse{
		Hit:          true,
		GeometryType: result.Record.Kind.String(),
		Index:        result.Record.Index,
		Point:        vecArray(result.Point),
		Normal:       vecArray(result.Normal),
		Distance:     result.Record.T,
		Intensity:    intensity,
		Color:        hexColor(rt.PixelColor(pixelX, pixelY)),
		Properties: map[string]interface{}{
			"material": extractMaterialInfo(result.Material),
			"geometry": result.Geometry,
		},
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
