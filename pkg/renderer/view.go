package renderer

import (
	"fmt"

	"github.com/df07/go-softraycast/pkg/core"
)

// ViewConfig describes the mapping from canvas pixels to the viewport plane.
// It is an immutable value passed to the camera.
type ViewConfig struct {
	CanvasWidth        int     // Output width in pixels
	CanvasHeight       int     // Output height in pixels
	ViewportWidth      float64 // Width of the viewport in world units
	ViewportHeight     float64 // Height of the viewport in world units
	ProjectionDistance float64 // Distance from the eye to the viewport plane
}

// NewViewConfig returns a view with a viewport one unit tall at distance 1,
// widened to match the canvas aspect ratio
func NewViewConfig(width, height int) ViewConfig {
	aspect := 1.0
	if height > 0 {
		aspect = float64(width) / float64(height)
	}
	return ViewConfig{
		CanvasWidth:        width,
		CanvasHeight:       height,
		ViewportWidth:      aspect,
		ViewportHeight:     1,
		ProjectionDistance: 1,
	}
}

// Validate checks that every dimension is positive
func (v ViewConfig) Validate() error {
	if v.CanvasWidth <= 0 || v.CanvasHeight <= 0 {
		return fmt.Errorf("canvas size %dx%d must be positive", v.CanvasWidth, v.CanvasHeight)
	}
	if !(v.ViewportWidth > 0) || !(v.ViewportHeight > 0) {
		return fmt.Errorf("viewport size %vx%v must be positive", v.ViewportWidth, v.ViewportHeight)
	}
	if !(v.ProjectionDistance > 0) {
		return fmt.Errorf("projection distance %v must be positive", v.ProjectionDistance)
	}
	return nil
}

// PixelToCanvas converts image coordinates (origin top-left, y down) to
// canvas coordinates (origin at the center, y up)
func (v ViewConfig) PixelToCanvas(x, y int) (float64, float64) {
	return float64(x - v.CanvasWidth/2), float64(v.CanvasHeight/2 - y)
}

// CanvasToViewport returns the point on the viewport plane for canvas coordinates
func (v ViewConfig) CanvasToViewport(cx, cy float64) core.Vec3 {
	return core.NewVec3(
		cx*v.ViewportWidth/float64(v.CanvasWidth),
		cy*v.ViewportHeight/float64(v.CanvasHeight),
		v.ProjectionDistance,
	)
}
