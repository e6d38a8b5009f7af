package renderer

import (
	"fmt"
	"image"
	"time"

	"github.com/df07/go-softraycast/pkg/core"
	"github.com/df07/go-softraycast/pkg/integrator"
	"github.com/df07/go-softraycast/pkg/scene"
)

// Raytracer renders a scene pixel by pixel through a camera.
// A Raytracer must not be used by more than one render at a time.
type Raytracer struct {
	scene      *scene.Scene
	view       ViewConfig
	camera     *Camera
	integrator *integrator.Whitted
	counter    *integrator.RayCounter
}

// NewRaytracer creates a raytracer using the scene's camera and bounce limit
func NewRaytracer(s *scene.Scene, view ViewConfig) (*Raytracer, error) {
	if s == nil {
		return nil, fmt.Errorf("scene is nil")
	}
	if err := view.Validate(); err != nil {
		return nil, fmt.Errorf("invalid view: %w", err)
	}

	counter := &integrator.RayCounter{}
	return &Raytracer{
		scene:      s,
		view:       view,
		camera:     NewCamera(s.Camera, view),
		integrator: &integrator.Whitted{MaxDepth: s.MaxDepth, Counter: counter},
		counter:    counter,
	}, nil
}

// SetMaxDepth overrides the scene's reflection bounce limit
func (rt *Raytracer) SetMaxDepth(depth int) {
	rt.integrator.MaxDepth = max(0, depth)
}

// MaxDepth returns the reflection bounce limit in use
func (rt *Raytracer) MaxDepth() int {
	return rt.integrator.MaxDepth
}

// SetCamera replaces the scene's camera placement
func (rt *Raytracer) SetCamera(config scene.CameraConfig) {
	rt.camera = NewCamera(config, rt.view)
}

// Camera returns the camera used to generate primary rays
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// Scene returns the scene being rendered
func (rt *Raytracer) Scene() *scene.Scene {
	return rt.scene
}

// View returns the view configuration
func (rt *Raytracer) View() ViewConfig {
	return rt.view
}

// PixelColor traces the primary ray through image pixel (x, y)
func (rt *Raytracer) PixelColor(x, y int) core.Vec3 {
	return rt.integrator.RayColor(rt.camera.GetPixelRay(x, y), rt.scene)
}

// Render traces every pixel once, row by row from the top, and writes it to sink
func (rt *Raytracer) Render(sink PixelSink) RenderStats {
	return rt.RenderBounds(image.Rect(0, 0, rt.view.CanvasWidth, rt.view.CanvasHeight), sink)
}

// RenderBounds renders only the pixels inside bounds
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, sink PixelSink) RenderStats {
	return rt.renderBlocks(bounds, 1, sink)
}

// RenderImage renders into a new RGBA image
func (rt *Raytracer) RenderImage() (*image.RGBA, RenderStats) {
	fb := NewFramebuffer(rt.view.CanvasWidth, rt.view.CanvasHeight)
	stats := rt.Render(fb)
	return fb.Snapshot(), stats
}

// renderBlocks traces one ray per block x block square inside bounds, taken at the
// square's top-left pixel, and fills the square with its color
func (rt *Raytracer) renderBlocks(bounds image.Rectangle, block int, sink PixelSink) RenderStats {
	rt.counter.Reset()
	start := time.Now()

	for y := bounds.Min.Y; y < bounds.Max.Y; y += block {
		for x := bounds.Min.X; x < bounds.Max.X; x += block {
			color := rt.PixelColor(x, y)

			for by := y; by < min(y+block, bounds.Max.Y); by++ {
				for bx := x; bx < min(x+block, bounds.Max.X); bx++ {
					sink.PutPixel(bx, by, color)
				}
			}
		}
	}

	return newRenderStats(bounds.Dx()*bounds.Dy(), rt.counter.Snapshot(), time.Since(start))
}
