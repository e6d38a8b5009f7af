package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-softraycast/pkg/core"
	"github.com/df07/go-softraycast/pkg/scene"
)

// Camera generates primary rays. With zero rotation it looks down +Z with +Y up.
type Camera struct {
	position core.Vec3
	rotation mgl64.Mat3
	view     ViewConfig
}

// NewCamera creates a camera from a scene placement and a view.
// Rotation is applied roll first, then pitch, then yaw. Positive pitch looks up
// and positive yaw turns toward +X.
func NewCamera(config scene.CameraConfig, view ViewConfig) *Camera {
	yaw := mgl64.Rotate3DY(mgl64.DegToRad(config.Yaw))
	pitch := mgl64.Rotate3DX(mgl64.DegToRad(-config.Pitch))
	roll := mgl64.Rotate3DZ(mgl64.DegToRad(config.Roll))

	return &Camera{
		position: config.Position,
		rotation: yaw.Mul3(pitch).Mul3(roll),
		view:     view,
	}
}

// Position returns the eye point
func (c *Camera) Position() core.Vec3 {
	return c.position
}

// View returns the view configuration
func (c *Camera) View() ViewConfig {
	return c.view
}

// Direction rotates a camera-space direction into world space
func (c *Camera) Direction(local core.Vec3) core.Vec3 {
	d := c.rotation.Mul3x1(mgl64.Vec3{local.X, local.Y, local.Z})
	return core.NewVec3(d[0], d[1], d[2])
}

// GetRay returns the primary ray through canvas coordinates (cx, cy).
// Only points beyond the viewport plane (t > 1) are visible.
func (c *Camera) GetRay(cx, cy float64) core.Ray {
	direction := c.Direction(c.view.CanvasToViewport(cx, cy))
	return core.NewRay(c.position, direction, 1, math.Inf(1))
}

// GetPixelRay returns the primary ray through image pixel (x, y)
func (c *Camera) GetPixelRay(x, y int) core.Ray {
	cx, cy := c.view.PixelToCanvas(x, y)
	return c.GetRay(cx, cy)
}
