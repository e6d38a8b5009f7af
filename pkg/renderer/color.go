package renderer

import (
	"image/color"

	"github.com/df07/go-softraycast/pkg/core"
)

// ColorToRGBA clamps each channel to [0, 255] and converts to an opaque pixel.
// Fractions are truncated.
func ColorToRGBA(c core.Vec3) color.RGBA {
	c = core.Clamp(c, 0, 255)
	return color.RGBA{
		R: uint8(c.X),
		G: uint8(c.Y),
		B: uint8(c.Z),
		A: 255,
	}
}

// RGBAToColor converts a pixel back to a color with channels in [0, 255]
func RGBAToColor(c color.Color) core.Vec3 {
	r, g, b, _ := c.RGBA()
	return core.NewVec3(float64(r>>8), float64(g>>8), float64(b>>8))
}
