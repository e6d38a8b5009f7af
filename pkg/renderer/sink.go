package renderer

import (
	"image"
	"sync"

	"github.com/fogleman/gg"

	"github.com/df07/go-softraycast/pkg/core"
)

// PixelSink receives finished pixels in image coordinates (origin top-left).
// Colors have channels nominally in [0, 255] and may fall outside that range.
type PixelSink interface {
	PutPixel(x, y int, color core.Vec3)
}

// Framebuffer is an RGBA pixel buffer that can be written by the renderer while
// a presenter reads snapshots from another goroutine
type Framebuffer struct {
	mu  sync.RWMutex
	img *image.RGBA
}

// NewFramebuffer creates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// PutPixel implements PixelSink. Pixels outside the buffer are ignored.
func (fb *Framebuffer) PutPixel(x, y int, color core.Vec3) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if !(image.Point{X: x, Y: y}).In(fb.img.Rect) {
		return
	}
	fb.img.SetRGBA(x, y, ColorToRGBA(color))
}

// Bounds returns the buffer rectangle
func (fb *Framebuffer) Bounds() image.Rectangle {
	return fb.img.Rect
}

// Snapshot returns a copy of the current contents
func (fb *Framebuffer) Snapshot() *image.RGBA {
	return fb.SubImage(fb.img.Rect)
}

// SubImage returns a copy of the pixels inside r, rebased to the origin
func (fb *Framebuffer) SubImage(r image.Rectangle) *image.RGBA {
	fb.mu.RLock()
	defer fb.mu.RUnlock()

	r = r.Intersect(fb.img.Rect)
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		src := fb.img.Pix[fb.img.PixOffset(r.Min.X, y):fb.img.PixOffset(r.Max.X, y)]
		copy(out.Pix[out.PixOffset(0, y-r.Min.Y):], src)
	}
	return out
}

// CopyPixels copies the raw RGBA bytes into dst, which must hold 4*width*height bytes
func (fb *Framebuffer) CopyPixels(dst []byte) {
	fb.mu.RLock()
	defer fb.mu.RUnlock()
	copy(dst, fb.img.Pix)
}

// Canvas is a PixelSink backed by a gg drawing context
type Canvas struct {
	dc *gg.Context
}

// NewCanvas creates a canvas of the given size
func NewCanvas(width, height int) *Canvas {
	return &Canvas{dc: gg.NewContext(width, height)}
}

// PutPixel implements PixelSink
func (c *Canvas) PutPixel(x, y int, color core.Vec3) {
	c.dc.SetColor(ColorToRGBA(color))
	c.dc.SetPixel(x, y)
}

// Image returns the canvas contents
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// SavePNG writes the canvas to a PNG file
func (c *Canvas) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}
