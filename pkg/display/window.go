// Package display presents a framebuffer in a desktop window while it is being rendered.
package display

import (
	"errors"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/df07/go-softraycast/pkg/renderer"
)

// Window shows the contents of a Framebuffer, re-uploading it every frame.
// Escape or closing the window ends Run.
type Window struct {
	fb      *renderer.Framebuffer
	title   string
	scale   int
	fbImg   *ebiten.Image
	scratch []byte

	mu     sync.Mutex
	status string
	shown  string
}

// NewWindow creates a window for fb. The window is scale times the framebuffer size.
func NewWindow(fb *renderer.Framebuffer, title string, scale int) *Window {
	return &Window{
		fb:    fb,
		title: title,
		scale: max(1, scale),
	}
}

// SetStatus replaces the progress text shown after the title. Safe to call from any goroutine.
func (w *Window) SetStatus(status string) {
	w.mu.Lock()
	w.status = status
	w.mu.Unlock()
}

// Run opens the window and blocks until it closes
func (w *Window) Run() error {
	bounds := w.fb.Bounds()
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowSize(bounds.Dx()*w.scale, bounds.Dy()*w.scale)
	ebiten.SetTPS(30)

	err := ebiten.RunGame(w)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	w.mu.Lock()
	status := w.status
	w.mu.Unlock()
	if status != w.shown {
		w.shown = status
		ebiten.SetWindowTitle(windowTitle(w.title, status))
	}
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	bounds := w.fb.Bounds()
	if w.fbImg == nil {
		w.fbImg = ebiten.NewImage(bounds.Dx(), bounds.Dy())
		w.scratch = make([]byte, 4*bounds.Dx()*bounds.Dy())
	}

	w.fb.CopyPixels(w.scratch)
	w.fbImg.WritePixels(w.scratch)
	screen.DrawImage(w.fbImg, nil)
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	bounds := w.fb.Bounds()
	return bounds.Dx(), bounds.Dy()
}

func windowTitle(title, status string) string {
	if status == "" {
		return title
	}
	return title + " - " + status
}
