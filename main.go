package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-softraycast/pkg/config"
	"github.com/df07/go-softraycast/pkg/core"
	"github.com/df07/go-softraycast/pkg/display"
	"github.com/df07/go-softraycast/pkg/export"
	"github.com/df07/go-softraycast/pkg/loaders"
	"github.com/df07/go-softraycast/pkg/renderer"
	"github.com/df07/go-softraycast/pkg/scene"
)

// options holds the parsed command line
type options struct {
	scene     string
	width     int
	height    int
	depth     int
	out       string
	scale     float64
	window    bool
	passes    int
	upload    bool
	reference string
	tolerance int
	checker   int

	// Camera overrides, nil when the flag was not given
	yaw, pitch, roll *float64
	position         *core.Vec3
}

// parseOptions parses args on top of the configured defaults
func parseOptions(cfg config.Config, args []string, output io.Writer) (options, error) {
	var opts options
	var yaw, pitch, roll float64
	var cam string

	fs := flag.NewFlagSet("softraycast", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.scene, "scene", cfg.Scene, "Built-in scene (default, plane, mirrors) or path to a JSON scene file")
	fs.IntVar(&opts.width, "width", cfg.Width, "Image width in pixels")
	fs.IntVar(&opts.height, "height", cfg.Height, "Image height in pixels")
	fs.IntVar(&opts.depth, "depth", cfg.MaxDepth, "Reflection bounce limit, -1 uses the scene's value")
	fs.StringVar(&opts.out, "out", cfg.Output, "Output image; the extension selects the format")
	fs.Float64Var(&opts.scale, "scale", 1, "Scale factor applied to the saved image")
	fs.BoolVar(&opts.window, "window", false, "Show the render progressively in a window")
	fs.IntVar(&opts.passes, "passes", renderer.DefaultProgressiveConfig().MaxPasses, "Coarse-to-fine passes in window mode")
	fs.BoolVar(&opts.upload, "upload", false, "Also upload the image to the configured S3 bucket")
	fs.StringVar(&opts.reference, "reference", "", "Compare the render against this reference image")
	fs.IntVar(&opts.tolerance, "tolerance", 0, "Largest channel difference accepted by -reference")
	fs.IntVar(&opts.checker, "checker", 0, "Draw a chessboard with this cell size instead of rendering")
	fs.Float64Var(&yaw, "yaw", 0, "Camera rotation around Y in degrees")
	fs.Float64Var(&pitch, "pitch", 0, "Camera rotation around X in degrees")
	fs.Float64Var(&roll, "roll", 0, "Camera rotation around Z in degrees")
	fs.StringVar(&cam, "cam", "", "Camera position as x,y,z")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	var err error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "yaw":
			opts.yaw = &yaw
		case "pitch":
			opts.pitch = &pitch
		case "roll":
			opts.roll = &roll
		case "cam":
			var position core.Vec3
			if position, err = parseVec3(cam); err == nil {
				opts.position = &position
			}
		}
	})
	if err != nil {
		return options{}, fmt.Errorf("invalid -cam: %w", err)
	}

	if opts.width <= 0 || opts.height <= 0 {
		return options{}, fmt.Errorf("image size %dx%d must be positive", opts.width, opts.height)
	}
	if opts.scale <= 0 {
		return options{}, fmt.Errorf("scale %g must be positive", opts.scale)
	}
	if opts.passes < 1 {
		return options{}, fmt.Errorf("passes %d must be at least 1", opts.passes)
	}
	return opts, nil
}

// parseVec3 parses "x,y,z"
func parseVec3(s string) (core.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var v [3]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("component %d: %w", i, err)
		}
		v[i] = f
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}

// cameraFor applies the camera flags to the scene's camera
func (o options) cameraFor(base scene.CameraConfig) (scene.CameraConfig, bool) {
	camera := base
	changed := false
	if o.yaw != nil {
		camera.Yaw, changed = *o.yaw, true
	}
	if o.pitch != nil {
		camera.Pitch, changed = *o.pitch, true
	}
	if o.roll != nil {
		camera.Roll, changed = *o.roll, true
	}
	if o.position != nil {
		camera.Position, changed = *o.position, true
	}
	return camera, changed
}

// createScene resolves a built-in scene name or a JSON scene file path
func createScene(name string) (*scene.Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("no scene given")
	}
	if s, ok := scene.Builtin(name); ok {
		return s, nil
	}
	if strings.HasSuffix(name, ".json") {
		return loaders.LoadScene(name)
	}
	return nil, fmt.Errorf("unknown scene: %s", name)
}

// newRaytracer builds the raytracer for the selected scene and overrides
func newRaytracer(opts options) (*renderer.Raytracer, error) {
	s, err := createScene(opts.scene)
	if err != nil {
		return nil, err
	}

	rt, err := renderer.NewRaytracer(s, renderer.NewViewConfig(opts.width, opts.height))
	if err != nil {
		return nil, err
	}
	if opts.depth >= 0 {
		rt.SetMaxDepth(opts.depth)
	}
	if camera, ok := opts.cameraFor(s.Camera); ok {
		rt.SetCamera(camera)
	}
	return rt, nil
}

// renderSerial traces every pixel into a gg canvas
func renderSerial(rt *renderer.Raytracer, logger core.Logger) image.Image {
	canvas := renderer.NewCanvas(rt.View().CanvasWidth, rt.View().CanvasHeight)
	stats := rt.Render(canvas)
	logger.Printf("Render completed: %s (%.0f rays/s)\n", stats, stats.RaysPerSecond())
	return canvas.Image()
}

// renderWindow renders progressively while presenting the framebuffer.
// It must run on the main goroutine. Closing the window early keeps the last finished pass.
func renderWindow(rt *renderer.Raytracer, passes int, logger core.Logger) (image.Image, error) {
	progressive := renderer.NewProgressiveRaytracer(rt, renderer.ProgressiveConfig{MaxPasses: passes}, logger)
	window := display.NewWindow(progressive.Framebuffer(), "softraycast: "+rt.Scene().Name, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	passChan, _, errChan := progressive.RenderProgressive(ctx, renderer.RenderOptions{})

	var final image.Image
	var renderErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		for passChan != nil || errChan != nil {
			select {
			case result, ok := <-passChan:
				if !ok {
					passChan = nil
					continue
				}
				final = result.Image
				window.SetStatus(fmt.Sprintf("pass %d/%d", result.PassNumber, passes))
				if result.IsLast {
					window.SetStatus("done")
				}
			case err, ok := <-errChan:
				if !ok {
					errChan = nil
					continue
				}
				renderErr = err
			}
		}
	}()

	if err := window.Run(); err != nil {
		return nil, err
	}
	cancel()
	<-done

	if final == nil {
		if renderErr == nil {
			renderErr = errors.New("no pass completed")
		}
		return nil, renderErr
	}
	return final, nil
}

func run(cfg config.Config, opts options, logger core.Logger) error {
	var img image.Image

	if opts.checker > 0 {
		canvas := renderer.NewCanvas(opts.width, opts.height)
		renderer.Checker(canvas, opts.width, opts.height, opts.checker, core.NewVec3(255, 255, 255), core.NewVec3(0, 0, 0))
		img = canvas.Image()
	} else {
		rt, err := newRaytracer(opts)
		if err != nil {
			return err
		}
		logger.Printf("Rendering %s at %dx%d, max depth %d\n", rt.Scene().Describe(), opts.width, opts.height, rt.MaxDepth())

		if opts.window {
			if img, err = renderWindow(rt, opts.passes, logger); err != nil {
				return err
			}
		} else {
			img = renderSerial(rt, logger)
		}
	}

	var uploader export.Uploader
	if opts.upload {
		if !cfg.UploadEnabled() {
			return fmt.Errorf("-upload needs SOFTRAY_S3_BUCKET")
		}
		s3Uploader, err := export.NewS3Uploader(cfg.S3)
		if err != nil {
			return err
		}
		uploader = s3Uploader
	}

	publish := export.PublishOptions{Save: export.Options{Path: opts.out, Scale: opts.scale}}
	if err := export.Publish(context.Background(), img, publish, uploader); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", opts.out)

	if opts.reference != "" {
		return compareReference(img, opts.reference, opts.tolerance, logger)
	}
	return nil
}

// compareReference fails when img differs from the reference by more than tolerance
func compareReference(img image.Image, path string, tolerance int, logger core.Logger) error {
	reference, err := loaders.LoadImage(path)
	if err != nil {
		return err
	}
	diff, err := export.Compare(img, reference)
	if err != nil {
		return err
	}
	logger.Printf("Reference %s: %d of %d pixels differ, max delta %d, mean %.3f\n",
		path, diff.Different, diff.Pixels, diff.MaxDelta, diff.MeanDelta)
	if !diff.Within(tolerance) {
		return fmt.Errorf("render differs from %s by %d (tolerance %d)", path, diff.MaxDelta, tolerance)
	}
	return nil
}

func main() {
	logger := renderer.NewDefaultLogger()

	cfg, err := config.Load(".")
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	opts, err := parseOptions(cfg, os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, opts, logger); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
