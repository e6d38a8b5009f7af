// Package export writes rendered frames to disk and object storage.
package export

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// Options controls how a frame is written
type Options struct {
	Path  string  // Output file; the extension selects the format (png, jpg, gif, tif, bmp)
	Scale float64 // Output size relative to the render; 0 or 1 keeps the original size
}

// Save scales img and writes it to opts.Path, creating parent directories
func Save(img image.Image, opts Options) error {
	if opts.Path == "" {
		return fmt.Errorf("no output path")
	}
	if _, err := imaging.FormatFromFilename(opts.Path); err != nil {
		return fmt.Errorf("cannot save %s: %w", opts.Path, err)
	}

	if dir := filepath.Dir(opts.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := imaging.Save(Scale(img, opts.Scale), opts.Path); err != nil {
		return fmt.Errorf("failed to save %s: %w", opts.Path, err)
	}
	return nil
}

// Scale resizes img by factor. Whole-number enlargements use nearest neighbor so
// pixels stay sharp; everything else is filtered bilinearly.
func Scale(img image.Image, factor float64) image.Image {
	if factor <= 0 || factor == 1 {
		return img
	}

	bounds := img.Bounds()
	width := uint(math.Max(1, math.Round(float64(bounds.Dx())*factor)))
	height := uint(math.Max(1, math.Round(float64(bounds.Dy())*factor)))

	filter := resize.Bilinear
	if factor > 1 && factor == math.Trunc(factor) {
		filter = resize.NearestNeighbor
	}
	return resize.Resize(width, height, img, filter)
}

// EncodePNG encodes img as PNG bytes
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
