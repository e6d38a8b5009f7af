package loaders

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// LoadImage decodes a PNG, JPEG, GIF, TIFF or BMP file, typically a reference
// render to compare against
func LoadImage(filename string) (image.Image, error) {
	img, err := imaging.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", filename, err)
	}
	return img, nil
}
