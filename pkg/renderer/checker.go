package renderer

import "github.com/df07/go-softraycast/pkg/core"

// Checker fills a width x height area of sink with a chessboard of square cells.
// It exercises a presenter without tracing any rays.
func Checker(sink PixelSink, width, height, cell int, a, b core.Vec3) {
	if cell <= 0 {
		cell = 1
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/cell+y/cell)%2 == 0 {
				sink.PutPixel(x, y, a)
			} else {
				sink.PutPixel(x, y, b)
			}
		}
	}
}
