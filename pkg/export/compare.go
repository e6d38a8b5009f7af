package export

import (
	"fmt"
	"image"
)

// Diff summarizes per-channel differences between two images of equal size
type Diff struct {
	Pixels    int     // Pixels compared
	Different int     // Pixels with any channel differing
	MaxDelta  int     // Largest single channel difference, 0..255
	MeanDelta float64 // Mean absolute channel difference over all RGB channels
}

// Identical reports whether every pixel matched exactly
func (d Diff) Identical() bool {
	return d.Different == 0
}

// Within reports whether no channel differs by more than tolerance
func (d Diff) Within(tolerance int) bool {
	return d.MaxDelta <= tolerance
}

// Compare measures how far img is from reference. Alpha is ignored.
func Compare(img, reference image.Image) (Diff, error) {
	a, b := img.Bounds(), reference.Bounds()
	if a.Dx() != b.Dx() || a.Dy() != b.Dy() {
		return Diff{}, fmt.Errorf("size mismatch: %dx%d vs reference %dx%d", a.Dx(), a.Dy(), b.Dx(), b.Dy())
	}

	diff := Diff{Pixels: a.Dx() * a.Dy()}
	total := 0
	for y := 0; y < a.Dy(); y++ {
		for x := 0; x < a.Dx(); x++ {
			r1, g1, b1, _ := img.At(a.Min.X+x, a.Min.Y+y).RGBA()
			r2, g2, b2, _ := reference.At(b.Min.X+x, b.Min.Y+y).RGBA()

			dr, dg, db := channelDelta(r1, r2), channelDelta(g1, g2), channelDelta(b1, b2)
			if dr+dg+db > 0 {
				diff.Different++
			}
			diff.MaxDelta = max(diff.MaxDelta, dr, dg, db)
			total += dr + dg + db
		}
	}

	if diff.Pixels > 0 {
		diff.MeanDelta = float64(total) / float64(3*diff.Pixels)
	}
	return diff, nil
}

func channelDelta(a, b uint32) int {
	d := int(a>>8) - int(b>>8)
	if d < 0 {
		return -d
	}
	return d
}
