package loaders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// TestLoadImage creates a test PNG and verifies loading
func TestLoadImage(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.png")

	// 2x2: white, red / green, blue
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})

	f, err := os.Create(testFile)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	f.Close()

	loaded, err := LoadImage(testFile)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}

	if loaded.Bounds().Dx() != 2 || loaded.Bounds().Dy() != 2 {
		t.Errorf("Expected 2x2 image, got %v", loaded.Bounds())
	}

	tests := []struct {
		x, y    int
		r, g, b uint32
	}{
		{0, 0, 255, 255, 255},
		{1, 0, 255, 0, 0},
		{0, 1, 0, 255, 0},
		{1, 1, 0, 0, 255},
	}
	for _, tt := range tests {
		r, g, b, _ := loaded.At(tt.x, tt.y).RGBA()
		if r>>8 != tt.r || g>>8 != tt.g || b>>8 != tt.b {
			t.Errorf("pixel (%d,%d): expected (%d,%d,%d), got (%d,%d,%d)", tt.x, tt.y, tt.r, tt.g, tt.b, r>>8, g>>8, b>>8)
		}
	}
}

func TestLoadImage_Errors(t *testing.T) {
	if _, err := LoadImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage(bad); err == nil {
		t.Error("Expected error for undecodable file")
	}
}
