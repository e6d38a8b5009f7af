package renderer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/df07/go-softraycast/pkg/scene"
)

type silentLogger struct{}

func (silentLogger) Printf(string, ...interface{}) {}

func newTestProgressive(t *testing.T, width, height int, config ProgressiveConfig) (*ProgressiveRaytracer, *Raytracer) {
	t.Helper()
	rt, err := NewRaytracer(scene.NewDefaultScene(), NewViewConfig(width, height))
	if err != nil {
		t.Fatal(err)
	}
	return NewProgressiveRaytracer(rt, config, silentLogger{}), rt
}

func TestNewTileGrid(t *testing.T) {
	tiles := NewTileGrid(100, 50, 32)
	if len(tiles) != 4*2 {
		t.Fatalf("Expected 8 tiles, got %d", len(tiles))
	}

	covered := 0
	for i, tile := range tiles {
		if tile.ID != i {
			t.Errorf("Expected tile ID %d, got %d", i, tile.ID)
		}
		covered += tile.Bounds.Dx() * tile.Bounds.Dy()
	}
	if covered != 100*50 {
		t.Errorf("Expected tiles to cover %d pixels, got %d", 100*50, covered)
	}
	if last := tiles[len(tiles)-1].Bounds; last.Max.X != 100 || last.Max.Y != 50 {
		t.Errorf("Expected last tile clipped to image, got %v", last)
	}
}

func TestProgressive_BlockSizes(t *testing.T) {
	pr, _ := newTestProgressive(t, 8, 8, ProgressiveConfig{TileSize: 4, MaxPasses: 3})

	expected := []int{4, 2, 1}
	for i, want := range expected {
		if got := pr.blockSizeForPass(i + 1); got != want {
			t.Errorf("pass %d: expected block %d, got %d", i+1, want, got)
		}
	}
}

func TestProgressive_FinalPassMatchesSerialRender(t *testing.T) {
	pr, rt := newTestProgressive(t, 24, 18, ProgressiveConfig{TileSize: 8, MaxPasses: 3})

	passChan, tileChan, errChan := pr.RenderProgressive(context.Background(), RenderOptions{TileUpdates: true})

	tileCount := 0
	done := make(chan struct{})
	go func() {
		for range tileChan {
			tileCount++
		}
		close(done)
	}()

	var passes []PassResult
	for result := range passChan {
		passes = append(passes, result)
	}
	<-done
	if err := <-errChan; err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(passes) != 3 {
		t.Fatalf("Expected 3 passes, got %d", len(passes))
	}
	if !passes[2].IsLast || passes[0].IsLast {
		t.Error("Expected only the final pass to be marked last")
	}
	if tiles := len(pr.Tiles()); tileCount != tiles*3 {
		t.Errorf("Expected %d tile events, got %d", tiles*3, tileCount)
	}

	// Coarse passes trace fewer rays
	if passes[0].Stats.PrimaryRays >= passes[2].Stats.PrimaryRays {
		t.Errorf("Expected first pass to trace fewer rays: %d vs %d", passes[0].Stats.PrimaryRays, passes[2].Stats.PrimaryRays)
	}
	if passes[2].Stats.PrimaryRays != 24*18 {
		t.Errorf("Expected final pass to trace every pixel, got %d", passes[2].Stats.PrimaryRays)
	}

	serial, _ := rt.RenderImage()
	if !bytes.Equal(serial.Pix, passes[2].Image.Pix) {
		t.Error("Final progressive image differs from the serial render")
	}
}

func TestProgressive_NoTileUpdates(t *testing.T) {
	pr, _ := newTestProgressive(t, 8, 8, ProgressiveConfig{TileSize: 4, MaxPasses: 1})

	passChan, tileChan, errChan := pr.RenderProgressive(context.Background(), RenderOptions{})
	if _, ok := <-tileChan; ok {
		t.Error("Expected tile channel to be closed")
	}
	count := 0
	for range passChan {
		count++
	}
	if err := <-errChan; err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 pass, got %d", count)
	}
}

func TestProgressive_Cancelled(t *testing.T) {
	pr, _ := newTestProgressive(t, 32, 32, ProgressiveConfig{TileSize: 8, MaxPasses: 2})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	passChan, _, errChan := pr.RenderProgressive(ctx, RenderOptions{})
	for range passChan {
		t.Error("Expected no passes after cancellation")
	}
	if err := <-errChan; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestProgressive_Defaults(t *testing.T) {
	pr, _ := newTestProgressive(t, 8, 8, ProgressiveConfig{})
	if pr.config.TileSize != DefaultProgressiveConfig().TileSize || pr.config.MaxPasses != 1 {
		t.Errorf("Expected defaults to be filled in, got %+v", pr.config)
	}
}
