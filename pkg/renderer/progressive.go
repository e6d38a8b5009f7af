package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-softraycast/pkg/core"
)

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	TileSize  int // Size of each tile (64x64 recommended)
	MaxPasses int // Number of coarse-to-fine passes; the last pass traces every pixel
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:  64,
		MaxPasses: 3, // 4x4 blocks, 2x2 blocks, full resolution
	}
}

// ProgressiveRaytracer renders a frame as a sequence of passes of increasing
// resolution so a viewer sees a rough image early. All tracing happens on a
// single goroutine; tiles are rendered in grid order.
type ProgressiveRaytracer struct {
	raytracer   *Raytracer
	config      ProgressiveConfig
	tiles       []*Tile
	framebuffer *Framebuffer
	logger      core.Logger
}

// NewProgressiveRaytracer creates a new progressive raytracer
func NewProgressiveRaytracer(raytracer *Raytracer, config ProgressiveConfig, logger core.Logger) *ProgressiveRaytracer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultProgressiveConfig().TileSize
	}
	if config.MaxPasses <= 0 {
		config.MaxPasses = 1
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	view := raytracer.View()
	return &ProgressiveRaytracer{
		raytracer:   raytracer,
		config:      config,
		tiles:       NewTileGrid(view.CanvasWidth, view.CanvasHeight, config.TileSize),
		framebuffer: NewFramebuffer(view.CanvasWidth, view.CanvasHeight),
		logger:      logger,
	}
}

// Framebuffer returns the buffer passes are drawn into. It may be read while rendering.
func (pr *ProgressiveRaytracer) Framebuffer() *Framebuffer {
	return pr.framebuffer
}

// Tiles returns the tile grid
func (pr *ProgressiveRaytracer) Tiles() []*Tile {
	return pr.tiles
}

// blockSizeForPass returns the edge of the pixel squares traced with a single ray.
// The block halves each pass and is 1 on the final pass.
func (pr *ProgressiveRaytracer) blockSizeForPass(passNumber int) int {
	return 1 << max(0, pr.config.MaxPasses-passNumber)
}

// RenderPass renders a single progressive pass over every tile
func (pr *ProgressiveRaytracer) RenderPass(ctx context.Context, passNumber int, tileCallback func(TileCompletionResult)) (*image.RGBA, RenderStats, error) {
	block := pr.blockSizeForPass(passNumber)
	pr.logger.Printf("Pass %d: %dx%d pixel blocks over %d tiles...\n", passNumber, block, block, len(pr.tiles))

	var stats RenderStats
	for i, tile := range pr.tiles {
		// Check for cancellation between tiles
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		stats = stats.Add(pr.raytracer.renderBlocks(tile.Bounds, block, pr.framebuffer))
		tile.PassesCompleted++

		if tileCallback != nil {
			tileCallback(TileCompletionResult{
				TileX:      tile.Bounds.Min.X / pr.config.TileSize,
				TileY:      tile.Bounds.Min.Y / pr.config.TileSize,
				TileImage:  pr.framebuffer.SubImage(tile.Bounds),
				PassNumber: passNumber,

				TileNumber:  i + 1,
				TotalTiles:  len(pr.tiles),
				TotalPasses: pr.config.MaxPasses,
			})
		}
	}

	return pr.framebuffer.Snapshot(), stats, nil
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	BlockSize  int // Edge of the pixel squares traced with one ray
	Image      *image.RGBA
	Stats      RenderStats
	IsLast     bool
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX      int // Tile coordinates (not pixel coordinates)
	TileY      int
	TileImage  *image.RGBA // Image data for just this tile
	PassNumber int         // Which pass this tile was rendered in

	// Progress information
	TileNumber  int // Current tile number in this pass (1-based)
	TotalTiles  int // Total number of tiles in the image
	TotalPasses int // Total number of passes planned
}

// RenderOptions configures progressive rendering behavior
type RenderOptions struct {
	TileUpdates bool // Whether to generate tile completion events
}

// RenderProgressive renders on a background goroutine and returns channels for events.
// The caller should drain all three channels; each is closed when rendering ends.
// If options.TileUpdates is false, the tile channel is closed immediately.
func (pr *ProgressiveRaytracer) RenderProgressive(ctx context.Context, options RenderOptions) (<-chan PassResult, <-chan TileCompletionResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	tileChan := make(chan TileCompletionResult, 100) // Buffer for tiles
	errChan := make(chan error, 1)

	if !options.TileUpdates {
		close(tileChan)
	}

	go func() {
		defer close(passChan)
		if options.TileUpdates {
			defer close(tileChan)
		}
		defer close(errChan)

		pr.logger.Printf("Starting progressive rendering with %d passes...\n", pr.config.MaxPasses)

		for pass := 1; pass <= pr.config.MaxPasses; pass++ {
			startTime := time.Now()

			var tileCallback func(TileCompletionResult)
			if options.TileUpdates {
				tileCallback = func(result TileCompletionResult) {
					select {
					case tileChan <- result:
					case <-ctx.Done():
					}
				}
			}

			img, stats, err := pr.RenderPass(ctx, pass, tileCallback)
			if err != nil {
				pr.logger.Printf("Rendering cancelled during pass %d\n", pass)
				errChan <- fmt.Errorf("pass %d: %w", pass, err)
				return
			}

			pr.logger.Printf("Pass %d completed in %v (%s)\n", pass, time.Since(startTime), stats)

			result := PassResult{
				PassNumber: pass,
				BlockSize:  pr.blockSizeForPass(pass),
				Image:      img,
				Stats:      stats,
				IsLast:     pass == pr.config.MaxPasses,
			}

			select {
			case passChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return passChan, tileChan, errChan
}
