package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-softraycast/pkg/core"
	"github.com/df07/go-softraycast/pkg/export"
	"github.com/df07/go-softraycast/pkg/renderer"
)

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileX       int    `json:"tileX"`
	TileY       int    `json:"tileY"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG of just this tile
	PassNumber  int    `json:"passNumber"`
	TileNumber  int    `json:"tileNumber"`  // Current tile number in this pass (1-based)
	TotalTiles  int    `json:"totalTiles"`  // Total number of tiles in the image
	TotalPasses int    `json:"totalPasses"` // Total number of passes planned
}

// PassUpdate is sent when a whole pass has finished
type PassUpdate struct {
	Event          string `json:"event"`
	PassNumber     int    `json:"passNumber"`
	TotalPasses    int    `json:"totalPasses"`
	BlockSize      int    `json:"blockSize"`
	ElapsedMs      int64  `json:"elapsedMs"`
	TotalPixels    int    `json:"totalPixels"`
	PrimaryRays    int64  `json:"primaryRays"`
	ShadowRays     int64  `json:"shadowRays"`
	ReflectionRays int64  `json:"reflectionRays"`
	Hits           int64  `json:"hits"`
	Misses         int64  `json:"misses"`
	PrimitiveCount int    `json:"primitiveCount"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "passComplete", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender handles progressive rendering with real-time tile streaming via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Single writer goroutine; the handler waits for it so nothing writes after return
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req := &RenderRequest{}
	if err := s.parseRenderRequest(r, req); err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Console streaming stops before the event channel closes
	consoleCtx, stopConsole := context.WithCancel(ctx)
	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(consoleCtx, consoleChan, sseEventChan)
	}()
	defer func() {
		stopConsole()
		<-consoleDone
	}()

	rt, err := s.newRaytracer(req)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}
	webLogger.Printf("Rendering %s at %dx%d, max depth %d\n", rt.Scene().Describe(), req.Width, req.Height, rt.MaxDepth())

	progressive := renderer.NewProgressiveRaytracer(rt, renderer.ProgressiveConfig{
		TileSize:  DefaultTileSize,
		MaxPasses: req.MaxPasses,
	}, webLogger)

	startTime := time.Now()
	passChan, tileChan, errChan := progressive.RenderProgressive(ctx, renderer.RenderOptions{TileUpdates: true})

	s.handleRenderingEvents(ctx, sseEventChan, passChan, tileChan, errChan, rt.Scene().PrimitiveCount(), req, startTime)
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request, req *RenderRequest) error {
	if err := s.parseCommonSceneParams(r, req); err != nil {
		return err
	}

	var err error
	if req.MaxPasses, err = parseIntParam(r.URL.Query(), "maxPasses", 3, 1, 6); err != nil {
		return err
	}

	if req.Width*req.Height > 1600*1200 {
		log.Printf("Render warning: %dx%d may render slowly on a single goroutine", req.Width, req.Height)
	}
	return nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// writeSSEEvents writes events until the channel is closed or the client disconnects
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}

			_, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data)
			if err != nil {
				// Client disconnected during write
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// streamConsoleMessages forwards console messages until ctx ends
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for {
		select {
		case consoleMsg := <-consoleChan:
			data, err := json.Marshal(consoleMsg)
			if err != nil {
				log.Printf("Error marshaling console message: %v", err)
				continue
			}

			select {
			case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
			case <-ctx.Done():
				return
			default:
				// Channel full, skip message to avoid blocking
			}

		case <-ctx.Done():
			return
		}
	}
}

// handleRenderingEvents drains the renderer's channels into SSE events
func (s *Server) handleRenderingEvents(ctx context.Context, sseEventChan chan SSEEvent,
	passChan <-chan renderer.PassResult, tileChan <-chan renderer.TileCompletionResult, errChan <-chan error,
	primitiveCount int, req *RenderRequest, startTime time.Time) {

	// errChan may close before buffered passes and tiles are read, so keep going until all three close
	for passChan != nil || tileChan != nil || errChan != nil {
		select {
		case passResult, ok := <-passChan:
			if !ok {
				passChan = nil
				continue
			}
			s.handlePassComplete(ctx, sseEventChan, passResult, req, primitiveCount, startTime)

		case tileResult, ok := <-tileChan:
			if !ok {
				tileChan = nil
				continue
			}
			s.handleTileUpdate(ctx, sseEventChan, tileResult)

		case err, ok := <-errChan:
			if !ok {
				errChan = nil
				continue
			}
			if err != nil {
				s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
				return
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: "Rendering completed"}:
	case <-ctx.Done():
	}
}

// handlePassComplete processes and sends pass completion events
func (s *Server) handlePassComplete(ctx context.Context, sseEventChan chan SSEEvent, passResult renderer.PassResult, req *RenderRequest, primitiveCount int, startTime time.Time) {
	stats := passResult.Stats
	passUpdate := PassUpdate{
		Event:          "passComplete",
		PassNumber:     passResult.PassNumber,
		TotalPasses:    req.MaxPasses,
		BlockSize:      passResult.BlockSize,
		ElapsedMs:      time.Since(startTime).Milliseconds(),
		TotalPixels:    stats.TotalPixels,
		PrimaryRays:    stats.PrimaryRays,
		ShadowRays:     stats.ShadowRays,
		ReflectionRays: stats.ReflectionRays,
		Hits:           stats.Hits,
		Misses:         stats.Misses,
		PrimitiveCount: primitiveCount,
	}

	data, err := json.Marshal(passUpdate)
	if err != nil {
		log.Printf("Error marshaling pass update: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "passComplete", Data: string(data)}:
	case <-ctx.Done():
	}
}

// handleTileUpdate processes and sends tile update events
func (s *Server) handleTileUpdate(ctx context.Context, sseEventChan chan SSEEvent, tileResult renderer.TileCompletionResult) {
	tileData, err := imageToBase64PNG(tileResult.TileImage)
	if err != nil {
		log.Printf("Error encoding tile image (%d, %d): %v", tileResult.TileX, tileResult.TileY, err)
		return
	}

	update := TileUpdate{
		TileX:       tileResult.TileX,
		TileY:       tileResult.TileY,
		ImageData:   tileData,
		PassNumber:  tileResult.PassNumber,
		TileNumber:  tileResult.TileNumber,
		TotalTiles:  tileResult.TotalTiles,
		TotalPasses: tileResult.TotalPasses,
	}

	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("Error marshaling tile update: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "tile", Data: string(data)}:
	case <-ctx.Done():
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	data, err := export.EncodePNG(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}
