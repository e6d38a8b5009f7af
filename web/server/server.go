package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-softraycast/pkg/loaders"
	"github.com/df07/go-softraycast/pkg/renderer"
	"github.com/df07/go-softraycast/pkg/scene"
)

// DefaultTileSize is the tile edge used for progressive web renders
const DefaultTileSize = 64

// Server handles web requests for the ray tracer
type Server struct {
	port      int
	scenesDir string
}

// NewServer creates a new web server. Scene files are looked up in scenesDir.
func NewServer(port int, scenesDir string) *Server {
	return &Server{port: port, scenesDir: scenesDir}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene     string              `json:"scene"`     // Built-in name or "file:<name>"
	Width     int                 `json:"width"`     // Image width
	Height    int                 `json:"height"`    // Image height
	MaxDepth  int                 `json:"maxDepth"`  // Reflection bounce limit, -1 = scene default
	MaxPasses int                 `json:"maxPasses"` // Coarse-to-fine passes
	Camera    *scene.CameraConfig `json:"camera"`    // Camera override, nil = scene camera
}

// Handler returns the HTTP routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists built-in and file scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// parseCommonSceneParams parses the parameters shared by render and inspect requests
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 16, 2000); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", 400, 16, 2000); err != nil {
		return err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", -1, -1, 50); err != nil {
		return err
	}

	// Camera angles override the scene camera only when at least one is given
	if query.Has("yaw") || query.Has("pitch") || query.Has("roll") {
		camera := scene.CameraConfig{}
		if camera.Yaw, err = parseFloatParam(query, "yaw", 0, -360, 360); err != nil {
			return err
		}
		if camera.Pitch, err = parseFloatParam(query, "pitch", 0, -90, 90); err != nil {
			return err
		}
		if camera.Roll, err = parseFloatParam(query, "roll", 0, -360, 360); err != nil {
			return err
		}
		req.Camera = &camera
	}

	return nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene resolves a built-in scene name or a "file:<name>" scene from the scenes directory
func (s *Server) createScene(name string) (*scene.Scene, error) {
	if fileName, ok := strings.CutPrefix(name, "file:"); ok {
		if fileName == "" || filepath.Base(fileName) != fileName {
			return nil, fmt.Errorf("invalid scene file name %q", fileName)
		}
		return loaders.LoadScene(filepath.Join(s.scenesDir, fileName+".json"))
	}

	sceneObj, ok := scene.Builtin(name)
	if !ok {
		return nil, fmt.Errorf("unknown scene: %s", name)
	}
	return sceneObj, nil
}

// newRaytracer builds a raytracer for the request, applying depth and camera overrides
func (s *Server) newRaytracer(req *RenderRequest) (*renderer.Raytracer, error) {
	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		return nil, err
	}

	rt, err := renderer.NewRaytracer(sceneObj, renderer.NewViewConfig(req.Width, req.Height))
	if err != nil {
		return nil, err
	}
	if req.MaxDepth >= 0 {
		rt.SetMaxDepth(req.MaxDepth)
	}
	if req.Camera != nil {
		camera := *req.Camera
		camera.Position = sceneObj.Camera.Position
		rt.SetCamera(camera)
	}
	return rt, nil
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
