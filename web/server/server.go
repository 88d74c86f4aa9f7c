package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/df07/go-voxel-raytracer/pkg/config"
	"github.com/df07/go-voxel-raytracer/pkg/core"
	"github.com/df07/go-voxel-raytracer/pkg/material"
	"github.com/df07/go-voxel-raytracer/pkg/renderer"
	"github.com/df07/go-voxel-raytracer/pkg/scene"
)

// Frame size limits accepted by the API
const (
	MinFrameSize = 16
	MaxFrameSize = 2000
	MaxStreamFPS = 30
)

// Server serves single frames and live views of the voxel scenes
type Server struct {
	port      int
	worldsDir string
	staticDir string
	materials *material.Materials
	renderer  *renderer.Renderer
	logger    core.Logger

	mu     sync.Mutex
	scenes map[string]*scene.Scene // loaded scenes by ID, never mutated
}

// NewServer creates a web server rendering with mats. The shared renderer
// uses cfg.Workers and cfg.BruteForce.
func NewServer(cfg *config.Config, mats *material.Materials, logger core.Logger) *Server {
	if logger == nil {
		logger = core.NewDefaultLogger()
	}
	return &Server{
		port:      cfg.Port,
		worldsDir: cfg.WorldsDir,
		staticDir: "static/",
		materials: mats,
		renderer: renderer.NewRenderer(renderer.Options{
			Workers:    cfg.Workers,
			BruteForce: cfg.BruteForce,
		}, logger),
		logger: logger,
		scenes: make(map[string]*scene.Scene),
	}
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))

	// API endpoints
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/stream", s.handleStream)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// Close stops the render pool
func (s *Server) Close() {
	s.renderer.Close()
}

// loadScene returns a private copy of the scene with the given ID,
// loading it on first use
func (s *Server) loadScene(id string, logger core.Logger) (*scene.Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if base, ok := s.scenes[id]; ok {
		return base.Clone(), nil
	}

	base, err := scene.Load(id, s.worldsDir, s.materials, logger)
	if err != nil {
		return nil, err
	}
	s.scenes[id] = base
	return base.Clone(), nil
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and the worlds on disk
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	response, err := scene.ListAllScenes(s.worldsDir)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// handleSceneConfig returns the default view of a scene and the request limits
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	sceneID := r.URL.Query().Get("scene")
	if sceneID == "" {
		sceneID = DefaultScene
	}

	sc, err := s.loadScene(sceneID, s.logger)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	response := map[string]interface{}{
		"scene":  sceneID,
		"name":   sc.Name,
		"blocks": sc.GetBlockCount(),
		"defaults": map[string]interface{}{
			"yaw":    sc.Camera.Yaw,
			"pitch":  sc.Camera.Pitch,
			"radius": sc.Camera.Radius,
			"fov":    sc.Camera.FovY,
			"light":  [3]float64{sc.Light.X, sc.Light.Y, sc.Light.Z},
			"water":  sc.Water.String(),
			"night":  sc.Night,
			"floor":  sc.ShowFloor,
		},
		"limits": map[string]interface{}{
			"width":  map[string]int{"min": MinFrameSize, "max": MaxFrameSize},
			"height": map[string]int{"min": MinFrameSize, "max": MaxFrameSize},
			"radius": map[string]float64{"min": sc.Camera.MinRadius, "max": sc.Camera.MaxRadius},
			"fps":    map[string]int{"min": 1, "max": MaxStreamFPS},
		},
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// writeJSONError writes {"error": message} with the given status
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
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
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseBoolParam parses a boolean parameter from URL query
func parseBoolParam(values url.Values, key string, defaultValue bool) (bool, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
