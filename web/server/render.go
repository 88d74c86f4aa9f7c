package server

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/df07/go-voxel-raytracer/pkg/core"
	"github.com/df07/go-voxel-raytracer/pkg/geometry"
	"github.com/df07/go-voxel-raytracer/pkg/scene"
	"github.com/df07/go-voxel-raytracer/pkg/shading"
)

// DefaultScene is rendered when a request names none
const DefaultScene = "layers"

// FrameRequest describes one view of a scene. Nil fields keep the scene's
// defaults.
type FrameRequest struct {
	Scene  string
	Width  int
	Height int
	Yaw    *float64
	Pitch  *float64
	Radius *float64
	Water  *shading.WaterMode
	Night  *bool
	Floor  *bool
	Light  *core.Vec3
}

// parseFrameRequest parses the scene and view parameters shared by the
// render, inspect and stream endpoints
func parseFrameRequest(values url.Values) (*FrameRequest, error) {
	req := &FrameRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = DefaultScene
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 640, MinFrameSize, MaxFrameSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 360, MinFrameSize, MaxFrameSize); err != nil {
		return nil, err
	}

	if req.Yaw, err = optionalFloat(values, "yaw", -1000, 1000); err != nil {
		return nil, err
	}
	if req.Pitch, err = optionalFloat(values, "pitch", -geometry.MaxPitch, geometry.MaxPitch); err != nil {
		return nil, err
	}
	if req.Radius, err = optionalFloat(values, "radius", 0.5, 100); err != nil {
		return nil, err
	}

	if v := values.Get("water"); v != "" {
		mode, err := shading.ParseWaterMode(v)
		if err != nil {
			return nil, err
		}
		req.Water = &mode
	}
	if values.Has("night") {
		night, err := parseBoolParam(values, "night", false)
		if err != nil {
			return nil, err
		}
		req.Night = &night
	}
	if values.Has("floor") {
		floor, err := parseBoolParam(values, "floor", true)
		if err != nil {
			return nil, err
		}
		req.Floor = &floor
	}
	if v := values.Get("light"); v != "" {
		light, err := parseVec3(v)
		if err != nil {
			return nil, fmt.Errorf("invalid light: %w", err)
		}
		req.Light = &light
	}

	return req, nil
}

// optionalFloat parses key only when present
func optionalFloat(values url.Values, key string, min, max float64) (*float64, error) {
	if !values.Has(key) {
		return nil, nil
	}
	v, err := parseFloatParam(values, key, 0, min, max)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// parseVec3 parses "x,y,z"
func parseVec3(s string) (core.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var c [3]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return core.Vec3{}, fmt.Errorf("invalid component %q", part)
		}
		c[i] = f
	}
	return core.NewVec3(c[0], c[1], c[2]), nil
}

// apply writes the request's overrides into sc
func (req *FrameRequest) apply(sc *scene.Scene) {
	if req.Yaw != nil {
		sc.Camera.Yaw = *req.Yaw
	}
	if req.Pitch != nil {
		sc.Camera.Pitch = *req.Pitch
	}
	if req.Radius != nil {
		sc.Camera.Radius = *req.Radius
	}
	if req.Water != nil {
		sc.Water = *req.Water
	}
	if req.Night != nil {
		sc.Night = *req.Night
	}
	if req.Floor != nil {
		sc.ShowFloor = *req.Floor
	}
	if req.Light != nil {
		sc.Light = *req.Light
	}
}

// sceneFor loads the requested scene with the request applied
func (s *Server) sceneFor(req *FrameRequest) (*scene.Scene, error) {
	sc, err := s.loadScene(req.Scene, s.logger)
	if err != nil {
		return nil, err
	}
	req.apply(sc)
	return sc, nil
}

// handleRender renders one frame and returns it as a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseFrameRequest(r.URL.Query())
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sc, err := s.sceneFor(req)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	img, stats, err := s.renderer.Render(sc, req.Width, req.Height)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}

	data, err := encodePNG(img)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.Header().Set("X-Frame", strconv.Itoa(stats.Frame))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// encodePNG encodes img with the fastest compression; frames are
// short-lived
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
