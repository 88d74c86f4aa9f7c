package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-voxel-raytracer/pkg/block"
	"github.com/df07/go-voxel-raytracer/pkg/core"
	"github.com/df07/go-voxel-raytracer/pkg/geometry"
	"github.com/df07/go-voxel-raytracer/pkg/material"
	"github.com/df07/go-voxel-raytracer/pkg/scene"
	"github.com/df07/go-voxel-raytracer/pkg/world"
)

// InspectResponse represents the JSON response for surface inspection
type InspectResponse struct {
	Hit        bool                   `json:"hit"`
	Surface    string                 `json:"surface"` // "block", "floor" or "sky"
	Kind       string                 `json:"kind,omitempty"`
	Face       string                 `json:"face,omitempty"`
	Point      [3]float64             `json:"point"`
	Normal     [3]float64             `json:"normal"`
	Distance   float64                `json:"distance"`
	Shadowed   bool                   `json:"shadowed"`
	Color      string                 `json:"color"` // displayed pixel color
	Properties map[string]interface{} `json:"properties"`
}

// inspectPixel casts the primary ray through the centre of pixel (x, y)
// and describes the first visible surface
func inspectPixel(sc *scene.Scene, width, height, x, y int) InspectResponse {
	cam := sc.Camera
	cam.Aspect = float64(width) / float64(height)
	basis := geometry.NewCameraBasis(cam)
	ray := basis.PrimaryRay(x, y, width, height)

	grid := world.BuildGrid(sc.Blocks)
	shader := sc.Shader(grid)

	resp := InspectResponse{
		Surface:    "sky",
		Color:      hexColor(shader.Primary(ray)),
		Properties: make(map[string]interface{}),
	}

	hit, ok := shader.Closest(ray)
	if !ok {
		resp.Properties["night"] = sc.Night
		return resp
	}

	resp.Hit = true
	resp.Point = [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z}
	resp.Normal = [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z}
	resp.Distance = hit.T
	resp.Shadowed = shader.InShadow(hit.Point, hit.Normal)

	if hit.Kind == block.None {
		resp.Surface = "floor"
		resp.Properties["albedo"] = hexColor(material.GammaEncode(sc.FloorColor))
		return resp
	}

	resp.Surface = "block"
	resp.Kind = hit.Kind.String()
	resp.Face = hit.Face.String()
	resp.Properties["uv"] = hit.UV
	if slot, ok := material.SlotFor(hit.Kind, hit.Face); ok {
		resp.Properties["texture"] = slot.String()
	}
	texel, alpha := sc.Materials.SampleBlock(hit.UV, hit.Face, hit.Kind)
	resp.Properties["texel"] = hexColor(material.GammaEncode(texel))
	resp.Properties["alpha"] = alpha
	return resp
}

// hexColor formats a display-space color as #rrggbb
func hexColor(c core.Vec3) string {
	return fmt.Sprintf("#%02x%02x%02x",
		int(core.Clamp01(c.X)*255), int(core.Clamp01(c.Y)*255), int(core.Clamp01(c.Z)*255))
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := parseFrameRequest(r.URL.Query())
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	sc, err := s.sceneFor(req)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(inspectPixel(sc, req.Width, req.Height, pixelX, pixelY))
}
