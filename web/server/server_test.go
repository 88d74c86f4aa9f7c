package server

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/df07/go-voxel-raytracer/pkg/config"
	"github.com/df07/go-voxel-raytracer/pkg/core"
	"github.com/df07/go-voxel-raytracer/pkg/material"
	"github.com/df07/go-voxel-raytracer/pkg/renderer"
	"github.com/df07/go-voxel-raytracer/pkg/scene"
	"github.com/df07/go-voxel-raytracer/pkg/shading"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Workers = 2
	cfg.WorldsDir = t.TempDir()

	srv := NewServer(cfg, material.NewProceduralMaterials(), core.NopLogger{})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
	})
	return srv, ts
}

func getJSON(t *testing.T, rawURL string, wantStatus int, v interface{}) {
	t.Helper()
	resp, err := http.Get(rawURL)
	if err != nil {
		t.Fatalf("GET %s failed: %v", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s: expected status %d, got %d", rawURL, wantStatus, resp.StatusCode)
	}
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("GET %s: failed to decode JSON: %v", rawURL, err)
		}
	}
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)
	var body map[string]string
	getJSON(t, ts.URL+"/api/health", http.StatusOK, &body)
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
}

func TestScenesListsBuiltins(t *testing.T) {
	_, ts := newTestServer(t)
	var resp scene.ScenesResponse
	getJSON(t, ts.URL+"/api/scenes", http.StatusOK, &resp)

	ids := make(map[string]bool)
	for _, g := range resp.Groups {
		for _, info := range g.Scenes {
			ids[info.ID] = true
		}
	}
	for _, id := range []string{"cube", "layers"} {
		if !ids[id] {
			t.Errorf("Expected scene %q in listing, got %v", id, ids)
		}
	}
}

func TestSceneConfig(t *testing.T) {
	_, ts := newTestServer(t)

	var body struct {
		Scene    string `json:"scene"`
		Blocks   int    `json:"blocks"`
		Defaults struct {
			Water string     `json:"water"`
			Light [3]float64 `json:"light"`
		} `json:"defaults"`
	}
	getJSON(t, ts.URL+"/api/scene-config?scene=cube", http.StatusOK, &body)
	if body.Blocks != 1 {
		t.Errorf("Expected 1 block, got %d", body.Blocks)
	}
	if body.Defaults.Water != "sky" {
		t.Errorf("Expected default water 'sky', got %q", body.Defaults.Water)
	}
	if body.Defaults.Light != [3]float64{3, 4, 2} {
		t.Errorf("Expected light (3,4,2), got %v", body.Defaults.Light)
	}

	getJSON(t, ts.URL+"/api/scene-config?scene=bogus", http.StatusBadRequest, nil)
}

func TestRenderMatchesRenderer(t *testing.T) {
	_, ts := newTestServer(t)

	q := url.Values{}
	q.Set("scene", "cube")
	q.Set("width", "40")
	q.Set("height", "24")
	q.Set("yaw", "1")
	q.Set("water", "off")
	q.Set("night", "true")

	resp, err := http.Get(ts.URL + "/api/render?" + q.Encode())
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}

	got, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}

	ref := scene.NewCubeScene(material.NewProceduralMaterials())
	ref.Camera.Yaw = 1
	ref.Water = shading.WaterOff
	ref.Night = true
	want := renderer.Render(ref, 40, 24)

	if got.Bounds() != want.Bounds() {
		t.Fatalf("Expected bounds %v, got %v", want.Bounds(), got.Bounds())
	}
	for y := 0; y < 24; y++ {
		for x := 0; x < 40; x++ {
			r1, g1, b1, _ := got.At(x, y).RGBA()
			r2, g2, b2, _ := want.At(x, y).RGBA()
			if r1 != r2 || g1 != g2 || b1 != b2 {
				t.Fatalf("Pixel (%d,%d) differs from the reference render", x, y)
			}
		}
	}
}

func TestRenderRejectsBadRequests(t *testing.T) {
	_, ts := newTestServer(t)
	tests := []string{
		"width=5",
		"height=99999",
		"pitch=3",
		"water=lava",
		"night=maybe",
		"light=1,2",
		"scene=nonexistent",
		"scene=world:missing",
	}
	for _, query := range tests {
		getJSON(t, ts.URL+"/api/render?"+query, http.StatusBadRequest, nil)
	}
}

func TestInspect(t *testing.T) {
	_, ts := newTestServer(t)

	// Looking almost straight down onto the grass block
	var hit InspectResponse
	getJSON(t, ts.URL+"/api/inspect?scene=cube&width=32&height=32&pitch=1.4&x=16&y=16", http.StatusOK, &hit)
	if !hit.Hit || hit.Surface != "block" {
		t.Fatalf("Expected a block hit, got %+v", hit)
	}
	if hit.Kind != "grass" || hit.Face != "+y" {
		t.Errorf("Expected grass +y, got %s %s", hit.Kind, hit.Face)
	}
	if hit.Properties["texture"] != "grass_top" {
		t.Errorf("Expected grass_top texture, got %v", hit.Properties["texture"])
	}

	// The top-left corner looks over the block into the sky
	var sky InspectResponse
	getJSON(t, ts.URL+"/api/inspect?scene=cube&width=32&height=32&pitch=0&floor=false&x=0&y=0", http.StatusOK, &sky)
	if sky.Hit || sky.Surface != "sky" {
		t.Errorf("Expected a sky miss, got %+v", sky)
	}

	getJSON(t, ts.URL+"/api/inspect?scene=cube&width=32&height=32&x=32&y=0", http.StatusBadRequest, nil)
	getJSON(t, ts.URL+"/api/inspect?scene=cube&width=32&height=32&x=a&y=0", http.StatusBadRequest, nil)
}

func TestLoadSceneReturnsPrivateCopies(t *testing.T) {
	srv, _ := newTestServer(t)

	a, err := srv.loadScene("cube", core.NopLogger{})
	if err != nil {
		t.Fatalf("loadScene failed: %v", err)
	}
	a.Night = true
	a.Blocks[0].Center = core.NewVec3(5, 5, 5)

	b, err := srv.loadScene("cube", core.NopLogger{})
	if err != nil {
		t.Fatalf("loadScene failed: %v", err)
	}
	if b.Night || b.Blocks[0].Center != core.NewVec3(0, 0.5, 0) {
		t.Error("Changes to one loaded scene leaked into the cached copy")
	}
}

func TestParseFrameRequest(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr bool
		check   func(t *testing.T, req *FrameRequest)
	}{
		{"defaults", "", false, func(t *testing.T, req *FrameRequest) {
			if req.Scene != DefaultScene || req.Width != 640 || req.Height != 360 {
				t.Errorf("Unexpected defaults: %+v", req)
			}
			if req.Yaw != nil || req.Water != nil || req.Night != nil || req.Light != nil {
				t.Errorf("Expected no overrides: %+v", req)
			}
		}},
		{"overrides", "yaw=0.5&radius=9&water=reflect&floor=false&light=1,2,3", false, func(t *testing.T, req *FrameRequest) {
			if req.Yaw == nil || *req.Yaw != 0.5 || req.Radius == nil || *req.Radius != 9 {
				t.Errorf("Camera overrides not parsed: %+v", req)
			}
			if req.Water == nil || *req.Water != shading.WaterReflectOnce {
				t.Errorf("Expected reflect water, got %v", req.Water)
			}
			if req.Floor == nil || *req.Floor {
				t.Errorf("Expected floor=false, got %v", req.Floor)
			}
			if req.Light == nil || *req.Light != core.NewVec3(1, 2, 3) {
				t.Errorf("Expected light (1,2,3), got %v", req.Light)
			}
		}},
		{"bad radius", "radius=0", true, nil},
		{"nan light", "light=NaN,0,0", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("Bad query: %v", err)
			}
			req, err := parseFrameRequest(values)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFrameRequest() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, req)
			}
		})
	}
}
