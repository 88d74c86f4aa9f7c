// Package viewer holds the interactive state of the desktop viewer: the
// working scene, the light rig and the display toggles. It has no window
// dependencies; the front end polls its input into an Input each frame.
package viewer

import (
	"fmt"

	"github.com/df07/go-voxel-raytracer/pkg/renderer"
	"github.com/df07/go-voxel-raytracer/pkg/scene"
)

// Render resolutions toggled with F1
const (
	FullWidth  = 1280
	FullHeight = 720
	HalfWidth  = FullWidth / 2
	HalfHeight = FullHeight / 2
)

// Input is one frame of user input
type Input struct {
	Dragging bool    // left mouse button held
	MouseDX  float64 // mouse delta in pixels
	MouseDY  float64
	Wheel    float64 // wheel notches, positive zooms in

	Light scene.LightInput

	ResetCamera      bool
	ToggleResolution bool
	CycleWater       bool
	ToggleNight      bool
	ToggleFloor      bool
	ToggleHUD        bool
}

// Viewer is the state carried between frames
type Viewer struct {
	Scene   *scene.Scene // working copy; Snapshot clones it per frame
	Rig     scene.LightRig
	HalfRes bool
	ShowHUD bool

	stats      renderer.FrameStats
	brute      bool
	workerSize int
}

// New creates a viewer around s, starting at half resolution with the HUD
// on. workers and bruteForce are only shown in the HUD.
func New(s *scene.Scene, workers int, bruteForce bool) *Viewer {
	return &Viewer{
		Scene:      s,
		Rig:        scene.NewLightRig(s.Camera.Target, s.Light),
		HalfRes:    true,
		ShowHUD:    true,
		brute:      bruteForce,
		workerSize: workers,
	}
}

// Update applies one frame of input over dt seconds
func (v *Viewer) Update(in Input, dt float64) {
	if in.Dragging {
		v.Scene.Camera.Orbit(in.MouseDX, in.MouseDY)
	}
	if in.Wheel != 0 {
		v.Scene.Camera.Zoom(in.Wheel)
	}
	if in.ResetCamera {
		v.Scene.Camera.Reset()
	}

	v.Rig.Update(in.Light, dt)
	v.Scene.Light = v.Rig.Position()

	if in.ToggleResolution {
		v.HalfRes = !v.HalfRes
	}
	if in.CycleWater {
		v.Scene.Water = v.Scene.Water.Next()
	}
	if in.ToggleNight {
		v.Scene.Night = !v.Scene.Night
	}
	if in.ToggleFloor {
		v.Scene.ShowFloor = !v.Scene.ShowFloor
	}
	if in.ToggleHUD {
		v.ShowHUD = !v.ShowHUD
	}
}

// RenderSize returns the resolution of the next frame
func (v *Viewer) RenderSize() (int, int) {
	if v.HalfRes {
		return HalfWidth, HalfHeight
	}
	return FullWidth, FullHeight
}

// Snapshot returns the read-only scene for the next frame
func (v *Viewer) Snapshot() *scene.Scene {
	return v.Scene.Clone()
}

// SetStats records the stats of the last rendered frame
func (v *Viewer) SetStats(stats renderer.FrameStats) {
	v.stats = stats
}

// HUDLines returns the overlay text for the current state
func (v *Viewer) HUDLines(fps int32) []string {
	w, h := v.RenderSize()
	tracer := "grid"
	if v.brute {
		tracer = "brute force"
	}
	spin := "off"
	if v.Rig.Spin {
		spin = "on"
	}
	sky := "day"
	if v.Scene.Night {
		sky = "night"
	}
	light := v.Scene.Light

	return []string{
		fmt.Sprintf("%s - %d blocks", v.Scene.Name, v.Scene.GetBlockCount()),
		fmt.Sprintf("FPS %d | render %dx%d in %.1f ms | %d workers | %s",
			fps, w, h, float64(v.stats.Duration.Microseconds())/1000.0, v.workerSize, tracer),
		fmt.Sprintf("Light (%.2f, %.2f, %.2f) spin %s", light.X, light.Y, light.Z, spin),
		fmt.Sprintf("Water %s | Sky %s | Floor %t", v.Scene.Water, sky, v.Scene.ShowFloor),
		"Drag: orbit | Wheel: zoom | R: reset camera",
		"J/L I/K U/O: light | P: spin | T: reset light",
		"F1: resolution | F2: water | F3: night | F4: floor | H: HUD",
	}
}
