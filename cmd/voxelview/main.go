package main

import (
	"context"
	"flag"
	"image/color"
	"log"
	"os"
	"runtime"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/df07/go-voxel-raytracer/pkg/config"
	"github.com/df07/go-voxel-raytracer/pkg/core"
	"github.com/df07/go-voxel-raytracer/pkg/loaders"
	"github.com/df07/go-voxel-raytracer/pkg/renderer"
	"github.com/df07/go-voxel-raytracer/pkg/scene"
	"github.com/df07/go-voxel-raytracer/pkg/viewer"
)

const (
	hudFontSize = 18
	hudLineGap  = 2
)

func main() {
	// raylib must run on the main OS thread
	runtime.LockOSThread()

	cfg := config.DefaultConfig()
	config.BindFlags(flag.CommandLine, cfg)
	configPath := flag.String("config", "", "JSON config file (flags override its values)")
	flag.Parse()

	if *configPath != "" {
		fromFile, err := config.Load(*configPath)
		if err != nil {
			log.Printf("Error loading config: %v", err)
			os.Exit(1)
		}
		config.Merge(cfg, fromFile, config.ExplicitFlags(flag.CommandLine))
	}

	logger := core.NewDefaultLogger()
	sc, err := loadScene(cfg, logger)
	if err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}

	r := renderer.NewRenderer(renderer.Options{Workers: cfg.Workers, BruteForce: cfg.BruteForce}, logger)
	defer r.Close()

	run(viewer.New(sc, r.Workers(), cfg.BruteForce), r)
}

func loadScene(cfg *config.Config, logger core.Logger) (*scene.Scene, error) {
	mats, err := loaders.ResolveMaterials(context.Background(), cfg.Assets, cfg.AssetCache, logger)
	if err != nil {
		return nil, err
	}
	sc, err := scene.Load(cfg.Scene, cfg.WorldsDir, mats, logger)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// run is the window loop: poll input, render a snapshot, upload, draw
func run(v *viewer.Viewer, r *renderer.Renderer) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(viewer.FullWidth, viewer.FullHeight, "Voxel Raytracer - CPU ray tracing")
	defer rl.CloseWindow()
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.SetTargetFPS(60)

	texW, texH := v.RenderSize()
	tex := newTargetTexture(texW, texH)
	defer func() { rl.UnloadTexture(tex) }()

	for !rl.WindowShouldClose() {
		v.Update(pollInput(), float64(rl.GetFrameTime()))

		if w, h := v.RenderSize(); w != texW || h != texH {
			rl.UnloadTexture(tex)
			texW, texH = w, h
			tex = newTargetTexture(texW, texH)
		}

		img, stats, err := r.Render(v.Snapshot(), texW, texH)
		if err != nil {
			log.Printf("Render error: %v", err)
		} else {
			v.SetStats(stats)
			pixels := unsafe.Slice((*color.RGBA)(unsafe.Pointer(&img.Pix[0])), texW*texH)
			rl.UpdateTexture(tex, pixels)
		}

		sw, sh := rl.GetScreenWidth(), rl.GetScreenHeight()
		scale := min(float32(sw)/float32(texW), float32(sh)/float32(texH))

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)
		rl.DrawTextureEx(tex, rl.Vector2{X: 0, Y: 0}, 0, scale, rl.White)
		if v.ShowHUD {
			drawHUD(v.HUDLines(rl.GetFPS()))
		}
		rl.EndDrawing()
	}
}

func newTargetTexture(w, h int) rl.Texture2D {
	img := rl.GenImageColor(w, h, rl.Black)
	defer rl.UnloadImage(img)
	return rl.LoadTextureFromImage(img)
}

// pollInput reads one frame of keyboard and mouse state
func pollInput() viewer.Input {
	in := viewer.Input{
		Dragging:         rl.IsMouseButtonDown(rl.MouseLeftButton),
		Wheel:            float64(rl.GetMouseWheelMove()),
		ResetCamera:      rl.IsKeyPressed(rl.KeyR),
		ToggleResolution: rl.IsKeyPressed(rl.KeyF1),
		CycleWater:       rl.IsKeyPressed(rl.KeyF2),
		ToggleNight:      rl.IsKeyPressed(rl.KeyF3),
		ToggleFloor:      rl.IsKeyPressed(rl.KeyF4),
		ToggleHUD:        rl.IsKeyPressed(rl.KeyH),
	}
	if in.Dragging {
		delta := rl.GetMouseDelta()
		in.MouseDX = float64(delta.X)
		in.MouseDY = float64(delta.Y)
	}

	in.Light = scene.LightInput{
		Yaw:        keyAxis(rl.KeyJ, rl.KeyL),
		Pitch:      keyAxis(rl.KeyK, rl.KeyI),
		Radius:     keyAxis(rl.KeyU, rl.KeyO),
		ToggleSpin: rl.IsKeyPressed(rl.KeyP),
		Reset:      rl.IsKeyPressed(rl.KeyT),
	}
	return in
}

// keyAxis returns -1 while neg is held, +1 while pos is held
func keyAxis(neg, pos int32) float64 {
	a := 0.0
	if rl.IsKeyDown(neg) {
		a--
	}
	if rl.IsKeyDown(pos) {
		a++
	}
	return a
}

func drawHUD(lines []string) {
	x, y := int32(12), int32(12)
	for _, line := range lines {
		rl.DrawText(line, x+1, y+1, hudFontSize, rl.Black)
		rl.DrawText(line, x, y, hudFontSize, rl.LightGray)
		y += hudFontSize + hudLineGap
	}
}
