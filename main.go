package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-voxel-raytracer/pkg/config"
	"github.com/df07/go-voxel-raytracer/pkg/core"
	"github.com/df07/go-voxel-raytracer/pkg/loaders"
	"github.com/df07/go-voxel-raytracer/pkg/renderer"
	"github.com/df07/go-voxel-raytracer/pkg/scene"
)

func main() {
	cfg := config.DefaultConfig()
	config.BindFlags(flag.CommandLine, cfg)
	configPath := flag.String("config", "", "JSON config file (flags override its values)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if *configPath != "" {
		fromFile, err := config.Load(*configPath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		config.Merge(cfg, fromFile, config.ExplicitFlags(flag.CommandLine))
	}

	if err := run(context.Background(), cfg, core.NewDefaultLogger()); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Voxel Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.BuiltinScenes() {
		fmt.Printf("  %-8s - %s\n", info.ID, info.Description)
	}
	fmt.Println("  world:<name> - Layered world from the worlds directory")
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
}

// run renders one frame with cfg and writes it as a PNG
func run(ctx context.Context, cfg *config.Config, logger core.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s, err := createScene(ctx, cfg, logger)
	if err != nil {
		return err
	}
	logger.Printf("Rendering %s: %d blocks at %dx%d\n", s.Name, s.GetBlockCount(), cfg.Width, cfg.Height)

	startTime := time.Now()
	img, err := renderer.RenderParallelWithOptions(s, cfg.Width, cfg.Height, renderer.Options{
		Workers:    cfg.Workers,
		BruteForce: cfg.BruteForce,
	})
	if err != nil {
		return err
	}
	logger.Printf("Render completed in %v (average luminance %.3f)\n",
		time.Since(startTime), renderer.CalculateAverageLuminance(img))

	filename, err := savePNG(cfg.OutputDir, s.Name, img)
	if err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", filename)
	return nil
}

// createScene loads materials and the scene named by cfg, then applies the
// config's overrides
func createScene(ctx context.Context, cfg *config.Config, logger core.Logger) (*scene.Scene, error) {
	mats, err := loaders.ResolveMaterials(ctx, cfg.Assets, cfg.AssetCache, logger)
	if err != nil {
		return nil, err
	}

	s, err := scene.Load(cfg.Scene, cfg.WorldsDir, mats, logger)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(s); err != nil {
		return nil, err
	}
	return s, nil
}

// savePNG writes img to outputDir/<scene>/render_<timestamp>.png
func savePNG(outputDir, sceneName string, img image.Image) (string, error) {
	dir := filepath.Join(outputDir, strings.ReplaceAll(sceneName, ":", "_"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(dir, fmt.Sprintf("render_%s.png", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("error saving PNG: %w", err)
	}
	return filename, nil
}
