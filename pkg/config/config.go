package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-voxel-raytracer/pkg/core"
	"github.com/df07/go-voxel-raytracer/pkg/scene"
	"github.com/df07/go-voxel-raytracer/pkg/shading"
)

// Config holds the settings shared by the CLI, the web server and the viewer.
type Config struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Workers    int    `json:"workers"`     // 0 = GOMAXPROCS
	Scene      string `json:"scene"`       // "cube", "layers" or "world:<name>"
	WorldsDir  string `json:"worlds_dir"`  // directory of layered worlds
	Assets     string `json:"assets"`      // texture directory or go-getter source; "" = procedural
	AssetCache string `json:"asset_cache"` // download destination for remote assets
	Water      string `json:"water"`       // "off", "sky", "reflect"; "" keeps the scene default
	Night      bool   `json:"night"`
	Floor      bool   `json:"floor"`
	BruteForce bool   `json:"brute_force"` // trace every block instead of the grid
	OutputDir  string `json:"output_dir"`
	Port       int    `json:"port"`

	// Camera and light overrides; nil keeps the scene default
	Camera CameraConfig `json:"camera"`
	Light  []float64    `json:"light,omitempty"` // x, y, z
}

// CameraConfig overrides parts of the scene's orbit camera
type CameraConfig struct {
	Yaw    *float64 `json:"yaw,omitempty"`    // radians
	Pitch  *float64 `json:"pitch,omitempty"`  // radians
	Radius *float64 `json:"radius,omitempty"` // world units
	FovY   *float64 `json:"fov,omitempty"`    // degrees
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Width:      640,
		Height:     360,
		Scene:      "layers",
		WorldsDir:  "worlds",
		AssetCache: ".assets",
		Floor:      true,
		OutputDir:  "output",
		Port:       8080,
	}
}

// Load reads a JSON config file over the defaults. A missing file is not
// an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as indented JSON
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks values that would make a render fail
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid resolution %dx%d", c.Width, c.Height)
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid worker count %d", c.Workers)
	}
	if c.Water != "" {
		if _, err := shading.ParseWaterMode(c.Water); err != nil {
			return err
		}
	}
	if c.Light != nil && len(c.Light) != 3 {
		return fmt.Errorf("light needs 3 components, got %d", len(c.Light))
	}
	return nil
}

// Apply writes the scene-level settings into s
func (c *Config) Apply(s *scene.Scene) error {
	if c.Water != "" {
		mode, err := shading.ParseWaterMode(c.Water)
		if err != nil {
			return err
		}
		s.Water = mode
	}
	s.Night = c.Night
	s.ShowFloor = c.Floor

	if c.Camera.Yaw != nil {
		s.Camera.Yaw = *c.Camera.Yaw
	}
	if c.Camera.Pitch != nil {
		s.Camera.Pitch = *c.Camera.Pitch
	}
	if c.Camera.Radius != nil {
		s.Camera.Radius = *c.Camera.Radius
	}
	if c.Camera.FovY != nil {
		s.Camera.FovY = *c.Camera.FovY
	}

	if c.Light != nil {
		if len(c.Light) != 3 {
			return fmt.Errorf("light needs 3 components, got %d", len(c.Light))
		}
		s.Light = core.NewVec3(c.Light[0], c.Light[1], c.Light[2])
	}
	return nil
}

// BindFlags registers a flag for every field of cfg on set. Flag defaults
// are the current values of cfg.
func BindFlags(set *flag.FlagSet, cfg *Config) {
	set.IntVar(&cfg.Width, "width", cfg.Width, "Image width in pixels")
	set.IntVar(&cfg.Height, "height", cfg.Height, "Image height in pixels")
	set.IntVar(&cfg.Workers, "workers", cfg.Workers, "Render workers (0 = GOMAXPROCS)")
	set.StringVar(&cfg.Scene, "scene", cfg.Scene, "Scene: 'cube', 'layers' or 'world:<name>'")
	set.StringVar(&cfg.WorldsDir, "worlds", cfg.WorldsDir, "Directory of layered worlds")
	set.StringVar(&cfg.Assets, "assets", cfg.Assets, "Texture directory or remote source (empty = procedural)")
	set.StringVar(&cfg.AssetCache, "asset-cache", cfg.AssetCache, "Download directory for remote assets")
	set.StringVar(&cfg.Water, "water", cfg.Water, "Water mode: 'off', 'sky' or 'reflect'")
	set.BoolVar(&cfg.Night, "night", cfg.Night, "Render the night sky")
	set.BoolVar(&cfg.Floor, "floor", cfg.Floor, "Show the ground plane")
	set.BoolVar(&cfg.BruteForce, "brute", cfg.BruteForce, "Trace every block instead of the voxel grid")
	set.StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "Output directory")
	set.IntVar(&cfg.Port, "port", cfg.Port, "Port to serve on")
	set.Var(optionalFloat{&cfg.Camera.Yaw}, "yaw", "Camera yaw in radians")
	set.Var(optionalFloat{&cfg.Camera.Pitch}, "pitch", "Camera pitch in radians")
	set.Var(optionalFloat{&cfg.Camera.Radius}, "radius", "Camera distance from the target")
	set.Var(optionalFloat{&cfg.Camera.FovY}, "fov", "Vertical field of view in degrees")
	set.Var(vecValue{&cfg.Light}, "light", "Light position as x,y,z")
}

// ExplicitFlags returns the names of the flags set on the command line
func ExplicitFlags(set *flag.FlagSet) map[string]bool {
	explicit := make(map[string]bool)
	set.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})
	return explicit
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["width"] {
		cfg.Width = fromFile.Width
	}
	if !explicitFlags["height"] {
		cfg.Height = fromFile.Height
	}
	if !explicitFlags["workers"] {
		cfg.Workers = fromFile.Workers
	}
	if !explicitFlags["scene"] {
		cfg.Scene = fromFile.Scene
	}
	if !explicitFlags["worlds"] {
		cfg.WorldsDir = fromFile.WorldsDir
	}
	if !explicitFlags["assets"] {
		cfg.Assets = fromFile.Assets
	}
	if !explicitFlags["asset-cache"] {
		cfg.AssetCache = fromFile.AssetCache
	}
	if !explicitFlags["water"] {
		cfg.Water = fromFile.Water
	}
	if !explicitFlags["night"] {
		cfg.Night = fromFile.Night
	}
	if !explicitFlags["floor"] {
		cfg.Floor = fromFile.Floor
	}
	if !explicitFlags["brute"] {
		cfg.BruteForce = fromFile.BruteForce
	}
	if !explicitFlags["output"] {
		cfg.OutputDir = fromFile.OutputDir
	}
	if !explicitFlags["port"] {
		cfg.Port = fromFile.Port
	}
	if !explicitFlags["yaw"] {
		cfg.Camera.Yaw = fromFile.Camera.Yaw
	}
	if !explicitFlags["pitch"] {
		cfg.Camera.Pitch = fromFile.Camera.Pitch
	}
	if !explicitFlags["radius"] {
		cfg.Camera.Radius = fromFile.Camera.Radius
	}
	if !explicitFlags["fov"] {
		cfg.Camera.FovY = fromFile.Camera.FovY
	}
	if !explicitFlags["light"] {
		cfg.Light = fromFile.Light
	}
}

// optionalFloat is a flag.Value that leaves the target nil until set
type optionalFloat struct {
	p **float64
}

func (o optionalFloat) String() string {
	if o.p == nil || *o.p == nil {
		return ""
	}
	return strconv.FormatFloat(**o.p, 'g', -1, 64)
}

func (o optionalFloat) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*o.p = &v
	return nil
}

// vecValue parses "x,y,z"
type vecValue struct {
	p *[]float64
}

func (v vecValue) String() string {
	if v.p == nil || *v.p == nil {
		return ""
	}
	parts := make([]string, len(*v.p))
	for i, f := range *v.p {
		parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (v vecValue) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return fmt.Errorf("expected x,y,z, got %q", s)
	}
	vec := make([]float64, 3)
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return fmt.Errorf("invalid component %q: %w", part, err)
		}
		vec[i] = f
	}
	*v.p = vec
	return nil
}
