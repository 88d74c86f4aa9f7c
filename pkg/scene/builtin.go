package scene

import (
	"embed"
	"fmt"
	"os"

	"github.com/df07/go-voxel-raytracer/pkg/block"
	"github.com/df07/go-voxel-raytracer/pkg/core"
	"github.com/df07/go-voxel-raytracer/pkg/loaders"
	"github.com/df07/go-voxel-raytracer/pkg/material"
	"github.com/df07/go-voxel-raytracer/pkg/shading"
)

//go:embed layers/*.txt
var builtinLayers embed.FS

// NewCubeScene creates a single grass block on the floor
func NewCubeScene(mats *material.Materials) *Scene {
	center := core.NewVec3(0, 0.5, 0)
	s := New("cube", []block.Block{block.New(center, block.Grass)}, mats, center)
	s.Light = core.NewVec3(3, 4, 2)
	return s
}

// NewLayersScene creates the built-in island world
func NewLayersScene(mats *material.Materials, logger core.Logger) (*Scene, error) {
	blocks, err := loaders.LoadLayers(builtinLayers, "layers", loaders.DefaultLayerOptions(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load built-in layers: %w", err)
	}
	return newWorldScene("layers", blocks, mats), nil
}

// LoadWorldScene creates a scene from a directory of layer files
func LoadWorldScene(name, dir string, mats *material.Materials, logger core.Logger) (*Scene, error) {
	blocks, err := loaders.LoadLayers(os.DirFS(dir), ".", loaders.DefaultLayerOptions(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load world %s: %w", dir, err)
	}
	return newWorldScene(name, blocks, mats), nil
}

// newWorldScene frames a layered world: camera a little above the ground,
// pulled back to see the whole island, water reflecting the scene
func newWorldScene(name string, blocks []block.Block, mats *material.Materials) *Scene {
	target := core.NewVec3(0, 2, 0)
	s := New(name, blocks, mats, target)
	s.Camera.Radius = 18
	s.Light = target.Add(worldLightOffset)
	s.Water = shading.WaterReflectOnce
	return s
}
