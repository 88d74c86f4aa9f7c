package scene

import (
	"github.com/df07/go-voxel-raytracer/pkg/block"
	"github.com/df07/go-voxel-raytracer/pkg/core"
	"github.com/df07/go-voxel-raytracer/pkg/geometry"
	"github.com/df07/go-voxel-raytracer/pkg/material"
	"github.com/df07/go-voxel-raytracer/pkg/shading"
	"github.com/df07/go-voxel-raytracer/pkg/world"
)

// DefaultFloorColor is the linear albedo of the ground plane
var DefaultFloorColor = core.NewVec3(0.18, 0.2, 0.23)

// DefaultAspect is the aspect ratio of new scenes
const DefaultAspect = 16.0 / 9.0

// Scene is the snapshot rendered in one frame. Renderers only read it;
// callers Clone it before changing anything for the next frame.
type Scene struct {
	Name       string
	Camera     geometry.OrbitCamera
	Light      core.Vec3 // Point light position
	ShowFloor  bool
	FloorColor core.Vec3 // Linear floor albedo
	Blocks     []block.Block
	Materials  *material.Materials // Shared read-only across snapshots
	Water      shading.WaterMode
	Night      bool
	Lighting   shading.Lighting
}

// New creates a scene around blocks with the default camera, light, floor
// and lighting. The camera and light are aimed at target.
func New(name string, blocks []block.Block, mats *material.Materials, target core.Vec3) *Scene {
	return &Scene{
		Name:       name,
		Camera:     geometry.NewOrbitCamera(target, DefaultAspect),
		Light:      target.Add(DefaultLightOffset),
		ShowFloor:  true,
		FloorColor: DefaultFloorColor,
		Blocks:     blocks,
		Materials:  mats,
		Water:      shading.WaterSkyOnly,
		Lighting:   shading.DefaultLighting(),
	}
}

// Clone returns an independent copy of the snapshot. Materials are
// immutable and stay shared.
func (s *Scene) Clone() *Scene {
	c := *s
	c.Blocks = append([]block.Block(nil), s.Blocks...)
	return &c
}

// Shader creates the shader for this snapshot on top of tracer
func (s *Scene) Shader(tracer world.Tracer) *shading.Shader {
	return &shading.Shader{
		Tracer:     tracer,
		Materials:  s.Materials,
		Light:      s.Light,
		ShowFloor:  s.ShowFloor,
		FloorColor: s.FloorColor,
		Water:      s.Water,
		Night:      s.Night,
		Lighting:   s.Lighting,
	}
}

// GetBlockCount returns the number of non-empty blocks
func (s *Scene) GetBlockCount() int {
	count := 0
	for _, b := range s.Blocks {
		if b.Kind != block.None {
			count++
		}
	}
	return count
}
