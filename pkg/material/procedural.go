package material

import (
	"math"

	"github.com/df07/go-voxel-raytracer/pkg/core"
)

// ProceduralSize is the edge length of generated textures
const ProceduralSize = 16

// pixelFunc returns the display-encoded color and alpha of a texel
type pixelFunc func(x, y int) (core.Vec3, float64)

// newProceduralTexture rasterizes fn into a square texture
func newProceduralTexture(size int, fn pixelFunc) *Texture {
	pix := make([]uint8, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c, a := fn(x, y)
			i := (y*size + x) * 4
			pix[i] = toByte(c.X)
			pix[i+1] = toByte(c.Y)
			pix[i+2] = toByte(c.Z)
			pix[i+3] = toByte(a)
		}
	}
	return &Texture{Width: size, Height: size, Pix: pix}
}

func toByte(v float64) uint8 {
	return uint8(math.Round(core.Clamp01(v) * 255.0))
}

// NewCheckerboardTexture creates a checkerboard pattern texture. Colors are
// display encoded.
func NewCheckerboardTexture(size, checkSize int, color1, color2 core.Vec3) *Texture {
	return newProceduralTexture(size, func(x, y int) (core.Vec3, float64) {
		if (x/checkSize+y/checkSize)%2 == 0 {
			return color1, 1.0
		}
		return color2, 1.0
	})
}

// NewMissingTexture is the gray checkerboard used when a texture file
// cannot be loaded
func NewMissingTexture() *Texture {
	light := 210.0 / 255.0
	dark := 40.0 / 255.0
	return NewCheckerboardTexture(256, 16, core.NewVec3(light, light, light), core.NewVec3(dark, dark, dark))
}

// noise returns a stable per-texel value in [-0.5, 0.5)
func noise(x, y int, seed float64) float64 {
	return core.Hash01(float64(x), float64(y), seed) - 0.5
}

func speckle(base core.Vec3, x, y int, seed, amount float64) core.Vec3 {
	return base.Multiply(1.0 + noise(x, y, seed)*amount)
}

// grassBand is the depth in texels of the green edge on grass sides
const grassBand = 4

// ProceduralTexture generates the built-in texture for a slot
func ProceduralTexture(slot Slot) *Texture {
	grass := core.NewVec3(0.36, 0.6, 0.22)
	dirt := core.NewVec3(0.53, 0.38, 0.26)
	stone := core.NewVec3(0.5, 0.5, 0.52)
	bark := core.NewVec3(0.4, 0.29, 0.17)
	wood := core.NewVec3(0.7, 0.56, 0.35)
	leaf := core.NewVec3(0.22, 0.48, 0.16)
	water := core.NewVec3(0.2, 0.38, 0.75)

	switch slot {
	case GrassTop:
		return newProceduralTexture(ProceduralSize, func(x, y int) (core.Vec3, float64) {
			return speckle(grass, x, y, 1, 0.35), 1.0
		})
	case GrassSide:
		return newProceduralTexture(ProceduralSize, func(x, y int) (core.Vec3, float64) {
			// Row 0 is the top edge of the face
			edge := grassBand - 1
			if noise(x, 0, 7) > 0 {
				edge++
			}
			if y < edge {
				return speckle(grass, x, y, 2, 0.35), 1.0
			}
			return speckle(dirt, x, y, 3, 0.3), 1.0
		})
	case Dirt:
		return newProceduralTexture(ProceduralSize, func(x, y int) (core.Vec3, float64) {
			return speckle(dirt, x, y, 3, 0.3), 1.0
		})
	case Stone:
		return newProceduralTexture(ProceduralSize, func(x, y int) (core.Vec3, float64) {
			return speckle(stone, x/2, y/2, 4, 0.25), 1.0
		})
	case LogTop:
		return newProceduralTexture(ProceduralSize, func(x, y int) (core.Vec3, float64) {
			c := float64(ProceduralSize-1) / 2.0
			r := math.Hypot(float64(x)-c, float64(y)-c)
			if r > c-0.5 {
				return bark, 1.0
			}
			ring := 0.85 + 0.15*math.Cos(r*2.2)
			return wood.Multiply(ring), 1.0
		})
	case LogSide:
		return newProceduralTexture(ProceduralSize, func(x, y int) (core.Vec3, float64) {
			stripe := 0.8 + 0.2*math.Sin(float64(x)*1.7)
			return speckle(bark.Multiply(stripe), x, y/4, 5, 0.2), 1.0
		})
	case Leaves:
		return newProceduralTexture(ProceduralSize, func(x, y int) (core.Vec3, float64) {
			h := noise(x, y, 6) + 0.5
			if h < 0.3 {
				return core.Vec3{}, 0.0
			}
			return speckle(leaf, x, y, 8, 0.4), 1.0
		})
	case Water:
		return newProceduralTexture(ProceduralSize, func(x, y int) (core.Vec3, float64) {
			wave := 0.92 + 0.08*math.Sin(float64(x+2*y)*0.8)
			return water.Multiply(wave), 0.65
		})
	}
	return NewMissingTexture()
}

// NewProceduralMaterials builds a complete material set without any assets
func NewProceduralMaterials() *Materials {
	m := NewMaterials()
	for _, slot := range Slots() {
		m.Set(slot, ProceduralTexture(slot))
	}
	return m
}
