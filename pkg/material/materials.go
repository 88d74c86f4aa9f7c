package material

import (
	"fmt"
	"strings"

	"github.com/df07/go-voxel-raytracer/pkg/block"
	"github.com/df07/go-voxel-raytracer/pkg/core"
	"github.com/df07/go-voxel-raytracer/pkg/geometry"
)

// Slot identifies one texture in a material set
type Slot uint8

const (
	GrassTop Slot = iota
	GrassSide
	Dirt
	Stone
	LogTop
	LogSide
	Leaves
	Water
	SlotCount
)

var slotNames = [SlotCount]string{
	GrassTop:  "grass_top",
	GrassSide: "grass_side",
	Dirt:      "dirt",
	Stone:     "stone",
	LogTop:    "log_top",
	LogSide:   "log_side",
	Leaves:    "leaves",
	Water:     "water",
}

// Slots lists every texture slot in declaration order
func Slots() []Slot {
	slots := make([]Slot, SlotCount)
	for i := range slots {
		slots[i] = Slot(i)
	}
	return slots
}

// String returns the slot name used for texture file names
func (s Slot) String() string {
	if s < SlotCount {
		return slotNames[s]
	}
	return fmt.Sprintf("Slot(%d)", uint8(s))
}

// ParseSlot converts a slot name back to a Slot
func ParseSlot(name string) (Slot, error) {
	for i, n := range slotNames {
		if strings.EqualFold(n, name) {
			return Slot(i), nil
		}
	}
	return 0, fmt.Errorf("unknown texture slot %q", name)
}

// SlotFor selects the texture slot for a block kind seen through a face
func SlotFor(kind block.Kind, face geometry.Face) (Slot, bool) {
	switch kind {
	case block.Grass:
		switch face {
		case geometry.FacePosY:
			return GrassTop, true
		case geometry.FaceNegY:
			return Dirt, true
		default:
			return GrassSide, true
		}
	case block.Dirt:
		return Dirt, true
	case block.Stone:
		return Stone, true
	case block.Log:
		if face == geometry.FacePosY || face == geometry.FaceNegY {
			return LogTop, true
		}
		return LogSide, true
	case block.Leaves:
		return Leaves, true
	case block.Water:
		return Water, true
	case block.None:
		return 0, false
	}
	return 0, false
}

// Materials holds one texture per slot. It is read-only once built and is
// shared by every render worker.
type Materials struct {
	textures [SlotCount]*Texture
}

// NewMaterials creates an empty material set
func NewMaterials() *Materials {
	return &Materials{}
}

// Set assigns the texture for a slot
func (m *Materials) Set(slot Slot, tex *Texture) {
	m.textures[slot] = tex
}

// Texture returns the texture for a slot, or nil if none was assigned
func (m *Materials) Texture(slot Slot) *Texture {
	if slot >= SlotCount {
		return nil
	}
	return m.textures[slot]
}

// Missing lists the slots that have no texture
func (m *Materials) Missing() []Slot {
	var missing []Slot
	for i, tex := range m.textures {
		if tex == nil {
			missing = append(missing, Slot(i))
		}
	}
	return missing
}

// missingColor marks surfaces whose slot has no texture
var missingColor = core.NewVec3(1, 0, 1)

// SampleBlock returns the linear color and alpha of a block face at uv
func (m *Materials) SampleBlock(uv [2]float64, face geometry.Face, kind block.Kind) (core.Vec3, float64) {
	slot, ok := SlotFor(kind, face)
	if !ok {
		return missingColor, 1.0
	}
	tex := m.textures[slot]
	if tex == nil {
		return missingColor, 1.0
	}
	return tex.Sample(uv)
}
