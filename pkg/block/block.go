// Package block defines the closed set of voxel block kinds and the
// block value that scenes are built from.
package block

import (
	"fmt"
	"strings"

	"github.com/df07/go-voxel-raytracer/pkg/core"
)

// Kind identifies a block material. The zero value is None (air / no hit).
type Kind uint8

const (
	None Kind = iota
	Grass
	Dirt
	Stone
	Log
	Leaves
	Water
)

// Kinds lists every solid kind in declaration order
var Kinds = []Kind{Grass, Dirt, Stone, Log, Leaves, Water}

var kindNames = [...]string{
	None:   "none",
	Grass:  "grass",
	Dirt:   "dirt",
	Stone:  "stone",
	Log:    "log",
	Leaves: "leaves",
	Water:  "water",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind converts a kind name back to a Kind
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(i), nil
		}
	}
	return None, fmt.Errorf("unknown block kind: %q", name)
}

// Cutout reports whether the kind uses per-texel alpha to let rays through
func (k Kind) Cutout() bool {
	return k == Leaves
}

// Translucent reports whether the kind is blended with the sky behind it
func (k Kind) Translucent() bool {
	return k == Leaves || k == Water
}

// DefaultHalf is the half extent of a unit block
const DefaultHalf = 0.5

// Block is an axis-aligned cube in world space
type Block struct {
	Center core.Vec3
	Half   float64
	Kind   Kind
}

// New creates a unit block centered at center
func New(center core.Vec3, kind Kind) Block {
	return Block{Center: center, Half: DefaultHalf, Kind: kind}
}

// Bounds returns the block's bounding box
func (b Block) Bounds() core.AABB {
	return core.NewAABBFromCenter(b.Center, b.Half)
}
