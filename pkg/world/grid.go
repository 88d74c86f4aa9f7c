package world

import (
	"math"

	"github.com/df07/go-voxel-raytracer/pkg/block"
	"github.com/df07/go-voxel-raytracer/pkg/core"
)

// Grid is a dense voxel array covering the range of a block list.
// It is built once per frame and read concurrently by all workers.
//
// The lattice is anchored at the min corner of the lowest block on each
// axis, so unit blocks whose centers differ by whole numbers map exactly
// onto cells: a block occupies cell round(center - 0.5 - base).
type Grid struct {
	base   core.Vec3 // World position of the min corner of cell (0, 0, 0)
	dims   [3]int    // Cell counts along X, Y, Z
	cells  []block.Kind
	bounds core.AABB
}

// BuildGrid rasterizes blocks into a grid sized to their cell range.
// Blocks mapping to the same cell overwrite each other in slice order.
func BuildGrid(blocks []block.Block) *Grid {
	g := &Grid{}

	first := true
	var lo, hi core.Vec3
	for _, b := range blocks {
		if b.Kind == block.None {
			continue
		}
		if first {
			lo, hi = b.Center, b.Center
			first = false
			continue
		}
		lo = core.NewVec3(math.Min(lo.X, b.Center.X), math.Min(lo.Y, b.Center.Y), math.Min(lo.Z, b.Center.Z))
		hi = core.NewVec3(math.Max(hi.X, b.Center.X), math.Max(hi.Y, b.Center.Y), math.Max(hi.Z, b.Center.Z))
	}
	if first {
		return g
	}

	g.base = lo.Subtract(core.NewVec3(0.5, 0.5, 0.5))
	for a := 0; a < 3; a++ {
		g.dims[a] = int(math.Round(hi.Axis(a)-lo.Axis(a))) + 1
	}
	g.cells = make([]block.Kind, g.dims[0]*g.dims[1]*g.dims[2])
	g.bounds = core.NewAABB(g.base, g.base.Add(core.NewVec3(
		float64(g.dims[0]), float64(g.dims[1]), float64(g.dims[2]))))

	for _, b := range blocks {
		if b.Kind == block.None {
			continue
		}
		x, y, z := g.cellOf(b.Center)
		g.cells[g.index(x, y, z)] = b.Kind
	}
	return g
}

// cellOf maps a block center to grid indices
func (g *Grid) cellOf(center core.Vec3) (int, int, int) {
	return int(math.Round(center.X - 0.5 - g.base.X)),
		int(math.Round(center.Y - 0.5 - g.base.Y)),
		int(math.Round(center.Z - 0.5 - g.base.Z))
}

func (g *Grid) index(x, y, z int) int {
	return (z*g.dims[1]+y)*g.dims[0] + x
}

func (g *Grid) inRange(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < g.dims[0] && y < g.dims[1] && z < g.dims[2]
}

// cellBounds returns the world-space box of a cell
func (g *Grid) cellBounds(x, y, z int) core.AABB {
	lo := g.base.Add(core.NewVec3(float64(x), float64(y), float64(z)))
	return core.NewAABB(lo, lo.Add(core.NewVec3(1, 1, 1)))
}

// Dims returns the number of cells along each axis
func (g *Grid) Dims() [3]int {
	return g.dims
}

// Bounds returns the world-space box covered by the grid
func (g *Grid) Bounds() core.AABB {
	return g.bounds
}

// Empty reports whether the grid has no cells
func (g *Grid) Empty() bool {
	return len(g.cells) == 0
}

// Cell returns the kind stored at grid indices (x, y, z), or block.None
// outside the grid
func (g *Grid) Cell(x, y, z int) block.Kind {
	if !g.inRange(x, y, z) {
		return block.None
	}
	return g.cells[g.index(x, y, z)]
}

// At returns the kind of the cell containing the world point p
func (g *Grid) At(p core.Vec3) block.Kind {
	if g.Empty() {
		return block.None
	}
	x := int(math.Floor(p.X - g.base.X))
	y := int(math.Floor(p.Y - g.base.Y))
	z := int(math.Floor(p.Z - g.base.Z))
	return g.Cell(x, y, z)
}

// Count returns the number of occupied cells
func (g *Grid) Count() int {
	n := 0
	for _, k := range g.cells {
		if k != block.None {
			n++
		}
	}
	return n
}
