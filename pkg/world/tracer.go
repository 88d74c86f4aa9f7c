package world

import (
	"github.com/df07/go-voxel-raytracer/pkg/block"
	"github.com/df07/go-voxel-raytracer/pkg/core"
	"github.com/df07/go-voxel-raytracer/pkg/geometry"
)

// hitEpsilon is the minimum ray parameter accepted as a hit
const hitEpsilon = 1e-4

// SkipFunc reports whether a hit should be passed through, for example
// a transparent texel of a cutout block. A nil SkipFunc accepts every hit.
type SkipFunc func(hit geometry.Hit) bool

// Tracer finds the first block hit along a ray
type Tracer interface {
	// Trace returns the closest accepted hit with T <= tMax
	Trace(ray core.Ray, tMax float64, skip SkipFunc) (geometry.Hit, bool)
}

// BlockList is the naive tracer: every block is tested with IntersectBlock.
// It is the reference for Grid and the brute-force debug path.
type BlockList []block.Block

// Trace implements Tracer
func (bl BlockList) Trace(ray core.Ray, tMax float64, skip SkipFunc) (geometry.Hit, bool) {
	closest := geometry.NoHit()
	hitAnything := false

	for _, b := range bl {
		if b.Kind == block.None {
			continue
		}
		hit, ok := geometry.IntersectBlock(ray, b)
		if !ok || hit.T > tMax || hit.T >= closest.T {
			continue
		}
		if skip != nil && skip(hit) {
			continue
		}
		closest = hit
		hitAnything = true
	}

	return closest, hitAnything
}
