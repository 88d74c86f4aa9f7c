package geometry

import (
	"math"

	"github.com/df07/go-voxel-raytracer/pkg/core"
)

const (
	planeParallelEpsilon = 1e-5
	minHitDistance       = 1e-4
)

// IntersectPlaneY0 intersects the ray with the horizontal plane y = 0.
// Nearly parallel rays and hits at or behind the origin are rejected.
func IntersectPlaneY0(ray core.Ray) (Hit, bool) {
	if math.Abs(ray.Direction.Y) < planeParallelEpsilon {
		return NoHit(), false
	}

	t := -ray.Origin.Y / ray.Direction.Y
	if t <= minHitDistance {
		return NoHit(), false
	}

	p := ray.At(t)
	return Hit{
		T:      t,
		Point:  p,
		Normal: core.NewVec3(0, 1, 0),
		Face:   FaceNone,
		UV:     [2]float64{p.X, p.Z},
	}, true
}
