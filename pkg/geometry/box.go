package geometry

import (
	"math"

	"github.com/df07/go-voxel-raytracer/pkg/block"
	"github.com/df07/go-voxel-raytracer/pkg/core"
)

// faceEpsilon is the tolerance used to decide which face a hit point lies on
const faceEpsilon = 1e-3

// IntersectAABB intersects the ray with a cube of half extent half around
// center. When the origin is inside the box the exit point is returned.
func IntersectAABB(ray core.Ray, center core.Vec3, half float64) (Hit, bool) {
	box := core.NewAABBFromCenter(center, half)

	tMin, tMax, _, ok := box.Clip(ray)
	if !ok || tMax < minHitDistance {
		return NoHit(), false
	}

	t := tMax
	if tMin > minHitDistance {
		t = tMin
	}
	p := ray.At(t)

	face := FacePosZ
	switch {
	case math.Abs(p.X-box.Min.X) < faceEpsilon:
		face = FaceNegX
	case math.Abs(p.X-box.Max.X) < faceEpsilon:
		face = FacePosX
	case math.Abs(p.Y-box.Min.Y) < faceEpsilon:
		face = FaceNegY
	case math.Abs(p.Y-box.Max.Y) < faceEpsilon:
		face = FacePosY
	case math.Abs(p.Z-box.Min.Z) < faceEpsilon:
		face = FaceNegZ
	case math.Abs(p.Z-box.Max.Z) < faceEpsilon:
		face = FacePosZ
	}

	return Hit{
		T:      t,
		Point:  p,
		Normal: face.Normal(),
		Face:   face,
		UV:     BoxFaceUV(face, p, box),
	}, true
}

// IntersectBlock is IntersectAABB for a block, tagging the hit with its kind
func IntersectBlock(ray core.Ray, b block.Block) (Hit, bool) {
	hit, ok := IntersectAABB(ray, b.Center, b.Half)
	if ok {
		hit.Kind = b.Kind
	}
	return hit, ok
}

// BoxFaceUV maps a point on a box face to texture coordinates.
//
// Every face uses a fixed orientation so side textures stay upright:
//
//	-X: (z, y)     +X: (1-z, y)
//	-Y: (x, z)     +Y: (x, 1-z)
//	-Z: (1-x, y)   +Z: (x, y)
//
// where x, y, z are the point's offsets inside the box normalized to [0, 1].
func BoxFaceUV(face Face, p core.Vec3, box core.AABB) [2]float64 {
	size := box.Size()
	x := (p.X - box.Min.X) / size.X
	y := (p.Y - box.Min.Y) / size.Y
	z := (p.Z - box.Min.Z) / size.Z

	switch face {
	case FaceNegX:
		return [2]float64{z, y}
	case FacePosX:
		return [2]float64{1 - z, y}
	case FaceNegY:
		return [2]float64{x, z}
	case FacePosY:
		return [2]float64{x, 1 - z}
	case FaceNegZ:
		return [2]float64{1 - x, y}
	case FacePosZ:
		return [2]float64{x, y}
	default:
		return [2]float64{0, 0}
	}
}
