package geometry

import (
	"math"

	"github.com/df07/go-voxel-raytracer/pkg/block"
	"github.com/df07/go-voxel-raytracer/pkg/core"
)

// Face identifies one of the six faces of an axis-aligned box
type Face uint8

const (
	FaceNegX Face = iota // -X
	FacePosX             // +X
	FaceNegY             // -Y
	FacePosY             // +Y
	FaceNegZ             // -Z
	FacePosZ             // +Z

	// FaceNone marks hits that are not on a box (e.g. the floor plane)
	FaceNone Face = 255
)

// FaceFromAxis returns the face on axis (0=X, 1=Y, 2=Z) whose outward
// normal has the given sign
func FaceFromAxis(axis int, positive bool) Face {
	f := Face(axis * 2)
	if positive {
		f++
	}
	return f
}

// Normal returns the outward unit normal of the face
func (f Face) Normal() core.Vec3 {
	switch f {
	case FaceNegX:
		return core.NewVec3(-1, 0, 0)
	case FacePosX:
		return core.NewVec3(1, 0, 0)
	case FaceNegY:
		return core.NewVec3(0, -1, 0)
	case FacePosY:
		return core.NewVec3(0, 1, 0)
	case FaceNegZ:
		return core.NewVec3(0, 0, -1)
	case FacePosZ:
		return core.NewVec3(0, 0, 1)
	default:
		return core.NewVec3(0, 1, 0)
	}
}

var faceNames = [...]string{"-x", "+x", "-y", "+y", "-z", "+z"}

func (f Face) String() string {
	if int(f) < len(faceNames) {
		return faceNames[f]
	}
	return "none"
}

// Hit contains information about a ray-surface intersection
type Hit struct {
	T      float64    // Parameter t along the ray
	Point  core.Vec3  // Point of intersection
	Normal core.Vec3  // Unit surface normal
	Face   Face       // Box face, FaceNone for non-box surfaces
	UV     [2]float64 // Texture coordinates, wrapped by the sampler
	Kind   block.Kind // Block kind, block.None for non-block surfaces
}

// NoHit returns the "no intersection" record
func NoHit() Hit {
	return Hit{T: math.Inf(1), Face: FaceNone, Kind: block.None}
}
