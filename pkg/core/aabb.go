package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromCenter creates a cube-shaped AABB around center with the given half extent
func NewAABBFromCenter(center Vec3, half float64) AABB {
	he := NewVec3(half, half, half)
	return AABB{Min: center.Subtract(he), Max: center.Add(he)}
}

// Clip intersects a ray with the box using the slab method.
//
// Reciprocal directions are used as-is: a zero component yields ±Inf and
// the min/max comparisons handle the parallel slab without a branch.
// tNear and tFar are the entry and exit parameters (tNear may be negative
// when the origin is inside), axis is the slab that produced tNear.
func (aabb AABB) Clip(ray Ray) (tNear, tFar float64, axis int, ok bool) {
	tNear = math.Inf(-1)
	tFar = math.Inf(1)
	axis = -1

	for a := 0; a < 3; a++ {
		inv := 1.0 / ray.Direction.Axis(a)
		t1 := (aabb.Min.Axis(a) - ray.Origin.Axis(a)) * inv
		t2 := (aabb.Max.Axis(a) - ray.Origin.Axis(a)) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		// NaN (origin on a parallel slab's plane) fails both comparisons
		// and leaves the interval untouched.
		if t1 > tNear {
			tNear = t1
			axis = a
		}
		if t2 < tFar {
			tFar = t2
		}
	}

	if tFar <= tNear {
		return tNear, tFar, axis, false
	}
	return tNear, tFar, axis, true
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}
