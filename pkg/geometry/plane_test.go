package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-voxel-raytracer/pkg/core"
)

func TestIntersectPlaneY0_BasicIntersection(t *testing.T) {
	// Ray shooting down from above
	ray := core.NewRay(core.NewVec3(2, 1, -3), core.NewVec3(0, -1, 0))

	hit, isHit := IntersectPlaneY0(ray)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Errorf("Expected t=1, got t=%f", hit.T)
	}
	if hit.Normal != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected +Y normal, got %v", hit.Normal)
	}
	if hit.UV != [2]float64{2, -3} {
		t.Errorf("Expected UV (x, z) = (2, -3), got %v", hit.UV)
	}
	if hit.Face != FaceNone {
		t.Errorf("Expected FaceNone, got %v", hit.Face)
	}
}

func TestIntersectPlaneY0_ParallelRays(t *testing.T) {
	directions := []core.Vec3{
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 0, 1),
		core.NewVec3(1, 9e-6, 0),
		core.NewVec3(-0.3, -9.99e-6, 0.7),
	}

	for _, dir := range directions {
		for _, originY := range []float64{-2, 0.5, 10} {
			ray := core.NewRay(core.NewVec3(0, originY, 0), dir)
			if hit, isHit := IntersectPlaneY0(ray); isHit {
				t.Errorf("Expected miss for direction %v from y=%f, got t=%f", dir, originY, hit.T)
			}
		}
	}
}

func TestIntersectPlaneY0_BehindRay(t *testing.T) {
	// Ray shooting up from above (intersection behind ray origin)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))

	if hit, isHit := IntersectPlaneY0(ray); isHit {
		t.Errorf("Expected miss for intersection behind ray, but got hit at t=%f", hit.T)
	}

	// Origin on the plane: t = 0 is rejected
	ray = core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, 0))
	if _, isHit := IntersectPlaneY0(ray); isHit {
		t.Error("Expected miss for origin on the plane")
	}
}
