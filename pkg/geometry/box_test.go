package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-voxel-raytracer/pkg/block"
	"github.com/df07/go-voxel-raytracer/pkg/core"
)

func TestIntersectAABB_Faces(t *testing.T) {
	center := core.NewVec3(0, 0.5, 0)

	tests := []struct {
		name   string
		origin core.Vec3
		dir    core.Vec3
		face   Face
		t      float64
		uv     [2]float64
	}{
		{"from -X", core.NewVec3(-3, 0.5, 0), core.NewVec3(1, 0, 0), FaceNegX, 2.5, [2]float64{0.5, 0.5}},
		{"from +X", core.NewVec3(3, 0.5, 0), core.NewVec3(-1, 0, 0), FacePosX, 2.5, [2]float64{0.5, 0.5}},
		{"from below", core.NewVec3(0.25, -2, 0), core.NewVec3(0, 1, 0), FaceNegY, 2, [2]float64{0.75, 0.5}},
		{"from above", core.NewVec3(0.25, 3, 0.25), core.NewVec3(0, -1, 0), FacePosY, 2, [2]float64{0.75, 0.25}},
		{"from -Z", core.NewVec3(0.25, 0.5, -4), core.NewVec3(0, 0, 1), FaceNegZ, 3.5, [2]float64{0.25, 0.5}},
		{"from +Z", core.NewVec3(0.25, 0.75, 4), core.NewVec3(0, 0, -1), FacePosZ, 3.5, [2]float64{0.75, 0.75}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := IntersectAABB(core.NewRay(tt.origin, tt.dir), center, 0.5)
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if hit.Face != tt.face {
				t.Errorf("Expected face %d, got %d", tt.face, hit.Face)
			}
			if hit.Normal != tt.face.Normal() {
				t.Errorf("Expected normal %v, got %v", tt.face.Normal(), hit.Normal)
			}
			if math.Abs(hit.T-tt.t) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.t, hit.T)
			}
			if math.Abs(hit.UV[0]-tt.uv[0]) > 1e-9 || math.Abs(hit.UV[1]-tt.uv[1]) > 1e-9 {
				t.Errorf("Expected UV %v, got %v", tt.uv, hit.UV)
			}
		})
	}
}

func TestIntersectAABB_Misses(t *testing.T) {
	center := core.NewVec3(0, 0, 0)

	tests := []struct {
		name   string
		origin core.Vec3
		dir    core.Vec3
	}{
		{"passes beside", core.NewVec3(-3, 2, 0), core.NewVec3(1, 0, 0)},
		{"points away", core.NewVec3(-3, 0, 0), core.NewVec3(-1, 0, 0)},
		{"disjoint slabs", core.NewVec3(-3, -3, 0), core.NewVec3(1, 0.2, 0)},
		{"parallel outside slab", core.NewVec3(0, 0.6, -5), core.NewVec3(0, 0, 1)},
		{"box behind origin", core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hit, isHit := IntersectAABB(core.NewRay(tt.origin, tt.dir), center, 0.5); isHit {
				t.Errorf("Expected miss, got hit at t=%f", hit.T)
			}
		})
	}
}

func TestIntersectAABB_OriginInside(t *testing.T) {
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := IntersectAABB(ray, core.NewVec3(0, 0, 0), 0.5)
	if !isHit {
		t.Fatal("Expected exit hit from inside the box")
	}
	if math.Abs(hit.T-0.5) > 1e-9 {
		t.Errorf("Expected exit at t=0.5, got %f", hit.T)
	}
	if hit.Face != FacePosY {
		t.Errorf("Expected exit through +Y, got face %d", hit.Face)
	}
}

func TestIntersectBlock_TagsKind(t *testing.T) {
	b := block.New(core.NewVec3(0, 0.5, 0), block.Log)
	hit, isHit := IntersectBlock(core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0)), b)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.Kind != block.Log {
		t.Errorf("Expected kind log, got %v", hit.Kind)
	}
}

func TestFaceFromAxis(t *testing.T) {
	for axis := 0; axis < 3; axis++ {
		for _, positive := range []bool{false, true} {
			f := FaceFromAxis(axis, positive)
			n := f.Normal()
			want := -1.0
			if positive {
				want = 1.0
			}
			if n.Axis(axis) != want {
				t.Errorf("axis %d positive=%v: face %d has normal %v", axis, positive, f, n)
			}
		}
	}
}
