package world

import (
	"math"

	"github.com/df07/go-voxel-raytracer/pkg/block"
	"github.com/df07/go-voxel-raytracer/pkg/core"
	"github.com/df07/go-voxel-raytracer/pkg/geometry"
)

// Trace walks the grid cell by cell (Amanatides-Woo DDA) and returns the
// first occupied cell the ray enters that skip does not reject.
func (g *Grid) Trace(ray core.Ray, tMax float64, skip SkipFunc) (geometry.Hit, bool) {
	if g.Empty() {
		return geometry.NoHit(), false
	}

	tEnter, tExit, entryAxis, ok := g.bounds.Clip(ray)
	if !ok || entryAxis < 0 || tExit < hitEpsilon {
		return geometry.NoHit(), false
	}

	// Starting inside the grid (or within epsilon of it) the first hit is
	// the exit face of the starting cell, as with IntersectAABB.
	inside := tEnter <= hitEpsilon
	t := math.Max(tEnter, 0)
	if t > tMax {
		return geometry.NoHit(), false
	}

	p := ray.At(t)
	var idx, step [3]int
	var next, delta [3]float64
	for a := 0; a < 3; a++ {
		i := int(math.Floor(p.Axis(a) - g.base.Axis(a)))
		idx[a] = max(0, min(g.dims[a]-1, i))

		d := ray.Direction.Axis(a)
		cellMin := g.base.Axis(a) + float64(idx[a])
		switch {
		case d > 0:
			step[a] = 1
			next[a] = (cellMin + 1 - ray.Origin.Axis(a)) / d
		case d < 0:
			step[a] = -1
			next[a] = (cellMin - ray.Origin.Axis(a)) / d
		default:
			next[a] = math.Inf(1)
		}
		delta[a] = math.Abs(1.0 / d)
	}

	lastAxis := -1
	for {
		kind := g.cells[g.index(idx[0], idx[1], idx[2])]
		if kind != block.None {
			var face geometry.Face
			hitT := t
			accept := true

			switch {
			case lastAxis >= 0:
				face = geometry.FaceFromAxis(lastAxis, step[lastAxis] < 0)
			case inside:
				a := nextAxis(next)
				hitT = next[a]
				face = geometry.FaceFromAxis(a, step[a] > 0)
				accept = hitT >= hitEpsilon
			default:
				face = geometry.FaceFromAxis(entryAxis, ray.Direction.Axis(entryAxis) < 0)
			}

			if hitT > tMax {
				return geometry.NoHit(), false
			}

			if accept {
				hit := g.makeHit(ray, hitT, face, idx)
				hit.Kind = kind
				if skip == nil || !skip(hit) {
					return hit, true
				}
			}
		}

		a := nextAxis(next)
		if math.IsInf(next[a], 1) {
			break
		}
		t = next[a]
		if t > tMax || t > tExit {
			break
		}
		idx[a] += step[a]
		if !g.inRange(idx[0], idx[1], idx[2]) {
			break
		}
		next[a] += delta[a]
		lastAxis = a
	}

	return geometry.NoHit(), false
}

// nextAxis returns the axis with the smallest boundary crossing, ties
// broken X then Y then Z
func nextAxis(next [3]float64) int {
	a := 0
	if next[1] < next[a] {
		a = 1
	}
	if next[2] < next[a] {
		a = 2
	}
	return a
}

// makeHit builds the hit record for a face of the cell at idx, snapping the point onto
// the face plane so UVs stay inside [0, 1]
func (g *Grid) makeHit(ray core.Ray, t float64, face geometry.Face, idx [3]int) geometry.Hit {
	box := g.cellBounds(idx[0], idx[1], idx[2])
	p := ray.At(t)

	axis := int(face) / 2
	plane := box.Min.Axis(axis)
	if int(face)%2 == 1 {
		plane = box.Max.Axis(axis)
	}
	switch axis {
	case 0:
		p.X = plane
	case 1:
		p.Y = plane
	case 2:
		p.Z = plane
	}

	return geometry.Hit{
		T:      t,
		Point:  p,
		Normal: face.Normal(),
		Face:   face,
		UV:     geometry.BoxFaceUV(face, p, box),
	}
}
