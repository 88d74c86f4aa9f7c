package shading

import (
	"math"

	"github.com/df07/go-voxel-raytracer/pkg/core"
)

var (
	dayZenith    = core.NewVec3(0.18, 0.37, 0.77)
	dayHorizon   = core.NewVec3(0.78, 0.86, 0.95)
	nightZenith  = core.NewVec3(0.01, 0.02, 0.06)
	nightHorizon = core.NewVec3(0.06, 0.08, 0.15)
)

const (
	starCells    = 300.0 // Hash cells per unit of horizontal direction
	starDensity  = 0.02  // Fraction of cells holding a star
	starMinY     = 0.1   // No stars below this elevation
	starFadeSpan = 0.2   // Elevation range over which stars fade in
)

func clamp01(x float64) float64 {
	return core.Clamp01(x)
}

// SkyColor returns the display-encoded sky color seen along the unit
// direction dir
func SkyColor(dir core.Vec3, night bool) core.Vec3 {
	t := math.Pow(clamp01(dir.Y*0.5+0.5), 0.65)
	if !night {
		return dayZenith.Lerp(dayHorizon, t)
	}

	c := nightZenith.Lerp(nightHorizon, t)
	if s := starIntensity(dir); s > 0 {
		c = c.Add(core.NewVec3(s, s, s))
	}
	return c
}

// starIntensity hashes the horizontal direction components into cells and
// lights about 2% of them
func starIntensity(dir core.Vec3) float64 {
	if dir.Y < starMinY {
		return 0
	}

	cx := math.Floor(dir.X * starCells)
	cz := math.Floor(dir.Z * starCells)
	if core.Hash01(cx, cz, 11.0) >= starDensity {
		return 0
	}

	brightness := 0.3 + 0.7*core.Hash01(cx, cz, 23.0)
	fade := clamp01((dir.Y - starMinY) / starFadeSpan)
	altitude := 0.6 + 0.4*dir.Y
	return brightness * fade * altitude
}
