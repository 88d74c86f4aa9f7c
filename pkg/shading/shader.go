package shading

import (
	"math"

	"github.com/df07/go-voxel-raytracer/pkg/block"
	"github.com/df07/go-voxel-raytracer/pkg/core"
	"github.com/df07/go-voxel-raytracer/pkg/geometry"
	"github.com/df07/go-voxel-raytracer/pkg/material"
	"github.com/df07/go-voxel-raytracer/pkg/world"
)

// Shader resolves rays to display-encoded colors. It only reads its fields,
// so one Shader can be shared by every render worker.
type Shader struct {
	Tracer     world.Tracer
	Materials  *material.Materials
	Light      core.Vec3 // Point light position
	ShowFloor  bool
	FloorColor core.Vec3 // Linear floor albedo
	Water      WaterMode
	Night      bool
	Lighting   Lighting
}

// Sky returns the sky color for the shader's day/night setting
func (s *Shader) Sky(dir core.Vec3) core.Vec3 {
	return SkyColor(dir, s.Night)
}

// Primary shades a camera ray. Water hits may spawn one reflection ray.
func (s *Shader) Primary(ray core.Ray) core.Vec3 {
	return s.shade(ray, true)
}

// Secondary shades a reflection ray. It never reflects again and treats a
// water hit as sky.
func (s *Shader) Secondary(ray core.Ray) core.Vec3 {
	return s.shade(ray, false)
}

func (s *Shader) shade(ray core.Ray, primary bool) core.Vec3 {
	hit, ok := s.Closest(ray)
	if !ok {
		return s.Sky(ray.Direction.Normalize())
	}
	if hit.Kind == block.None {
		return s.ShadeFloor(hit)
	}
	if !primary && hit.Kind == block.Water {
		return s.Sky(ray.Direction.Normalize())
	}
	return s.ShadeBlock(ray, hit, primary)
}

// Closest returns the nearest visible surface: a block (skipping cut-out
// leaf texels) or, when enabled, the floor plane. Floor hits have Kind None.
func (s *Shader) Closest(ray core.Ray) (geometry.Hit, bool) {
	best := geometry.NoHit()
	found := false

	if s.ShowFloor {
		if hit, ok := geometry.IntersectPlaneY0(ray); ok {
			best = hit
			found = true
		}
	}

	if hit, ok := s.Tracer.Trace(ray, best.T, s.cutout); ok && hit.T < best.T {
		best = hit
		found = true
	}
	return best, found
}

// cutout passes through leaf texels that are nearly transparent
func (s *Shader) cutout(hit geometry.Hit) bool {
	if !hit.Kind.Cutout() {
		return false
	}
	_, alpha := s.Materials.SampleBlock(hit.UV, hit.Face, hit.Kind)
	return alpha < s.Lighting.CutoutThreshold
}

// ShadeBlock shades a block hit. Leaves and water are blended over the sky
// behind them by texture alpha; water on a primary ray also gets a Fresnel
// weighted reflection.
func (s *Shader) ShadeBlock(ray core.Ray, hit geometry.Hit, reflect bool) core.Vec3 {
	base, alpha := s.Materials.SampleBlock(hit.UV, hit.Face, hit.Kind)

	p := hit.Point
	n := hit.Normal.Normalize()
	l := s.Light.Subtract(p).Normalize()
	v := ray.Origin.Subtract(p).Normalize()

	lin := base.Multiply(s.Lighting.Ambient)
	if !s.InShadow(p, n) {
		lin = lin.Add(base.Multiply(s.Lighting.WrappedDiffuse(n.Dot(l))))
	}
	c := material.GammaEncode(lin)

	if !hit.Kind.Translucent() {
		return c
	}

	bg := s.Sky(v.Negate())
	a := clamp01(alpha)
	c = bg.Multiply(1.0 - a).Add(c.Multiply(a))

	if hit.Kind != block.Water || !reflect {
		return c
	}

	kr := FresnelSchlick(clamp01(n.Dot(v)), s.Lighting.FresnelF0)
	refl := s.ReflectedColor(p, n, v)
	return c.Multiply(1.0 - kr).Add(refl.Multiply(kr))
}

// ReflectedColor returns the display-encoded color seen in the mirror
// direction reflect(-v, n) for the current water mode
func (s *Shader) ReflectedColor(p, n, v core.Vec3) core.Vec3 {
	r := v.Negate().Reflect(n)

	switch s.Water {
	case WaterSkyOnly:
		return s.Sky(r)
	case WaterReflectOnce:
		origin := p.Add(r.Multiply(s.Lighting.ReflectEpsilon))
		return s.Secondary(core.NewRay(origin, r))
	default:
		return core.Vec3{}
	}
}

// ShadeFloor shades a hit on the floor plane
func (s *Shader) ShadeFloor(hit geometry.Hit) core.Vec3 {
	p := hit.Point
	n := hit.Normal.Normalize()
	l := s.Light.Subtract(p).Normalize()

	lin := s.FloorColor.Multiply(s.Lighting.FloorAmbient)
	if !s.InShadow(p, n) {
		lin = lin.Add(s.FloorColor.Multiply(s.Lighting.WrappedDiffuse(n.Dot(l))))
	}
	return material.GammaEncode(lin)
}

// InShadow reports whether a block lies between p and the light.
// Water never blocks; leaves block where their alpha beats a per-texel
// hash, giving a stable dithered shadow. The floor casts no shadow.
func (s *Shader) InShadow(p, n core.Vec3) bool {
	toLight := s.Light.Subtract(p)
	dist := toLight.Length()
	if dist == 0 {
		return false
	}

	origin := p.Add(n.Multiply(s.Lighting.ShadowEpsilon))
	ray := core.NewRay(origin, toLight.Multiply(1.0/dist))

	_, blocked := s.Tracer.Trace(ray, math.Nextafter(dist, 0), s.passesLight)
	return blocked
}

// passesLight reports whether a shadow ray continues through the hit
func (s *Shader) passesLight(hit geometry.Hit) bool {
	switch hit.Kind {
	case block.Water:
		return true
	case block.Leaves:
		_, alpha := s.Materials.SampleBlock(hit.UV, hit.Face, hit.Kind)
		scale := s.Lighting.DitherScale
		threshold := core.Hash01(hit.UV[0]*scale, hit.UV[1]*scale, float64(hit.Face))
		return alpha <= threshold
	default:
		return false
	}
}
