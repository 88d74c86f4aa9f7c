package scene

import (
	"math"

	"github.com/df07/go-voxel-raytracer/pkg/core"
)

// DefaultLightOffset is the light position relative to the scene target
var DefaultLightOffset = core.NewVec3(3, 4, 2)

// worldLightOffset places the light higher and farther for layered worlds
var worldLightOffset = core.NewVec3(6, 8, 4)

// Light rig limits and speeds
const (
	lightYawSpeed    = 1.5 // radians per second
	lightPitchSpeed  = 1.2 // radians per second
	lightRadiusSpeed = 2.0 // units per second
	lightSpinSpeed   = 0.6 // radians per second while spinning
	lightMaxPitch    = 1.2
	lightMinRadius   = 1.0
	lightMaxRadius   = 12.0
)

// LightRig orbits the point light around a target
type LightRig struct {
	Yaw    float64
	Pitch  float64
	Radius float64
	Target core.Vec3
	Spin   bool // Orbit automatically
}

// LightInput is one frame of light controls. Axes are -1, 0 or +1.
type LightInput struct {
	Yaw        float64
	Pitch      float64
	Radius     float64
	ToggleSpin bool
	Reset      bool
}

// NewLightRig creates a rig around target passing through pos
func NewLightRig(target, pos core.Vec3) LightRig {
	r := LightRig{Target: target}
	r.SetPosition(pos)
	return r
}

// Position returns the light position
func (r LightRig) Position() core.Vec3 {
	cp := math.Cos(r.Pitch)
	return r.Target.Add(core.NewVec3(
		r.Radius*cp*math.Cos(r.Yaw),
		r.Radius*math.Sin(r.Pitch),
		r.Radius*cp*math.Sin(r.Yaw),
	))
}

// SetPosition moves the light to pos, keeping the target
func (r *LightRig) SetPosition(pos core.Vec3) {
	v := pos.Subtract(r.Target)
	r.Radius = v.Length()
	r.Yaw = math.Atan2(v.Z, v.X)
	if r.Radius > 0 {
		r.Pitch = math.Asin(v.Y / r.Radius)
	} else {
		r.Pitch = 0
	}
}

// Reset moves the light back to the default offset from the target
func (r *LightRig) Reset() {
	r.SetPosition(r.Target.Add(DefaultLightOffset))
}

// Update applies one frame of input over dt seconds
func (r *LightRig) Update(in LightInput, dt float64) {
	r.Yaw += in.Yaw * lightYawSpeed * dt
	r.Pitch += in.Pitch * lightPitchSpeed * dt
	r.Radius += in.Radius * lightRadiusSpeed * dt

	if in.ToggleSpin {
		r.Spin = !r.Spin
	}
	if in.Reset {
		r.Reset()
	}
	if r.Spin {
		r.Yaw += lightSpinSpeed * dt
	}

	r.Pitch = max(-lightMaxPitch, min(lightMaxPitch, r.Pitch))
	r.Radius = max(lightMinRadius, min(lightMaxRadius, r.Radius))
}
