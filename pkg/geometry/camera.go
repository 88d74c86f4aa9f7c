package geometry

import (
	"math"

	"github.com/df07/go-voxel-raytracer/pkg/core"
)

// Orbit camera limits and input sensitivities
const (
	MaxPitch         = 1.45  // radians, keeps the view away from the poles
	OrbitSensitivity = 0.005 // radians per pixel of mouse drag
	ZoomStep         = 0.6   // world units per wheel notch
)

// OrbitCamera orbits a target point at a given radius
type OrbitCamera struct {
	Yaw       float64   // Angle around +Y in radians
	Pitch     float64   // Elevation in radians, clamped to ±MaxPitch
	Radius    float64   // Distance from the target
	Target    core.Vec3 // Point the camera looks at
	FovY      float64   // Vertical field of view in degrees
	Aspect    float64   // Width / height
	MinRadius float64
	MaxRadius float64
}

// NewOrbitCamera creates a camera with the default pose around target
func NewOrbitCamera(target core.Vec3, aspect float64) OrbitCamera {
	cam := OrbitCamera{
		Target:    target,
		FovY:      45.0,
		Aspect:    aspect,
		MinRadius: 2.0,
		MaxRadius: 30.0,
	}
	cam.Reset()
	return cam
}

// Reset restores the default yaw, pitch and radius
func (c *OrbitCamera) Reset() {
	c.Yaw = math.Pi / 4
	c.Pitch = 0.4
	c.Radius = 6.0
}

// Orbit rotates the camera by a mouse delta in pixels
func (c *OrbitCamera) Orbit(dx, dy float64) {
	c.Yaw -= dx * OrbitSensitivity
	c.Pitch += dy * OrbitSensitivity
	c.Pitch = max(-MaxPitch, min(MaxPitch, c.Pitch))
}

// Zoom moves the camera towards the target by wheel notches
func (c *OrbitCamera) Zoom(notches float64) {
	c.Radius = c.Radius - notches*ZoomStep
	if c.MinRadius < c.MaxRadius {
		c.Radius = max(c.MinRadius, min(c.MaxRadius, c.Radius))
	}
}

// Eye returns the camera position
func (c OrbitCamera) Eye() core.Vec3 {
	cp := math.Cos(c.Pitch)
	offset := core.NewVec3(
		c.Radius*cp*math.Cos(c.Yaw),
		c.Radius*math.Sin(c.Pitch),
		c.Radius*cp*math.Sin(c.Yaw),
	)
	return c.Target.Add(offset)
}

// CameraBasis is the per-frame view basis shared read-only by all workers
type CameraBasis struct {
	Eye        core.Vec3
	Forward    core.Vec3
	Right      core.Vec3
	Up         core.Vec3
	Aspect     float64
	TanHalfFov float64
}

// NewCameraBasis precomputes the view basis for a frame
func NewCameraBasis(c OrbitCamera) CameraBasis {
	eye := c.Eye()
	return NewLookAtBasis(eye, c.Target, c.FovY, c.Aspect)
}

// NewLookAtBasis builds a basis looking from eye towards target
func NewLookAtBasis(eye, target core.Vec3, fovY, aspect float64) CameraBasis {
	forward := target.Subtract(eye).Normalize()
	right := forward.Cross(core.NewVec3(0, 1, 0))
	if right.Length() < 1e-9 {
		// Looking straight up or down
		right = core.NewVec3(1, 0, 0)
	}
	right = right.Normalize()
	up := right.Cross(forward).Normalize()

	return CameraBasis{
		Eye:        eye,
		Forward:    forward,
		Right:      right,
		Up:         up,
		Aspect:     aspect,
		TanHalfFov: math.Tan(fovY * math.Pi / 180.0 * 0.5),
	}
}

// PrimaryDir returns the unit direction through the center of pixel (x, y)
// of a width x height frame. The origin is the top-left pixel.
func (b CameraBasis) PrimaryDir(x, y, width, height int) core.Vec3 {
	ndcX := (float64(x) + 0.5) / float64(width)
	ndcY := (float64(y) + 0.5) / float64(height)
	px := (2.0*ndcX - 1.0) * b.Aspect * b.TanHalfFov
	py := (1.0 - 2.0*ndcY) * b.TanHalfFov

	return b.Forward.Add(b.Right.Multiply(px)).Add(b.Up.Multiply(py)).Normalize()
}

// PrimaryRay returns the camera ray through pixel (x, y)
func (b CameraBasis) PrimaryRay(x, y, width, height int) core.Ray {
	return core.NewRay(b.Eye, b.PrimaryDir(x, y, width, height))
}
