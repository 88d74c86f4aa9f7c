package scene

import (
	"math"
	"testing"

	"github.com/df07/go-voxel-raytracer/pkg/core"
)

func closeVec(a, b core.Vec3) bool {
	return a.Subtract(b).Length() < 1e-9
}

func TestLightRigRoundTrip(t *testing.T) {
	target := core.NewVec3(0, 0.5, 0)
	positions := []core.Vec3{
		core.NewVec3(3, 4.5, 2),
		core.NewVec3(-2, 1, -5),
		core.NewVec3(0.5, 3, 0),
	}
	for _, pos := range positions {
		rig := NewLightRig(target, pos)
		if got := rig.Position(); !closeVec(got, pos) {
			t.Errorf("Position() = %v, expected %v", got, pos)
		}
	}
}

func TestLightRigUpdate(t *testing.T) {
	target := core.NewVec3(0, 0, 0)
	rig := NewLightRig(target, core.NewVec3(5, 0, 0))

	rig.Update(LightInput{Yaw: 1}, 0.5)
	if math.Abs(rig.Yaw-0.75) > 1e-12 {
		t.Errorf("Expected yaw 0.75 after half a second, got %v", rig.Yaw)
	}

	// Clamps
	rig.Update(LightInput{Pitch: 1, Radius: 1}, 10)
	if rig.Pitch != lightMaxPitch {
		t.Errorf("Expected pitch clamped to %v, got %v", lightMaxPitch, rig.Pitch)
	}
	if rig.Radius != lightMaxRadius {
		t.Errorf("Expected radius clamped to %v, got %v", lightMaxRadius, rig.Radius)
	}
	rig.Update(LightInput{Radius: -1}, 100)
	if rig.Radius != lightMinRadius {
		t.Errorf("Expected radius clamped to %v, got %v", lightMinRadius, rig.Radius)
	}

	// Spin keeps orbiting without input
	rig.Update(LightInput{ToggleSpin: true}, 0)
	before := rig.Yaw
	rig.Update(LightInput{}, 1)
	if math.Abs(rig.Yaw-before-lightSpinSpeed) > 1e-12 {
		t.Errorf("Expected spin of %v rad/s, got %v", lightSpinSpeed, rig.Yaw-before)
	}

	rig.Update(LightInput{Reset: true, ToggleSpin: true}, 0)
	if rig.Spin {
		t.Error("Expected spin toggled off")
	}
	if got := rig.Position(); !closeVec(got, DefaultLightOffset) {
		t.Errorf("Expected reset to %v, got %v", DefaultLightOffset, got)
	}
}
