package shading

import (
	"fmt"
	"strings"
)

// Lighting holds the constants of the local shading model
type Lighting struct {
	Ambient         float64 // Ambient fraction of the base color for blocks
	FloorAmbient    float64 // Ambient fraction for the floor plane
	WrapK           float64 // Wrapped Lambert softening
	ShadowEpsilon   float64 // Normal offset of shadow ray origins
	ReflectEpsilon  float64 // Offset of reflection ray origins along the reflected direction
	FresnelF0       float64 // Base reflectance of water
	CutoutThreshold float64 // Leaf texels below this alpha are invisible to primary and reflection rays
	DitherScale     float64 // UV scale of the leaf shadow dither hash
}

// DefaultLighting returns the standard lighting constants
func DefaultLighting() Lighting {
	return Lighting{
		Ambient:         0.12,
		FloorAmbient:    0.10,
		WrapK:           0.25,
		ShadowEpsilon:   1e-3,
		ReflectEpsilon:  1e-3,
		FresnelF0:       0.02,
		CutoutThreshold: 0.1,
		DitherScale:     64,
	}
}

// WrappedDiffuse is Lambert with the terminator pushed past 90 degrees
func (l Lighting) WrappedDiffuse(nDotL float64) float64 {
	return clamp01((nDotL + l.WrapK) / (1.0 + l.WrapK))
}

// FresnelSchlick returns F0 + (1-F0)(1-cos)^5
func FresnelSchlick(cosTheta, f0 float64) float64 {
	m := 1.0 - cosTheta
	return f0 + (1.0-f0)*m*m*m*m*m
}

// WaterMode selects how water reflections are computed
type WaterMode int

const (
	WaterOff         WaterMode = iota // No reflection
	WaterSkyOnly                      // Reflect the sky only
	WaterReflectOnce                  // Trace one reflection ray into the scene
)

var waterModeNames = []string{"off", "sky", "reflect"}

func (m WaterMode) String() string {
	if m >= 0 && int(m) < len(waterModeNames) {
		return waterModeNames[m]
	}
	return fmt.Sprintf("WaterMode(%d)", int(m))
}

// Next cycles to the following mode, wrapping after ReflectOnce
func (m WaterMode) Next() WaterMode {
	return (m + 1) % WaterMode(len(waterModeNames))
}

// ParseWaterMode parses a mode name ("off", "sky", "reflect")
func ParseWaterMode(s string) (WaterMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none":
		return WaterOff, nil
	case "sky", "skyonly":
		return WaterSkyOnly, nil
	case "reflect", "reflectonce", "once":
		return WaterReflectOnce, nil
	}
	return WaterOff, fmt.Errorf("unknown water mode %q", s)
}
