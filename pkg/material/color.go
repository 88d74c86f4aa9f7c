package material

import (
	"math"

	"github.com/df07/go-voxel-raytracer/pkg/core"
)

// Gamma is the exponent of the display encoding approximation
const Gamma = 2.2

// linearTable maps 8-bit display-encoded values to linear light
var linearTable = func() [256]float64 {
	var table [256]float64
	for i := range table {
		table[i] = math.Pow(float64(i)/255.0, Gamma)
	}
	return table
}()

// SRGBToLinear converts a display-encoded color to linear light (c^2.2)
func SRGBToLinear(c core.Vec3) core.Vec3 {
	return core.NewVec3(
		math.Pow(c.X, Gamma),
		math.Pow(c.Y, Gamma),
		math.Pow(c.Z, Gamma),
	)
}

// GammaEncode converts linear light back to display encoding (c^(1/2.2))
func GammaEncode(c core.Vec3) core.Vec3 {
	return c.GammaCorrect(Gamma)
}

// LinearFromByte returns the linear value of an 8-bit display-encoded channel
func LinearFromByte(v uint8) float64 {
	return linearTable[v]
}
