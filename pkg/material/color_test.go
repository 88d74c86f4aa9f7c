package material

import (
	"math"
	"testing"

	"github.com/df07/go-voxel-raytracer/pkg/core"
)

func TestGammaRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 0.01, 0.2, 0.5, 0.73, 1} {
		c := core.NewVec3(v, v*0.5, 1-v)
		got := GammaEncode(SRGBToLinear(c))
		if math.Abs(got.X-c.X) > 1e-9 || math.Abs(got.Y-c.Y) > 1e-9 || math.Abs(got.Z-c.Z) > 1e-9 {
			t.Errorf("Round trip of %v gave %v", c, got)
		}
	}
}

func TestLinearTableMatchesPow(t *testing.T) {
	for i := 0; i < 256; i++ {
		expected := SRGBToLinear(core.NewVec3(float64(i)/255.0, 0, 0)).X
		if got := LinearFromByte(uint8(i)); got != expected {
			t.Errorf("LinearFromByte(%d) = %v, expected %v", i, got, expected)
		}
	}
}
