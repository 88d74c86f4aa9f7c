package material

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-voxel-raytracer/pkg/core"
)

func newTestTexture(t *testing.T, width, height int, texels []color.NRGBA) *Texture {
	t.Helper()
	pix := make([]uint8, 0, len(texels)*4)
	for _, c := range texels {
		pix = append(pix, c.R, c.G, c.B, c.A)
	}
	tex, err := NewTexture(width, height, pix)
	if err != nil {
		t.Fatalf("NewTexture failed: %v", err)
	}
	return tex
}

// TestTextureSample tests nearest texel lookup with the V flip
func TestTextureSample(t *testing.T) {
	// Layout:
	//   white black   (row 0, top of image, v=1)
	//   black white   (row 1, bottom of image, v=0)
	white := color.NRGBA{255, 255, 255, 255}
	black := color.NRGBA{0, 0, 0, 255}
	tex := newTestTexture(t, 2, 2, []color.NRGBA{white, black, black, white})

	tests := []struct {
		name     string
		uv       [2]float64
		expected core.Vec3
	}{
		{"bottom left", [2]float64{0.1, 0.1}, core.NewVec3(0, 0, 0)},
		{"bottom right", [2]float64{0.9, 0.1}, core.NewVec3(1, 1, 1)},
		{"top left", [2]float64{0.1, 0.9}, core.NewVec3(1, 1, 1)},
		{"top right", [2]float64{0.9, 0.9}, core.NewVec3(0, 0, 0)},
		{"wrapped positive", [2]float64{1.1, 2.1}, core.NewVec3(0, 0, 0)},
		{"wrapped negative", [2]float64{-0.9, -0.9}, core.NewVec3(0, 0, 0)},
		{"wrapped negative top", [2]float64{-0.9, -0.1}, core.NewVec3(1, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, a := tex.Sample(tt.uv)
			if c != tt.expected {
				t.Errorf("Sample(%v): expected %v, got %v", tt.uv, tt.expected, c)
			}
			if a != 1.0 {
				t.Errorf("Sample(%v): expected alpha 1, got %v", tt.uv, a)
			}
		})
	}
}

func TestTextureSampleLinearAndAlpha(t *testing.T) {
	tex := newTestTexture(t, 1, 1, []color.NRGBA{{128, 64, 0, 51}})

	c, a := tex.Sample([2]float64{0.5, 0.5})
	if c.X != math.Pow(128.0/255.0, Gamma) {
		t.Errorf("Expected red %v, got %v", math.Pow(128.0/255.0, Gamma), c.X)
	}
	if c.Y != math.Pow(64.0/255.0, Gamma) {
		t.Errorf("Expected green %v, got %v", math.Pow(64.0/255.0, Gamma), c.Y)
	}
	if c.Z != 0 {
		t.Errorf("Expected blue 0, got %v", c.Z)
	}
	if math.Abs(a-0.2) > 1e-12 {
		t.Errorf("Expected alpha 0.2, got %v", a)
	}
}

func TestNewTextureValidation(t *testing.T) {
	if _, err := NewTexture(0, 4, nil); err == nil {
		t.Error("Expected error for zero width")
	}
	if _, err := NewTexture(2, 2, make([]uint8, 15)); err == nil {
		t.Error("Expected error for short pixel data")
	}
}

func TestNewTextureFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{10, 20, 30, 255})
	img.SetNRGBA(1, 0, color.NRGBA{200, 100, 50, 128})

	tex, err := NewTextureFromImage(img)
	if err != nil {
		t.Fatalf("NewTextureFromImage failed: %v", err)
	}
	if tex.Width != 2 || tex.Height != 1 {
		t.Fatalf("Expected 2x1 texture, got %dx%d", tex.Width, tex.Height)
	}
	if got := tex.At(1, 0); got != (color.NRGBA{200, 100, 50, 128}) {
		t.Errorf("Expected non-premultiplied texel, got %v", got)
	}
}
