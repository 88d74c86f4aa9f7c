package renderer

import (
	"errors"
	"image"

	"github.com/df07/go-voxel-raytracer/pkg/core"
	"github.com/df07/go-voxel-raytracer/pkg/geometry"
	"github.com/df07/go-voxel-raytracer/pkg/scene"
	"github.com/df07/go-voxel-raytracer/pkg/shading"
	"github.com/df07/go-voxel-raytracer/pkg/world"
)

// ErrInvalidSize is returned for negative frame dimensions
var ErrInvalidSize = errors.New("invalid frame size")

// frame holds everything computed once per frame and shared read-only by
// all workers
type frame struct {
	width  int
	height int
	basis  geometry.CameraBasis
	shader *shading.Shader
}

// newFrame builds the camera basis and the tracer for one frame. The
// frame's aspect ratio replaces the camera's.
func newFrame(s *scene.Scene, width, height int, bruteForce bool) *frame {
	cam := s.Camera
	if width > 0 && height > 0 {
		cam.Aspect = float64(width) / float64(height)
	}

	var tracer world.Tracer
	if bruteForce {
		tracer = world.BlockList(s.Blocks)
	} else {
		tracer = world.BuildGrid(s.Blocks)
	}

	return &frame{
		width:  width,
		height: height,
		basis:  geometry.NewCameraBasis(cam),
		shader: s.Shader(tracer),
	}
}

// renderRows shades rows [y0, y1) into dst. dst row 0 is frame row y0.
func (f *frame) renderRows(dst *image.RGBA, y0, y1 int) {
	for y := y0; y < y1; y++ {
		row := dst.Pix[(y-y0)*dst.Stride:]
		for x := 0; x < f.width; x++ {
			c := f.shader.Primary(f.basis.PrimaryRay(x, y, f.width, f.height))
			i := x * 4
			row[i+0] = toByte(c.X)
			row[i+1] = toByte(c.Y)
			row[i+2] = toByte(c.Z)
			row[i+3] = 255
		}
	}
}

// toByte packs a display-space channel
func toByte(v float64) uint8 {
	return uint8(core.Clamp01(v) * 255)
}

// Render renders one frame on the calling goroutine. It is the reference
// every parallel path must match byte for byte. Non-positive sizes give
// an empty image.
func Render(s *scene.Scene, width, height int) *image.RGBA {
	if width <= 0 || height <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	f := newFrame(s, width, height, false)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	f.renderRows(img, 0, height)
	return img
}
