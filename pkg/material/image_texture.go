package material

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/df07/go-voxel-raytracer/pkg/core"
)

// Texture is a decoded, non-premultiplied RGBA8 image
type Texture struct {
	Width  int
	Height int
	Pix    []uint8 // Row-major RGBA: Pix[(y*Width+x)*4 : +4]
}

// NewTexture creates a texture from raw RGBA bytes
func NewTexture(width, height int, pix []uint8) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid texture size %dx%d", width, height)
	}
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("texture data has %d bytes, expected %d", len(pix), width*height*4)
	}
	return &Texture{Width: width, Height: height, Pix: pix}, nil
}

// NewTextureFromImage copies any decoded image into a texture
func NewTextureFromImage(img image.Image) (*Texture, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid texture size %dx%d", width, height)
	}

	pix := make([]uint8, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA)
			i := (y*width + x) * 4
			pix[i] = c.R
			pix[i+1] = c.G
			pix[i+2] = c.B
			pix[i+3] = c.A
		}
	}
	return &Texture{Width: width, Height: height, Pix: pix}, nil
}

// At returns the raw texel at (x, y)
func (t *Texture) At(x, y int) color.NRGBA {
	i := (y*t.Width + x) * 4
	return color.NRGBA{R: t.Pix[i], G: t.Pix[i+1], B: t.Pix[i+2], A: t.Pix[i+3]}
}

// Sample returns the linear color and alpha of the texel nearest to uv.
// UV coordinates wrap, so any real value is valid. V=0 is the bottom row.
func (t *Texture) Sample(uv [2]float64) (core.Vec3, float64) {
	u := uv[0] - math.Floor(uv[0])
	v := uv[1] - math.Floor(uv[1])

	x := int(math.Round(u * float64(t.Width-1)))
	y := int(math.Round((1.0 - v) * float64(t.Height-1)))

	c := t.At(x, y)
	linear := core.NewVec3(LinearFromByte(c.R), LinearFromByte(c.G), LinearFromByte(c.B))
	return linear, float64(c.A) / 255.0
}
