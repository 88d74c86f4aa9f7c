package renderer

import (
	"image"
	"time"
)

// FrameStats describes one rendered frame
type FrameStats struct {
	Frame    int           // 1-based frame counter of the Renderer
	Width    int           // Frame width in pixels
	Height   int           // Frame height in pixels
	Strips   int           // Number of strips the frame was split into
	Blocks   int           // Blocks in the snapshot
	Duration time.Duration // Wall time of the render call
}

// Pixels returns the number of pixels in the frame
func (fs FrameStats) Pixels() int {
	return fs.Width * fs.Height
}

// FPS returns the frame rate implied by Duration
func (fs FrameStats) FPS() float64 {
	if fs.Duration <= 0 {
		return 0
	}
	return float64(time.Second) / float64(fs.Duration)
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of img in [0,1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if n == 0 {
		return 0
	}

	total := 0.0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride:]
		for x := 0; x < b.Dx(); x++ {
			i := x * 4
			r := float64(row[i]) / 255.0
			g := float64(row[i+1]) / 255.0
			bl := float64(row[i+2]) / 255.0
			total += 0.2126*r + 0.7152*g + 0.0722*bl
		}
	}
	return total / float64(n)
}
