package renderer

import (
	"fmt"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-voxel-raytracer/pkg/scene"
)

// Options configures the parallel renderers
type Options struct {
	Workers    int  // Strip count; 0 means GOMAXPROCS
	BruteForce bool // Trace every block instead of the voxel grid
}

// strip is a horizontal band of rows rendered by one worker
type strip struct {
	y0, y1 int
	img    *image.RGBA
}

// workerCount clamps the requested worker count to [1, height]
func workerCount(requested, height int) int {
	workers := requested
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > height {
		workers = height
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// splitStrips divides height rows into strips of ceil(height/workers) rows
func splitStrips(width, height, workers int) []*strip {
	rows := (height + workers - 1) / workers
	strips := make([]*strip, 0, workers)
	for y0 := 0; y0 < height; y0 += rows {
		y1 := min(y0+rows, height)
		strips = append(strips, &strip{
			y0:  y0,
			y1:  y1,
			img: image.NewRGBA(image.Rect(0, 0, width, y1-y0)),
		})
	}
	return strips
}

// renderStrip renders one strip, turning a panic into an error
func (f *frame) renderStrip(st *strip) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rows %d-%d: worker panic: %v", st.y0, st.y1, r)
		}
	}()
	f.renderRows(st.img, st.y0, st.y1)
	return nil
}

// assemble copies strips into one image in row order
func assemble(width, height int, strips []*strip) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for _, st := range strips {
		copy(img.Pix[st.y0*img.Stride:st.y1*img.Stride], st.img.Pix)
	}
	return img
}

// RenderParallel renders one frame on GOMAXPROCS workers
func RenderParallel(s *scene.Scene, width, height int) (*image.RGBA, error) {
	return RenderParallelWithOptions(s, width, height, Options{})
}

// RenderParallelWithOptions splits the frame into horizontal strips, renders
// each on its own goroutine and joins them. Any failed strip fails the frame.
func RenderParallelWithOptions(s *scene.Scene, width, height int, opts Options) (*image.RGBA, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if width == 0 || height == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0)), nil
	}

	f := newFrame(s, width, height, opts.BruteForce)
	strips := splitStrips(width, height, workerCount(opts.Workers, height))

	var g errgroup.Group
	for _, st := range strips {
		st := st
		g.Go(func() error {
			return f.renderStrip(st)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("render frame: %w", err)
	}

	return assemble(width, height, strips), nil
}
