package renderer

import (
	"fmt"
	"image"
	"math"
	"sync"
	"time"

	"github.com/alitto/pond/v2"

	"github.com/df07/go-voxel-raytracer/pkg/core"
	"github.com/df07/go-voxel-raytracer/pkg/scene"
)

// Renderer keeps a worker pool alive across frames. Each frame is split
// into strips exactly like RenderParallel, so both produce the same pixels.
type Renderer struct {
	pool    pond.Pool
	opts    Options
	workers int
	logger  core.Logger

	mu     sync.Mutex // serializes frames
	frames int
}

// NewRenderer creates a persistent renderer. Workers <= 0 uses GOMAXPROCS.
func NewRenderer(opts Options, logger core.Logger) *Renderer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	workers := workerCount(opts.Workers, math.MaxInt)
	logger.Printf("Renderer: starting pool with %d workers\n", workers)
	return &Renderer{
		pool:    pond.NewPool(workers),
		opts:    opts,
		workers: workers,
		logger:  logger,
	}
}

// Workers returns the pool size
func (r *Renderer) Workers() int {
	return r.workers
}

// Render renders one frame of s at width x height on the pool
func (r *Renderer) Render(s *scene.Scene, width, height int) (*image.RGBA, FrameStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if width < 0 || height < 0 {
		return nil, FrameStats{}, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	start := time.Now()
	stats := FrameStats{Width: width, Height: height, Blocks: len(s.Blocks)}
	if width == 0 || height == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0)), stats, nil
	}

	f := newFrame(s, width, height, r.opts.BruteForce)
	strips := splitStrips(width, height, workerCount(r.workers, height))

	group := r.pool.NewGroup()
	for _, st := range strips {
		st := st
		group.SubmitErr(func() error {
			return f.renderStrip(st)
		})
	}
	if err := group.Wait(); err != nil {
		r.logger.Printf("Renderer: frame %d failed: %v\n", r.frames, err)
		return nil, FrameStats{}, fmt.Errorf("render frame: %w", err)
	}

	img := assemble(width, height, strips)
	r.frames++
	stats.Frame = r.frames
	stats.Strips = len(strips)
	stats.Duration = time.Since(start)
	return img, stats, nil
}

// Close stops the pool after in-flight work finishes
func (r *Renderer) Close() {
	r.pool.StopAndWait()
}
