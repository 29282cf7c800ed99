// Package render runs the Mandelbrot core over whole surfaces on the CPU.
package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"sync"
	"sync/atomic"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/stewi1014/glmandel/fractal"
)

const DefaultChunkSize = 50

// ErrInvalidSurface is returned for surfaces without any pixels.
var ErrInvalidSurface = errors.New("render surface has no area")

// Progress counts rendered pixels. It is safe to read while a render runs.
type Progress struct {
	total atomic.Int64
	done  atomic.Int64
}

func (p *Progress) start(total int) {
	p.done.Store(0)
	p.total.Store(int64(total))
}

func (p *Progress) add(n int) {
	p.done.Add(int64(n))
}

// Fraction returns how much of the render has completed, from 0 to 1.
func (p *Progress) Fraction() float64 {
	if p == nil {
		return 0
	}
	total := p.total.Load()
	if total == 0 {
		return 0
	}
	return math.Min(float64(p.done.Load())/float64(total), 1)
}

// Pipeline maps, evaluates and colours every pixel of a surface.
type Pipeline struct {
	logger    bslogger.Logger
	evaluator fractal.Evaluator
	chunkSize int
}

// NewPipeline returns a pipeline that splits surfaces into chunkSize wide
// column strips, each rendered on its own goroutine.
func NewPipeline(evaluator fractal.Evaluator, chunkSize int) *Pipeline {
	if chunkSize < 1 {
		chunkSize = DefaultChunkSize
	}
	return &Pipeline{
		logger:    bslogger.NewLogger("RenderPipeline", bslogger.Normal, nil),
		evaluator: evaluator,
		chunkSize: chunkSize,
	}
}

func (p *Pipeline) Evaluator() fractal.Evaluator {
	return p.evaluator
}

// Render draws snapshot onto a new width×height image.
//
// The snapshot is copied and its params verified before any work starts.
// If ctx is cancelled the partial image is discarded and the cancel cause
// returned. progress may be nil.
func (p *Pipeline) Render(
	ctx context.Context,
	snapshot fractal.Snapshot,
	width, height int,
	progress *Progress,
) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSurface, width, height)
	}

	snapshot.Params.Verify(p.evaluator.Ceiling)
	if progress == nil {
		progress = &Progress{}
	}
	progress.start(width * height)

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	var wg sync.WaitGroup

	for chunkMin := 0; chunkMin < width; chunkMin += p.chunkSize {
		chunkMax := chunkMin + p.chunkSize
		if chunkMax > width {
			chunkMax = width
		}

		wg.Add(1)
		go func(chunkMin, chunkMax int) {
			defer wg.Done()
			for x := chunkMin; x < chunkMax; x++ {
				if ctx.Err() != nil {
					return
				}

				for y := 0; y < height; y++ {
					r := snapshot.Pixel(p.evaluator, uint32(x), uint32(y), width, height)
					img.SetNRGBA(x, y, fractal.ToNRGBA(fractal.Colour(r, snapshot.Params)))
				}
				progress.add(height)
			}
		}(chunkMin, chunkMax)
	}

	wg.Wait()

	if ctx.Err() != nil {
		return nil, context.Cause(ctx)
	}
	return img, nil
}
