package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/stewi1014/glmandel/fractal"
)

// ErrSuperseded is the cancel cause of a render replaced by a newer one.
var ErrSuperseded = errors.New("render superseded by a newer request")

// ErrSchedulerClosed is the cancel cause of renders abandoned by Close.
var ErrSchedulerClosed = errors.New("render scheduler closed")

// Scheduler runs interactive renders one after another, keeping only the
// newest. Scheduling a render cancels the one in flight, and only the newest
// finished image is handed to the deliver callback.
type Scheduler struct {
	pipeline *Pipeline
	deliver  func(*image.NRGBA, fractal.Snapshot)

	ctx  context.Context
	quit context.CancelCauseFunc

	mutex      sync.Mutex
	generation uint64
	cancel     context.CancelCauseFunc
	wg         sync.WaitGroup
}

// NewScheduler delivers finished renders on the rendering goroutine; deliver
// must hand off to the UI thread itself if it needs one. deliver runs with
// the scheduler locked, so it must return quickly and must not call Schedule.
func NewScheduler(
	ctx context.Context,
	pipeline *Pipeline,
	deliver func(*image.NRGBA, fractal.Snapshot),
) *Scheduler {
	ctx, quit := context.WithCancelCause(ctx)
	return &Scheduler{
		pipeline: pipeline,
		deliver:  deliver,
		ctx:      ctx,
		quit:     quit,
	}
}

// Schedule starts rendering snapshot at width×height, abandoning any render
// still in progress.
func (s *Scheduler) Schedule(snapshot fractal.Snapshot, width, height int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.ctx.Err() != nil {
		return
	}
	if s.cancel != nil {
		s.cancel(ErrSuperseded)
	}

	s.generation++
	generation := s.generation
	ctx, cancel := context.WithCancelCause(s.ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel(nil)

		img, err := s.pipeline.Render(ctx, snapshot, width, height, nil)
		if err != nil {
			if !errors.Is(err, ErrSuperseded) && !errors.Is(err, ErrSchedulerClosed) {
				s.pipeline.logger.Warning(fmt.Sprintf("Interactive render failed: %s", err))
			}
			return
		}

		// No Schedule may run between the generation check and deliver.
		s.mutex.Lock()
		defer s.mutex.Unlock()
		if generation == s.generation {
			s.deliver(img, snapshot)
		}
	}()
}

// Close abandons any render in progress and waits for it to stop.
func (s *Scheduler) Close() {
	s.quit(ErrSchedulerClosed)
	s.wg.Wait()
}
