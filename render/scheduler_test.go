package render

import (
	"context"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/stewi1014/glmandel/fractal"
)

type delivery struct {
	img      *image.NRGBA
	snapshot fractal.Snapshot
}

func TestSchedulerDeliversNewest(t *testing.T) {
	deliveries := make(chan delivery, 16)
	s := NewScheduler(context.Background(), NewPipeline(fractal.Evaluator{}, 0), func(img *image.NRGBA, snapshot fractal.Snapshot) {
		deliveries <- delivery{img, snapshot}
	})
	defer s.Close()

	base := testSnapshot()
	var last fractal.Snapshot
	for i := 0; i < 10; i++ {
		last = base
		last.Params.MaxIterations = uint32(10 + i)
		s.Schedule(last, 64, 64)
	}

	timeout := time.After(10 * time.Second)
	for {
		select {
		case d := <-deliveries:
			if d.img == nil {
				t.Fatal("delivered a nil image")
			}
			if d.snapshot == last {
				return
			}
		case <-timeout:
			t.Fatal("newest render was never delivered")
		}
	}
}

func TestSchedulerSuperseded(t *testing.T) {
	var mutex sync.Mutex
	var delivered []fractal.Snapshot

	s := NewScheduler(context.Background(), NewPipeline(fractal.Evaluator{}, 0), func(img *image.NRGBA, snapshot fractal.Snapshot) {
		mutex.Lock()
		delivered = append(delivered, snapshot)
		mutex.Unlock()
	})

	slow := testSnapshot()
	slow.View.Scale = 0.01
	slow.Params.MaxIterations = fractal.DefaultIterationCeiling
	slow.View.Center[0] = -0.1
	s.Schedule(slow, 1500, 1500)

	fast := testSnapshot()
	s.Schedule(fast, 8, 8)
	s.Close()

	mutex.Lock()
	defer mutex.Unlock()
	for _, d := range delivered {
		if d == slow {
			t.Error("superseded render was delivered")
		}
	}
}

func TestSchedulerClosed(t *testing.T) {
	called := false
	s := NewScheduler(context.Background(), NewPipeline(fractal.Evaluator{}, 0), func(*image.NRGBA, fractal.Snapshot) {
		called = true
	})
	s.Close()
	s.Schedule(testSnapshot(), 8, 8)
	s.Close()
	if called {
		t.Error("closed scheduler delivered a render")
	}
}

func TestSchedulerDeliveryBlocksNewerSchedule(t *testing.T) {
	entered := make(chan struct{}, 1)
	release := make(chan struct{})

	var mutex sync.Mutex
	var delivered []fractal.Snapshot

	first := testSnapshot()
	second := testSnapshot()
	second.Params.MaxIterations = 32

	s := NewScheduler(context.Background(), NewPipeline(fractal.Evaluator{}, 0), func(img *image.NRGBA, snapshot fractal.Snapshot) {
		if snapshot == first {
			entered <- struct{}{}
			<-release
		}
		mutex.Lock()
		delivered = append(delivered, snapshot)
		mutex.Unlock()
	})
	defer s.Close()

	s.Schedule(first, 16, 16)
	select {
	case <-entered:
	case <-time.After(10 * time.Second):
		t.Fatal("first render was never delivered")
	}

	scheduled := make(chan struct{})
	go func() {
		s.Schedule(second, 16, 16)
		close(scheduled)
	}()

	select {
	case <-scheduled:
		t.Fatal("Schedule returned while an older delivery was in progress")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-scheduled

	deadline := time.After(10 * time.Second)
	for {
		mutex.Lock()
		got := append([]fractal.Snapshot(nil), delivered...)
		mutex.Unlock()

		if len(got) == 2 {
			if got[0] != first || got[1] != second {
				t.Fatalf("delivered %+v, want the first render then the second", got)
			}
			return
		}
		select {
		case <-deadline:
			t.Fatalf("delivered %d renders, want 2", len(got))
		case <-time.After(5 * time.Millisecond):
		}
	}
}
