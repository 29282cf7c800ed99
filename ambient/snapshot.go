// Package ambient publishes a read-only, rate limited view of the explorer's
// state to collaborators such as the ambient audio generator.
package ambient

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stewi1014/glmandel/fractal"
)

// Snapshot is the subset of state ambient collaborators may observe.
type Snapshot struct {
	Center        mgl64.Vec2
	Scale         float64
	MaxIterations uint32
	Brightness    float64
	Contrast      float64
}

func FromSnapshot(s fractal.Snapshot) Snapshot {
	return Snapshot{
		Center:        s.View.Center,
		Scale:         s.View.Scale,
		MaxIterations: s.Params.MaxIterations,
		Brightness:    s.Params.Brightness,
		Contrast:      s.Params.Contrast,
	}
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"center (%.6g, %.6g) scale %.4g iterations %d brightness %.2f contrast %.2f",
		s.Center[0], s.Center[1], s.Scale, s.MaxIterations, s.Brightness, s.Contrast,
	)
}
