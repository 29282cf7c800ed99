package view

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stewi1014/glmandel/fractal"
)

const (
	Idle State = iota
	Panning
	BoxSelecting
)

type State int

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Panning:
		return "Panning"
	case BoxSelecting:
		return "BoxSelecting"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

const (
	ZoomIn ZoomDirection = iota
	ZoomOut
)

type ZoomDirection int

const (
	ZoomInFactor  = 0.9
	ZoomOutFactor = 1.1
)

// Factor is the multiplier applied to the scale for one wheel step.
// The two factors are not inverses: one step in and one step out leaves the
// scale multiplied by 0.99.
func (d ZoomDirection) Factor() float64 {
	if d == ZoomIn {
		return ZoomInFactor
	}
	return ZoomOutFactor
}

// Selection is a box-zoom rectangle in screen coordinates.
type Selection struct {
	Start mgl64.Vec2
	End   mgl64.Vec2
}

// Bounds returns the top left corner and size of the selection.
func (s Selection) Bounds() (min mgl64.Vec2, size mgl64.Vec2) {
	min = mgl64.Vec2{math.Min(s.Start[0], s.End[0]), math.Min(s.Start[1], s.End[1])}
	size = mgl64.Vec2{math.Abs(s.End[0] - s.Start[0]), math.Abs(s.End[1] - s.Start[1])}
	return min, size
}

// Limits bounds the scale a view may reach.
type Limits struct {
	ScaleMin float64
	ScaleMax float64
}

func DefaultLimits() Limits {
	return Limits{
		ScaleMin: fractal.DefaultScaleMin,
		ScaleMax: fractal.DefaultScaleMax,
	}
}
