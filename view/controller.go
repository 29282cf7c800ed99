// Package view owns the interactive view state and turns pointer, wheel and
// parameter input into changes of it.
package view

import (
	"fmt"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stewi1014/glmandel/fractal"
)

// Controller is the pan/zoom/box-select state machine.
//
// It is not safe for concurrent use; all input is expected to arrive on one
// goroutine (the UI main loop), and handlers run synchronously on it.
type Controller struct {
	logger bslogger.Logger

	defaults fractal.Snapshot
	limits   Limits
	ceiling  uint32

	view   fractal.View
	params fractal.Params

	width  int
	height int

	state     State
	anchor    mgl64.Vec2
	selection Selection

	handlers []Handler
}

// NewController starts in Idle with the given defaults, which Reset returns to.
func NewController(defaults fractal.Snapshot, limits Limits, ceiling uint32) *Controller {
	if limits.ScaleMin <= 0 || limits.ScaleMax <= limits.ScaleMin {
		limits = DefaultLimits()
	}
	defaults.View.Verify(limits.ScaleMin, limits.ScaleMax)
	defaults.Params.Verify(ceiling)

	return &Controller{
		logger:   bslogger.NewLogger("ViewController", bslogger.Normal, nil),
		defaults: defaults,
		limits:   limits,
		ceiling:  ceiling,
		view:     defaults.View,
		params:   defaults.Params,
		width:    1,
		height:   1,
	}
}

// Subscribe registers h to receive every subsequent Event.
func (c *Controller) Subscribe(h Handler) {
	c.handlers = append(c.handlers, h)
}

func (c *Controller) emit(kind EventKind) {
	e := Event{
		Kind:      kind,
		Snapshot:  c.Snapshot(),
		Selection: c.selection,
		Selecting: c.state == BoxSelecting,
	}
	for _, h := range c.handlers {
		h(e)
	}
}

// Snapshot returns a copy of the current view and parameters.
func (c *Controller) Snapshot() fractal.Snapshot {
	return fractal.Snapshot{
		View:   c.view,
		Params: c.params,
	}
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Limits() Limits {
	return c.limits
}

// Selection returns the active box selection, if any.
func (c *Controller) Selection() (Selection, bool) {
	return c.selection, c.state == BoxSelecting
}

// Resize sets the surface size pointer positions are measured against.
func (c *Controller) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c.width, c.height = width, height
}

// PointerDown starts panning, or box selection when modifier is held.
// It is ignored unless the controller is Idle.
func (c *Controller) PointerDown(x, y float64, modifier bool) {
	if c.state != Idle {
		return
	}

	pos := mgl64.Vec2{x, y}
	if modifier {
		c.state = BoxSelecting
		c.selection = Selection{Start: pos, End: pos}
		c.emit(SelectionChanged)
		return
	}

	c.state = Panning
	c.anchor = pos
}

// PointerMove pans the view or stretches the selection.
func (c *Controller) PointerMove(x, y float64) {
	pos := mgl64.Vec2{x, y}

	switch c.state {
	case Panning:
		d := pos.Sub(c.anchor)
		c.anchor = pos
		if d[0] == 0 && d[1] == 0 {
			return
		}

		// Height scales both axes so panning speed does not depend on direction.
		factor := c.view.Scale / float64(c.height)
		c.view.Center[0] -= d[0] * factor
		c.view.Center[1] += d[1] * factor
		c.emit(ViewChanged)

	case BoxSelecting:
		c.selection.End = pos
		c.emit(SelectionChanged)
	}
}

// PointerUp ends the current gesture. Ending a box selection zooms to it.
func (c *Controller) PointerUp(x, y float64) {
	switch c.state {
	case Panning:
		c.PointerMove(x, y)
		c.state = Idle

	case BoxSelecting:
		c.selection.End = mgl64.Vec2{x, y}
		sel := c.selection
		c.state = Idle
		c.selection = Selection{}

		if c.zoomToSelection(sel) {
			c.emit(ViewChanged)
		}
		c.emit(SelectionChanged)
	}
}

// zoomToSelection reports whether the view changed.
// A box with no extent leaves the view alone.
func (c *Controller) zoomToSelection(sel Selection) bool {
	a := c.view.ScreenToComplex(sel.Start[0], sel.Start[1], c.width, c.height)
	b := c.view.ScreenToComplex(sel.End[0], sel.End[1], c.width, c.height)

	dx := real(b) - real(a)
	dy := imag(b) - imag(a)
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	scale := dx
	if dy > scale {
		scale = dy
	}
	if scale == 0 {
		c.logger.Debug("Ignoring box zoom with no extent")
		return false
	}

	c.view.Center = mgl64.Vec2{
		(real(a) + real(b)) / 2,
		(imag(a) + imag(b)) / 2,
	}
	c.view.Scale = mgl64.Clamp(scale, c.limits.ScaleMin, c.limits.ScaleMax)
	c.logger.Debug(fmt.Sprintf("Box zoom to %v at scale %g", c.view.Center, c.view.Scale))
	return true
}

// Zoom applies one wheel step. Steps during a drag are ignored.
func (c *Controller) Zoom(direction ZoomDirection) {
	if c.state != Idle {
		return
	}

	scale := mgl64.Clamp(c.view.Scale*direction.Factor(), c.limits.ScaleMin, c.limits.ScaleMax)
	if scale == c.view.Scale {
		return
	}
	c.view.Scale = scale
	c.emit(ViewChanged)
}

// Wheel zooms in for negative deltaY and out for positive deltaY.
func (c *Controller) Wheel(deltaY float64) {
	switch {
	case deltaY < 0:
		c.Zoom(ZoomIn)
	case deltaY > 0:
		c.Zoom(ZoomOut)
	}
}

func (c *Controller) SetMaxIterations(n uint32) {
	c.setParams(func(p *fractal.Params) { p.MaxIterations = n })
}

func (c *Controller) SetBrightness(b float64) {
	c.setParams(func(p *fractal.Params) { p.Brightness = b })
}

func (c *Controller) SetContrast(v float64) {
	c.setParams(func(p *fractal.Params) { p.Contrast = v })
}

func (c *Controller) SetColorShift(shift float64) {
	c.setParams(func(p *fractal.Params) { p.ColorShift = shift })
}

func (c *Controller) SetMode(m fractal.Mode) {
	c.setParams(func(p *fractal.Params) { p.Mode = m })
}

// SetParams replaces every render parameter at once.
func (c *Controller) SetParams(params fractal.Params) {
	c.setParams(func(p *fractal.Params) { *p = params })
}

func (c *Controller) setParams(edit func(*fractal.Params)) {
	next := c.params
	edit(&next)
	next.Verify(c.ceiling)
	if next == c.params {
		return
	}
	c.params = next
	c.emit(ParamsChanged)
}

// Reset abandons any gesture and restores the default view and parameters.
func (c *Controller) Reset() {
	c.state = Idle
	c.selection = Selection{}
	c.anchor = mgl64.Vec2{}
	c.view = c.defaults.View
	c.params = c.defaults.Params
	c.logger.Info("View reset to initial state")
	c.emit(Reset)
}
