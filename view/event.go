package view

import (
	"fmt"

	"github.com/stewi1014/glmandel/fractal"
)

const (
	// ViewChanged means the centre or scale moved; the fractal needs redrawing.
	ViewChanged EventKind = iota
	// ParamsChanged means a render parameter changed; the fractal needs redrawing.
	ParamsChanged
	// SelectionChanged means only the box-zoom overlay needs redrawing.
	SelectionChanged
	// Reset means view and params were restored to their defaults.
	Reset
)

type EventKind int

func (k EventKind) String() string {
	switch k {
	case ViewChanged:
		return "ViewChanged"
	case ParamsChanged:
		return "ParamsChanged"
	case SelectionChanged:
		return "SelectionChanged"
	case Reset:
		return "Reset"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Redraw reports whether the fractal itself, not just the overlay, changed.
func (k EventKind) Redraw() bool {
	return k != SelectionChanged
}

// Event is sent to subscribers after every state change.
type Event struct {
	Kind     EventKind
	Snapshot fractal.Snapshot

	// Selection is only meaningful while Selecting is true.
	Selection Selection
	Selecting bool
}

type Handler func(Event)
