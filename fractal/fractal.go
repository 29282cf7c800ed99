// Package fractal holds the Mandelbrot core shared by the GPU and CPU
// renderers: mapping pixels onto the complex plane, escape-time iteration
// and turning iteration counts into colours.
package fractal

// Snapshot is a copy of everything a render needs. Renders work from a
// snapshot so later edits to the live state never reach an in-flight frame.
type Snapshot struct {
	View   View
	Params Params
}

func DefaultSnapshot() Snapshot {
	return Snapshot{
		View:   DefaultView(),
		Params: DefaultParams(),
	}
}

// Pixel evaluates the centre of one pixel of a width×height surface.
// Params are used as given; callers verify them first.
func (s Snapshot) Pixel(e Evaluator, px, py uint32, width, height int) Result {
	c := s.View.PixelToComplex(px, py, width, height)
	return e.Evaluate(c, s.Params.MaxIterations)
}
