package fractal

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultScaleMin = 1e-5
	DefaultScaleMax = 10.0
	DefaultScale    = 3.0
)

// DefaultCenter is the middle of the initial view.
var DefaultCenter = mgl64.Vec2{-0.5, 0}

// View is the visible window onto the complex plane.
//
// Scale is the width of the plane shown across each axis of the surface.
// Both axes are stretched to the surface, so a non-square surface shows a
// non-square region. Below roughly DefaultScaleMin neighbouring pixels start
// to collapse onto the same float64 value.
type View struct {
	Center mgl64.Vec2
	Scale  float64
}

func DefaultView() View {
	return View{
		Center: DefaultCenter,
		Scale:  DefaultScale,
	}
}

// Verify clamps Scale into [min, max].
func (v *View) Verify(min, max float64) {
	if math.IsNaN(v.Scale) || v.Scale <= 0 {
		v.Scale = DefaultScale
	}
	if math.IsNaN(v.Center[0]) || math.IsInf(v.Center[0], 0) {
		v.Center[0] = DefaultCenter[0]
	}
	if math.IsNaN(v.Center[1]) || math.IsInf(v.Center[1], 0) {
		v.Center[1] = DefaultCenter[1]
	}
	v.Scale = mgl64.Clamp(v.Scale, min, max)
}

// ScreenToComplex maps a position on a width×height surface to the plane.
// Screen y grows downwards while the imaginary axis grows upwards.
func (v View) ScreenToComplex(x, y float64, width, height int) complex128 {
	re := (x/float64(width)-0.5)*v.Scale + v.Center[0]
	im := (0.5-y/float64(height))*v.Scale + v.Center[1]
	return complex(re, im)
}

// ComplexToScreen is the inverse of ScreenToComplex.
func (v View) ComplexToScreen(c complex128, width, height int) (x, y float64) {
	x = ((real(c)-v.Center[0])/v.Scale + 0.5) * float64(width)
	y = (0.5 - (imag(c)-v.Center[1])/v.Scale) * float64(height)
	return x, y
}

// PixelToComplex samples the centre of pixel (px, py), the same point
// gl_FragCoord refers to in the fragment shader.
func (v View) PixelToComplex(px, py uint32, width, height int) complex128 {
	return v.ScreenToComplex(float64(px)+0.5, float64(py)+0.5, width, height)
}
