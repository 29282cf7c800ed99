package fractal

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

func TestScreenToComplexCorners(t *testing.T) {
	v := View{Center: mgl64.Vec2{-0.5, 0}, Scale: 3}

	tests := []struct {
		x, y   float64
		re, im float64
	}{
		{0, 0, -2, 1.5},
		{800, 600, 1, -1.5},
		{400, 300, -0.5, 0},
		{800, 0, 1, 1.5},
	}
	for _, tt := range tests {
		got := v.ScreenToComplex(tt.x, tt.y, 800, 600)
		if math.Abs(real(got)-tt.re) > epsilon || math.Abs(imag(got)-tt.im) > epsilon {
			t.Errorf("ScreenToComplex(%v, %v) = %v, want (%v%+vi)", tt.x, tt.y, got, tt.re, tt.im)
		}
	}
}

func TestComplexToScreenRoundTrip(t *testing.T) {
	views := []View{
		DefaultView(),
		{Center: mgl64.Vec2{0.3, -0.7}, Scale: 0.01},
		{Center: mgl64.Vec2{-1.25, 0.02}, Scale: DefaultScaleMin},
		{Center: mgl64.Vec2{2, 2}, Scale: DefaultScaleMax},
	}
	sizes := [][2]int{{1, 1}, {640, 480}, {3000, 3000}, {17, 311}}

	for _, v := range views {
		for _, size := range sizes {
			w, h := size[0], size[1]
			for _, p := range [][2]float64{{0, 0}, {float64(w), float64(h)}, {float64(w) / 3, float64(h) / 7}} {
				c := v.ScreenToComplex(p[0], p[1], w, h)
				x, y := v.ComplexToScreen(c, w, h)

				tol := 1e-6 * math.Max(1, float64(w+h))
				if math.Abs(x-p[0]) > tol || math.Abs(y-p[1]) > tol {
					t.Errorf("round trip of (%v, %v) on %vx%v with %+v gave (%v, %v)", p[0], p[1], w, h, v, x, y)
				}
			}
		}
	}
}

func TestPixelToComplexSamplesPixelCentre(t *testing.T) {
	v := View{Center: mgl64.Vec2{0, 0}, Scale: 2}

	// 2x2 surface: pixel centres sit a quarter of the way in from each edge.
	got := v.PixelToComplex(0, 0, 2, 2)
	if want := complex(-0.5, 0.5); got != want {
		t.Errorf("PixelToComplex(0, 0) = %v, want %v", got, want)
	}
	got = v.PixelToComplex(1, 1, 2, 2)
	if want := complex(0.5, -0.5); got != want {
		t.Errorf("PixelToComplex(1, 1) = %v, want %v", got, want)
	}
}

func TestMappingIndependentOfResolution(t *testing.T) {
	v := View{Center: mgl64.Vec2{-0.75, 0.1}, Scale: 0.5}

	// The centre of pixel (1, 1) at 3x3 covers the same point as pixel (4, 4) at 9x9.
	small := v.PixelToComplex(1, 1, 3, 3)
	large := v.PixelToComplex(4, 4, 9, 9)
	if math.Abs(real(small)-real(large)) > epsilon || math.Abs(imag(small)-imag(large)) > epsilon {
		t.Errorf("pixel centres differ across resolutions: %v vs %v", small, large)
	}
}

func TestViewVerify(t *testing.T) {
	tests := []struct {
		in   View
		want float64
	}{
		{View{Scale: 3}, 3},
		{View{Scale: 1e-9}, DefaultScaleMin},
		{View{Scale: 50}, DefaultScaleMax},
		{View{Scale: 0}, DefaultScale},
		{View{Scale: -2}, DefaultScale},
		{View{Scale: math.NaN()}, DefaultScale},
	}
	for _, tt := range tests {
		v := tt.in
		v.Verify(DefaultScaleMin, DefaultScaleMax)
		if v.Scale != tt.want {
			t.Errorf("Verify(%v).Scale = %v, want %v", tt.in.Scale, v.Scale, tt.want)
		}
	}

	v := View{Center: mgl64.Vec2{math.NaN(), math.Inf(1)}, Scale: 1}
	v.Verify(DefaultScaleMin, DefaultScaleMax)
	if v.Center != DefaultCenter {
		t.Errorf("Verify did not reset a non-finite centre: %v", v.Center)
	}
}
