package fractal

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func vecNear(a, b mgl64.Vec3) bool {
	return a.ApproxEqualThreshold(b, 1e-9)
}

func TestGreyscaleEndpoints(t *testing.T) {
	p := DefaultParams()
	p.MaxIterations = 100

	// Grey falls as the iteration count rises, so the set itself is black.
	inSet := Colour(Result{Iterations: 100}, p)
	if !vecNear(inSet, mgl64.Vec3{0, 0, 0}) {
		t.Errorf("in-set colour = %v, want black", inSet)
	}

	fast := Colour(Result{Iterations: 0, Escaped: true}, p)
	if !vecNear(fast, mgl64.Vec3{1, 1, 1}) {
		t.Errorf("iterations=0 colour = %v, want white", fast)
	}

	half := Colour(Result{Iterations: 50, Escaped: true}, p)
	if !vecNear(half, mgl64.Vec3{0.5, 0.5, 0.5}) {
		t.Errorf("iterations=50 colour = %v, want mid grey", half)
	}
}

func TestGreyscaleBrightnessContrast(t *testing.T) {
	tests := []struct {
		iterations uint32
		brightness float64
		contrast   float64
		want       float64
	}{
		{75, 1, 1, 0.25},
		{75, 1, 2, 0},
		{25, 1, 2, 1},
		{50, 0.5, 1, 0.25},
		{50, 1, 0, 0.5},
		{50, 3, 1, 1},
		{0, 1, 0.5, 0.75},
		{100, 0, 1, 0},
	}
	for _, tt := range tests {
		p := Params{MaxIterations: 100, Brightness: tt.brightness, Contrast: tt.contrast}
		got := Colour(Result{Iterations: tt.iterations, Escaped: true}, p)
		if !vecNear(got, mgl64.Vec3{tt.want, tt.want, tt.want}) {
			t.Errorf("grey(it=%d, b=%v, c=%v) = %v, want %v", tt.iterations, tt.brightness, tt.contrast, got, tt.want)
		}
	}
}

func TestHueInSetAlwaysBlack(t *testing.T) {
	for _, shift := range []float64{0, 0.1, 0.25, 0.5, 0.75, 0.999} {
		p := Params{MaxIterations: 200, Brightness: 1, Contrast: 1, ColorShift: shift, Mode: Hue}
		got := Colour(Result{Iterations: 200}, p)
		if got != (mgl64.Vec3{0, 0, 0}) {
			t.Errorf("hue in-set colour with shift %v = %v, want black", shift, got)
		}
	}
}

func TestHueColours(t *testing.T) {
	tests := []struct {
		iterations uint32
		shift      float64
		want       mgl64.Vec3
	}{
		{0, 0, mgl64.Vec3{1, 0, 0}},
		{50, 0, mgl64.Vec3{0, 1, 1}},
		{0, 1.0 / 3, mgl64.Vec3{0, 1, 0}},
		{0, 2.0 / 3, mgl64.Vec3{0, 0, 1}},
		// Shift plus fraction wraps back to red.
		{50, 0.5, mgl64.Vec3{1, 0, 0}},
		{25, 0.0, mgl64.Vec3{0.5, 1, 0}},
	}
	for _, tt := range tests {
		p := Params{MaxIterations: 100, ColorShift: tt.shift, Mode: Hue}
		got := Colour(Result{Iterations: tt.iterations, Escaped: true}, p)
		if !vecNear(got, tt.want) {
			t.Errorf("hue(it=%d, shift=%v) = %v, want %v", tt.iterations, tt.shift, got, tt.want)
		}
	}
}

func TestParamsVerify(t *testing.T) {
	p := Params{
		MaxIterations: 5000,
		Brightness:    -1,
		Contrast:      math.NaN(),
		ColorShift:    1.25,
		Mode:          Mode(7),
	}
	p.Verify(0)

	want := Params{
		MaxIterations: DefaultIterationCeiling,
		Brightness:    0,
		Contrast:      DefaultContrast,
		ColorShift:    0.25,
		Mode:          Greyscale,
	}
	if p != want {
		t.Errorf("Verify gave %+v, want %+v", p, want)
	}

	p = Params{MaxIterations: 0, Brightness: 2, Contrast: 2, ColorShift: -0.25, Mode: Hue}
	p.Verify(100)
	if p.MaxIterations != 1 || p.ColorShift != 0.75 || p.Mode != Hue || p.Brightness != 2 {
		t.Errorf("Verify gave %+v", p)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
		err  bool
	}{
		{"", Greyscale, false},
		{"greyscale", Greyscale, false},
		{"Grayscale", Greyscale, false},
		{" hue ", Hue, false},
		{"rainbow", Greyscale, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if got != tt.want || (err != nil) != tt.err {
			t.Errorf("ParseMode(%q) = %v, %v", tt.in, got, err)
		}
	}
	if Hue.String() != "hue" || Greyscale.String() != "greyscale" {
		t.Errorf("unexpected mode names %q %q", Greyscale, Hue)
	}
}

func TestToNRGBA(t *testing.T) {
	got := ToNRGBA(mgl64.Vec3{1, 0.5, -3})
	want := color.NRGBA{R: 255, G: 128, B: 0, A: 255}
	if got != want {
		t.Errorf("ToNRGBA = %v, want %v", got, want)
	}
}
