package fractal

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	Greyscale Mode = iota
	Hue
)

// Mode selects how iteration counts become colours.
type Mode int32

func (m Mode) String() string {
	switch m {
	case Greyscale:
		return "greyscale"
	case Hue:
		return "hue"
	}
	return fmt.Sprintf("Mode(%d)", int32(m))
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "greyscale", "grayscale", "grey", "gray":
		return Greyscale, nil
	case "hue", "colour", "color":
		return Hue, nil
	}
	return Greyscale, fmt.Errorf("unknown colour mode %q", s)
}

const (
	DefaultMaxIterations uint32 = 50
	DefaultBrightness           = 1.0
	DefaultContrast             = 1.0
)

// Params are the user adjustable render parameters.
type Params struct {
	MaxIterations uint32
	Brightness    float64
	Contrast      float64
	ColorShift    float64
	Mode          Mode
}

func DefaultParams() Params {
	return Params{
		MaxIterations: DefaultMaxIterations,
		Brightness:    DefaultBrightness,
		Contrast:      DefaultContrast,
		ColorShift:    0,
		Mode:          Greyscale,
	}
}

// Verify pulls every field back into its valid range.
// A ceiling of zero means DefaultIterationCeiling.
func (p *Params) Verify(ceiling uint32) {
	p.MaxIterations = Evaluator{Ceiling: ceiling}.Clamp(p.MaxIterations)

	if math.IsNaN(p.Brightness) {
		p.Brightness = DefaultBrightness
	}
	p.Brightness = math.Max(p.Brightness, 0)

	if math.IsNaN(p.Contrast) {
		p.Contrast = DefaultContrast
	}
	p.Contrast = math.Max(p.Contrast, 0)

	if math.IsNaN(p.ColorShift) || math.IsInf(p.ColorShift, 0) {
		p.ColorShift = 0
	}
	p.ColorShift = wrapUnit(p.ColorShift)

	if p.Mode != Greyscale && p.Mode != Hue {
		p.Mode = Greyscale
	}
}

// wrapUnit maps x into [0, 1).
func wrapUnit(x float64) float64 {
	x -= math.Floor(x)
	if x >= 1 {
		x = 0
	}
	return x
}

// Colour maps an escape result to an RGB triple with channels in [0, 1].
func Colour(r Result, p Params) mgl64.Vec3 {
	max := p.MaxIterations
	if max == 0 {
		max = 1
	}
	f := float64(r.Iterations) / float64(max)

	if p.Mode == Hue {
		return hueColour(f, p.ColorShift)
	}
	return greyColour(f, p.Brightness, p.Contrast)
}

func greyColour(f, brightness, contrast float64) mgl64.Vec3 {
	grey := 1 - f
	grey = (grey-0.5)*contrast + 0.5
	grey *= brightness
	grey = mgl64.Clamp(grey, 0, 1)
	return mgl64.Vec3{grey, grey, grey}
}

// hueColour renders points that reached the cap black.
func hueColour(f, shift float64) mgl64.Vec3 {
	value := 0.0
	if f < 1 {
		value = 1
	}
	hue := wrapUnit(shift + f)
	c := colorful.Hsv(hue*360, 1, value)
	return mgl64.Vec3{c.R, c.G, c.B}
}

// ToNRGBA converts a [0, 1] colour to 8 bits per channel.
func ToNRGBA(c mgl64.Vec3) color.NRGBA {
	return color.NRGBA{
		R: uint8(math.Round(mgl64.Clamp(c[0], 0, 1) * 255)),
		G: uint8(math.Round(mgl64.Clamp(c[1], 0, 1) * 255)),
		B: uint8(math.Round(mgl64.Clamp(c[2], 0, 1) * 255)),
		A: 0xff,
	}
}
