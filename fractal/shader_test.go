package fractal

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestFragmentShaderCeiling(t *testing.T) {
	src := FragmentShader(0)
	if !strings.Contains(src, "#define ITERATION_CEILING 3000u") {
		t.Error("default fragment shader lost its ceiling define")
	}

	src = FragmentShader(512)
	if !strings.Contains(src, "#define ITERATION_CEILING 512u") {
		t.Error("fragment shader ceiling was not replaced")
	}
	if strings.Contains(src, "3000u") {
		t.Error("fragment shader still references the default ceiling")
	}
}

func TestProgramSources(t *testing.T) {
	p := NewProgram(DefaultIterationCeiling)
	if !strings.Contains(p.VertexShader, "in vec2 vert;") {
		t.Error("vertex shader does not declare the vert attribute")
	}
	for _, name := range []string{"center", "scale", "resolution", "iterations", "brightness", "contrast", "colorShift", "mode"} {
		if !strings.Contains(p.FragmentShader, " "+name+";") {
			t.Errorf("fragment shader has no uniform %q", name)
		}
	}
}

func TestNewUniforms(t *testing.T) {
	s := Snapshot{
		View:   View{Center: mgl64.Vec2{0.1, 0.2}, Scale: 0.5},
		Params: Params{MaxIterations: 300, Brightness: 1.5, Contrast: 0.5, ColorShift: 0.3, Mode: Hue},
	}
	u := NewUniforms(s, 640, 480)
	want := Uniforms{
		Center:     mgl64.Vec2{0.1, 0.2},
		Scale:      0.5,
		Resolution: mgl64.Vec2{640, 480},
		Iterations: 300,
		Brightness: 1.5,
		Contrast:   0.5,
		ColorShift: 0.3,
		Mode:       1,
	}
	if u != want {
		t.Errorf("NewUniforms = %+v, want %+v", u, want)
	}
}
