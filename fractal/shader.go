package fractal

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

//go:embed shaders/default.vert
var defaultVertexShader string

//go:embed shaders/mandelbrot.frag
var mandelbrotFragment string

const ceilingDefine = "#define ITERATION_CEILING 3000u"

// Program is a pair of shader sources ready for compilation.
type Program struct {
	Name           string
	VertexShader   string
	FragmentShader string
}

// NewProgram returns the Mandelbrot shaders with the loop bound set to ceiling.
func NewProgram(ceiling uint32) Program {
	return Program{
		Name:           "mandelbrot",
		VertexShader:   defaultVertexShader,
		FragmentShader: FragmentShader(ceiling),
	}
}

// FragmentShader returns the fragment source with its iteration ceiling
// replaced. GLSL loops need a constant bound, so the ceiling is baked in at
// compile time rather than passed as a uniform.
func FragmentShader(ceiling uint32) string {
	if ceiling == 0 {
		ceiling = DefaultIterationCeiling
	}
	return strings.Replace(
		mandelbrotFragment,
		ceilingDefine,
		fmt.Sprintf("#define ITERATION_CEILING %du", ceiling),
		1,
	)
}

// Uniforms mirrors the fragment shader's uniform block.
// The uniform tag names the GLSL variable.
type Uniforms struct {
	Center     mgl64.Vec2 `uniform:"center"`
	Scale      float64    `uniform:"scale"`
	Resolution mgl64.Vec2 `uniform:"resolution"`
	Iterations uint32     `uniform:"iterations"`
	Brightness float64    `uniform:"brightness"`
	Contrast   float64    `uniform:"contrast"`
	ColorShift float64    `uniform:"colorShift"`
	Mode       int32      `uniform:"mode"`
}

func NewUniforms(s Snapshot, width, height int) Uniforms {
	return Uniforms{
		Center:     s.View.Center,
		Scale:      s.View.Scale,
		Resolution: mgl64.Vec2{float64(width), float64(height)},
		Iterations: s.Params.MaxIterations,
		Brightness: s.Params.Brightness,
		Contrast:   s.Params.Contrast,
		ColorShift: s.Params.ColorShift,
		Mode:       int32(s.Params.Mode),
	}
}
