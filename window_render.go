package main

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/glmandel/fractal"
	"github.com/stewi1014/glmandel/view"
)

const selectionLineWidth = 2

var selectionColour = mgl32.Vec4{1, 0.8, 0, 1}

func NewRenderWindow(app *Application) *RenderWindow {
	var err error
	w := &RenderWindow{
		app:         app,
		scaleFactor: 1,
	}

	w.ApplicationWindow, err = gtk.ApplicationWindowNew(app.Application)
	if err != nil {
		app.quit(fmt.Errorf("gtk.ApplicationWindowNew: %w", err))
		return nil
	}

	w.SetDefaultSize(getWindowSize())

	w.gla, err = gtk.GLAreaNew()
	if err != nil {
		app.quit(fmt.Errorf("gtk.GLAreaNew: %w", err))
		return nil
	}

	w.gla.SetRequiredVersion(4, 6)
	w.gla.Connect("realize", w.glaRealize)
	w.gla.Connect("render", w.glaRender)
	w.gla.Connect("unrealize", w.glaUnrealize)

	w.gla.SetEvents(
		int(gdk.BUTTON_PRESS_MASK) |
			int(gdk.BUTTON_RELEASE_MASK) |
			int(gdk.POINTER_MOTION_MASK) |
			int(gdk.SCROLL_MASK),
	)
	w.gla.Connect("resize", w.resize)
	w.gla.Connect("scroll-event", w.scroll)
	w.gla.Connect("button-press-event", w.button)
	w.gla.Connect("button-release-event", w.button)
	w.gla.Connect("motion-notify-event", w.motion)
	w.Connect("key-press-event", w.key)

	app.controller.Subscribe(func(e view.Event) {
		w.gla.QueueRender()
	})

	w.Add(w.gla)
	w.ShowAll()

	return w
}

func getWindowSize() (width, height int) {
	width = 1200
	height = 800

	display, err := gdk.DisplayGetDefault()
	if err != nil {
		return
	}

	monitor, err := display.GetPrimaryMonitor()
	if err != nil {
		return
	}

	width = int(float32(monitor.GetGeometry().GetWidth()) * .6)
	height = int(float32(monitor.GetGeometry().GetHeight()) * .6)
	return
}

// RenderWindow draws the live view on the GPU and feeds pointer input to the
// controller.
type RenderWindow struct {
	*gtk.ApplicationWindow
	gla *gtk.GLArea
	app *Application

	// Framebuffer size. Pointer events arrive in logical pixels, which are
	// scaleFactor times smaller on HiDPI displays.
	width       int
	height      int
	scaleFactor int

	vao              uint32
	vbo              uint32
	program          uint32
	vertexAttrib     uint32
	uniformLocations map[string]int32

	uniforms fractal.Uniforms
}

func glDebugMessage(
	source,
	gltype,
	id,
	severity uint32,
	length int32,
	message string,
	user unsafe.Pointer,
) {
	severityStr := "unknown"
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		severityStr = "high"
	case gl.DEBUG_SEVERITY_LOW:
		severityStr = "low"
	case gl.DEBUG_SEVERITY_MEDIUM:
		severityStr = "medium"
	}

	typeStr := "unknownType"
	switch gltype {
	case gl.DEBUG_TYPE_ERROR:
		typeStr = "error"
	case gl.DEBUG_TYPE_PERFORMANCE:
		typeStr = "performance"
	case gl.DEBUG_TYPE_PORTABILITY:
		typeStr = "portability"
	case gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:
		typeStr = "undefinedBehavior"
	}

	msg := fmt.Sprintf("gl(%v): %v; %v", severityStr, typeStr, message)
	if gltype == gl.DEBUG_TYPE_ERROR {
		logger.Error(msg)
	} else {
		logger.Debug(msg)
	}
}

func (w *RenderWindow) glaRealize(gla *gtk.GLArea) {
	gla.MakeCurrent()

	err := gl.Init()
	if err != nil {
		w.app.quit(fmt.Errorf("gl.Init: %w", err))
		return
	}
	logger.Info(fmt.Sprintf("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION))))

	gl.DebugMessageCallback(glDebugMessage, nil)
	if glDebug {
		gl.Enable(gl.DEBUG_OUTPUT)
	}

	// One triangle that covers the whole viewport.
	verticies := []float32{
		-3, -2,
		0, 3,
		3, -2,
	}

	gl.GenVertexArrays(1, &w.vao)
	gl.BindVertexArray(w.vao)

	gl.GenBuffers(1, &w.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verticies)*4, gl.Ptr(verticies), gl.STATIC_DRAW)

	err = w.loadProgram(fractal.NewProgram(w.app.settings.IterationCeiling))
	if err != nil {
		w.app.quit(err)
	}
}

func (w *RenderWindow) glaRender(gla *gtk.GLArea) {
	w.gla.AttachBuffers()
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	w.uniforms = fractal.NewUniforms(w.app.controller.Snapshot(), w.width, w.height)
	gl.UseProgram(w.program)
	w.loadUniforms()
	gl.BindVertexArray(w.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	w.drawSelection()
}

func (w *RenderWindow) glaUnrealize(gla *gtk.GLArea) {
	gla.MakeCurrent()
	gl.DeleteProgram(w.program)
	gl.DeleteBuffers(1, &w.vbo)
	gl.DeleteVertexArrays(1, &w.vao)
}

func (w *RenderWindow) resize(gla *gtk.GLArea, width, height int) {
	w.width, w.height = width, height
	w.scaleFactor = gla.GetScaleFactor()
	if w.scaleFactor < 1 {
		w.scaleFactor = 1
	}

	w.app.controller.Resize(width/w.scaleFactor, height/w.scaleFactor)
	gl.Viewport(0, 0, int32(w.width), int32(w.height))
}

// drawSelection outlines the box selection by clearing thin scissored strips.
func (w *RenderWindow) drawSelection() {
	sel, ok := w.app.controller.Selection()
	if !ok {
		return
	}

	min, size := sel.Bounds()
	min = min.Mul(float64(w.scaleFactor))
	size = size.Mul(float64(w.scaleFactor))

	// GL counts rows from the bottom.
	x, y := int32(min[0]), int32(float64(w.height)-min[1]-size[1])
	width := max(int32(size[0]), selectionLineWidth)
	height := max(int32(size[1]), selectionLineWidth)

	gl.Enable(gl.SCISSOR_TEST)
	gl.ClearColor(selectionColour[0], selectionColour[1], selectionColour[2], selectionColour[3])
	for _, strip := range [][4]int32{
		{x, y, width, selectionLineWidth},
		{x, y + height - selectionLineWidth, width, selectionLineWidth},
		{x, y, selectionLineWidth, height},
		{x + width - selectionLineWidth, y, selectionLineWidth, height},
	} {
		gl.Scissor(strip[0], strip[1], strip[2], strip[3])
		gl.Clear(gl.COLOR_BUFFER_BIT)
	}
	gl.Disable(gl.SCISSOR_TEST)
}

func (w *RenderWindow) button(gla *gtk.GLArea, event *gdk.Event) {
	button := gdk.EventButtonNewFromEvent(event)
	if button.Button() != 1 {
		return
	}

	switch button.Type() {
	case gdk.EVENT_BUTTON_PRESS:
		shift := gdk.ModifierType(button.State())&gdk.SHIFT_MASK != 0
		w.app.controller.PointerDown(button.X(), button.Y(), shift)

	case gdk.EVENT_BUTTON_RELEASE:
		w.app.controller.PointerUp(button.X(), button.Y())
	}
}

func (w *RenderWindow) motion(gla *gtk.GLArea, event *gdk.Event) {
	motion := gdk.EventMotionNewFromEvent(event)
	x, y := motion.MotionVal()
	w.app.controller.PointerMove(x, y)
}

func (w *RenderWindow) scroll(gla *gtk.GLArea, event *gdk.Event) {
	scroll := gdk.EventScrollNewFromEvent(event)

	switch scroll.Direction() {
	case gdk.SCROLL_UP:
		w.app.controller.Zoom(view.ZoomIn)
	case gdk.SCROLL_DOWN:
		w.app.controller.Zoom(view.ZoomOut)
	}
}

func (w *RenderWindow) key(win *gtk.ApplicationWindow, event *gdk.Event) {
	key := gdk.EventKeyNewFromEvent(event)

	switch key.KeyVal() {
	case gdk.KEY_r, gdk.KEY_Home:
		w.app.controller.Reset()
	case gdk.KEY_plus, gdk.KEY_equal, gdk.KEY_KP_Add:
		w.app.controller.Zoom(view.ZoomIn)
	case gdk.KEY_minus, gdk.KEY_KP_Subtract:
		w.app.controller.Zoom(view.ZoomOut)
	}
}

func (w *RenderWindow) loadUniforms() {
	v := reflect.ValueOf(&w.uniforms).Elem()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)

		ptr := f.Addr().UnsafePointer()
		loc := w.uniformLocations[v.Type().Field(i).Tag.Get("uniform")]

		count := int32(1)

	SwitchElem:
		switch f.Type() {
		case reflect.TypeOf(mgl64.Vec2{}):
			gl.Uniform2dv(loc, count, (*float64)(ptr))
			continue
		case reflect.TypeOf(mgl64.Vec3{}):
			gl.Uniform3dv(loc, count, (*float64)(ptr))
			continue
		case reflect.TypeOf(int32(0)):
			gl.Uniform1iv(loc, count, (*int32)(ptr))
			continue
		case reflect.TypeOf(uint32(0)):
			gl.Uniform1uiv(loc, count, (*uint32)(ptr))
			continue
		case reflect.TypeOf(float32(0)):
			gl.Uniform1fv(loc, count, (*float32)(ptr))
			continue
		case reflect.TypeOf(float64(0)):
			gl.Uniform1dv(loc, count, (*float64)(ptr))
			continue
		}

		if f.Kind() == reflect.Array {
			count = int32(f.Len())
			f = f.Index(0)
			goto SwitchElem
		}

		logger.Warning(fmt.Sprintf("unsupported uniform type %v", f.Type()))
	}
}

func (w *RenderWindow) loadProgram(program fractal.Program) error {
	vertexShader, err := compileShader(program.VertexShader+"\x00", gl.VERTEX_SHADER)
	if err != nil {
		return err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(program.FragmentShader+"\x00", gl.FRAGMENT_SHADER)
	if err != nil {
		return err
	}
	defer gl.DeleteShader(fragmentShader)

	w.program = gl.CreateProgram()
	gl.AttachShader(w.program, vertexShader)
	gl.AttachShader(w.program, fragmentShader)
	gl.BindFragDataLocation(w.program, 0, gl.Str("outputColor\x00"))
	gl.LinkProgram(w.program)

	var status int32
	gl.GetProgramiv(w.program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetProgramiv(w.program, gl.INFO_LOG_LENGTH, &l)

		log := strings.Repeat("\x00", int(l+1))
		gl.GetProgramInfoLog(w.program, l, nil, gl.Str(log))
		return fmt.Errorf("failed to link %s program: %v", program.Name, log)
	}
	gl.UseProgram(w.program)

	w.uniformLocations = make(map[string]int32)
	t := reflect.TypeOf(w.uniforms)
	for i := 0; i < t.NumField(); i++ {
		name := t.Field(i).Tag.Get("uniform")
		w.uniformLocations[name] = gl.GetUniformLocation(w.program, gl.Str(name+"\x00"))
	}

	w.vertexAttrib = uint32(gl.GetAttribLocation(w.program, gl.Str("vert\x00")))
	gl.EnableVertexAttribArray(w.vertexAttrib)
	gl.VertexAttribPointerWithOffset(w.vertexAttrib, 2, gl.FLOAT, false, 2*4, 0)

	logger.Debug(fmt.Sprintf("Loaded %s program", program.Name))
	return nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	defer runtime.KeepAlive(source)
	cstring, free := gl.Strs(source)
	defer free()

	shader := gl.CreateShader(shaderType)
	gl.ShaderSource(shader, 1, cstring, nil)
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &l)

		log := strings.Repeat("\x00", int(l+1))
		gl.GetShaderInfoLog(shader, l, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("shader\n\"\n%v\n\"\nfailed to compile: %v", source, log)
	}

	return shader, nil
}
