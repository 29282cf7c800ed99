package main

import (
	"fmt"
	"image"
	"math"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/glmandel/ambient"
	"github.com/stewi1014/glmandel/fractal"
	"github.com/stewi1014/glmandel/render"
	"github.com/stewi1014/glmandel/view"
)

const (
	previewWidth  = 240
	previewHeight = 160
)

func NewConfigWindow(app *Application) *ConfigWindow {
	var err error
	w := &ConfigWindow{
		app: app,
	}

	w.ApplicationWindow, err = gtk.ApplicationWindowNew(app.Application)
	if err != nil {
		app.quit(fmt.Errorf("gtk.ApplicationWindowNew: %w", err))
		return nil
	}

	w.SetDefaultSize(280, 700)

	grid, err := gtk.GridNew()
	if err != nil {
		app.quit(fmt.Errorf("gtk.GridNew: %w", err))
		return nil
	}
	grid.SetRowSpacing(6)
	grid.SetColumnSpacing(6)
	grid.SetMarginStart(8)
	grid.SetMarginEnd(8)
	grid.SetMarginTop(8)
	grid.SetMarginBottom(8)

	ceiling := float64(fractal.NewEvaluator(app.settings.IterationCeiling).Clamp(math.MaxUint32))
	w.iterations = w.addSlider(grid, 0, "Iterations", 1, ceiling, 1, func(v float64) {
		app.controller.SetMaxIterations(uint32(math.Round(v)))
	})
	w.brightness = w.addSlider(grid, 1, "Brightness", 0, 2, 0.01, app.controller.SetBrightness)
	w.contrast = w.addSlider(grid, 2, "Contrast", 0, 2, 0.01, app.controller.SetContrast)
	w.colorShift = w.addSlider(grid, 3, "Colour shift", 0, 0.999, 0.001, app.controller.SetColorShift)

	modeLabel, _ := gtk.LabelNew("Colour mode")
	modeLabel.SetHAlign(gtk.ALIGN_START)
	w.mode, _ = gtk.ComboBoxTextNew()
	for _, m := range []fractal.Mode{fractal.Greyscale, fractal.Hue} {
		w.mode.AppendText(m.String())
	}
	w.mode.Connect("changed", func() {
		if w.updating {
			return
		}
		mode, err := fractal.ParseMode(w.mode.GetActiveText())
		if err != nil {
			logger.Warning(err.Error())
			return
		}
		app.controller.SetMode(mode)
	})
	grid.Attach(modeLabel, 0, 8, 1, 1)
	grid.Attach(w.mode, 0, 9, 1, 1)

	resetButton, _ := gtk.ButtonNewWithLabel("Reset")
	resetButton.Connect("clicked", func() {
		app.controller.Reset()
	})
	grid.Attach(resetButton, 0, 10, 1, 1)

	exportButton, _ := gtk.ButtonNewWithLabel("Export PNG")
	exportButton.Connect("clicked", func() {
		export(app, w.ApplicationWindow, app.controller.Snapshot())
	})
	grid.Attach(exportButton, 0, 11, 1, 1)

	w.preview, _ = gtk.ImageNew()
	w.preview.SetSizeRequest(previewWidth, previewHeight)
	grid.Attach(w.preview, 0, 12, 1, 1)

	w.ambientLabel, _ = gtk.LabelNew("")
	w.ambientLabel.SetLineWrap(true)
	w.ambientLabel.SetSelectable(true)
	grid.Attach(w.ambientLabel, 0, 13, 1, 1)

	w.scheduler = render.NewScheduler(app.ctx, app.pipeline, func(img *image.NRGBA, _ fractal.Snapshot) {
		glib.IdleAdd(func() {
			w.setPreview(img)
		})
	})
	w.Connect("destroy", w.scheduler.Close)

	app.controller.Subscribe(w.update)
	w.update(view.Event{Kind: view.Reset, Snapshot: app.controller.Snapshot()})

	w.Add(grid)
	w.ShowAll()

	return w
}

// ConfigWindow edits render parameters and shows a CPU rendered preview of
// the current view.
type ConfigWindow struct {
	*gtk.ApplicationWindow
	app *Application

	iterations *gtk.Scale
	brightness *gtk.Scale
	contrast   *gtk.Scale
	colorShift *gtk.Scale
	mode       *gtk.ComboBoxText

	preview      *gtk.Image
	ambientLabel *gtk.Label
	scheduler    *render.Scheduler

	// Set while widgets are moved to match the controller so their change
	// signals don't feed back into it.
	updating bool
}

func (w *ConfigWindow) addSlider(
	grid *gtk.Grid,
	row int,
	name string,
	min, max, step float64,
	set func(float64),
) *gtk.Scale {
	label, _ := gtk.LabelNew(name)
	label.SetHAlign(gtk.ALIGN_START)

	scale, err := gtk.ScaleNewWithRange(gtk.ORIENTATION_HORIZONTAL, min, max, step)
	if err != nil {
		w.app.quit(fmt.Errorf("gtk.ScaleNewWithRange: %w", err))
		return nil
	}
	scale.SetHExpand(true)
	scale.Connect("value-changed", func() {
		if !w.updating {
			set(scale.GetValue())
		}
	})

	grid.Attach(label, 0, row*2, 1, 1)
	grid.Attach(scale, 0, row*2+1, 1, 1)
	return scale
}

// update moves the widgets to match e and schedules a new preview.
func (w *ConfigWindow) update(e view.Event) {
	if !e.Kind.Redraw() {
		return
	}

	w.updating = true
	defer func() { w.updating = false }()

	p := e.Snapshot.Params
	w.iterations.SetValue(float64(p.MaxIterations))
	w.brightness.SetValue(p.Brightness)
	w.contrast.SetValue(p.Contrast)
	w.colorShift.SetValue(p.ColorShift)
	w.mode.SetActive(int(p.Mode))

	w.scheduler.Schedule(e.Snapshot, previewWidth, previewHeight)
}

func (w *ConfigWindow) setPreview(img *image.NRGBA) {
	bounds := img.Bounds()
	pixbuf, err := gdk.PixbufNew(gdk.COLORSPACE_RGB, true, 8, bounds.Dx(), bounds.Dy())
	if err != nil {
		logger.Warning(fmt.Sprintf("creating preview pixbuf: %v", err))
		return
	}

	pixels := pixbuf.GetPixels()
	stride := pixbuf.GetRowstride()
	rowBytes := bounds.Dx() * 4
	for y := 0; y < bounds.Dy(); y++ {
		copy(pixels[y*stride:y*stride+rowBytes], img.Pix[y*img.Stride:y*img.Stride+rowBytes])
	}

	w.preview.SetFromPixbuf(pixbuf)
}

func (w *ConfigWindow) SetAmbient(s ambient.Snapshot) {
	w.ambientLabel.SetText(s.String())
}
