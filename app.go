package main

import (
	"context"
	"fmt"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/glmandel/ambient"
	"github.com/stewi1014/glmandel/config"
	"github.com/stewi1014/glmandel/render"
	"github.com/stewi1014/glmandel/view"
)

func NewApplication(ctx context.Context, settings config.Settings) (*Application, error) {
	app, err := gtk.ApplicationNew("com.github.stewi1014.glmandel", glib.APPLICATION_FLAGS_NONE)
	if err != nil {
		return nil, fmt.Errorf("gtk.ApplicationNew failed: %w", err)
	}

	a := &Application{
		Application: app,
		settings:    settings,
		controller:  view.NewController(settings.Snapshot(), settings.Limits(), settings.IterationCeiling),
		pipeline:    render.NewPipeline(settings.Evaluator(), settings.ChunkSize),
	}
	a.ctx, a.quit = context.WithCancelCause(ctx)

	a.Connect("activate", a.activate)
	return a, nil
}

// Application owns the state shared by the render and config windows.
// Everything but the pipeline is only touched from the GTK main loop.
type Application struct {
	*gtk.Application

	ctx  context.Context
	quit context.CancelCauseFunc

	settings   config.Settings
	controller *view.Controller
	pipeline   *render.Pipeline
	publisher  *ambient.Publisher
}

func (a *Application) activate() {
	client, listener := ambient.NewPipeListener()
	a.publisher = ambient.NewPublisher(client, a.settings.Interval())
	a.controller.Subscribe(func(e view.Event) {
		if e.Kind.Redraw() {
			a.publisher.Publish(ambient.FromSnapshot(e.Snapshot))
		}
	})
	go func() {
		defer CatchPanicToContext(a.quit)
		if err := a.publisher.Run(a.ctx); err != nil && a.ctx.Err() == nil {
			a.quit(err)
		}
	}()

	renderWindow := NewRenderWindow(a)
	if renderWindow == nil {
		return
	}
	renderWindow.Connect("destroy", func() {
		a.quit(nil)
	})
	renderWindow.SetTitle("GLMandel")
	AttachErrorDialog(renderWindow.ApplicationWindow, a.ctx)

	configWindow := NewConfigWindow(a)
	if configWindow == nil {
		return
	}
	configWindow.Connect("destroy", func() {
		a.quit(nil)
	})
	configWindow.SetTitle("GLMandel Config")

	go func() {
		defer CatchPanicToContext(a.quit)
		err := ambient.Serve(a.ctx, listener, func(s ambient.Snapshot) {
			glib.IdleAdd(func() {
				configWindow.SetAmbient(s)
			})
		})
		if err != nil && a.ctx.Err() == nil {
			a.quit(err)
		}
	}()

	a.publisher.Publish(ambient.FromSnapshot(a.controller.Snapshot()))
}

// Run blocks until the application quits.
func (a *Application) Run() error {
	go func() {
		<-a.ctx.Done()
		glib.IdleAdd(a.Quit)
	}()
	a.Application.Run(nil)
	a.quit(context.Canceled)
	return context.Cause(a.ctx)
}
