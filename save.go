package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/glmandel/fractal"
	"github.com/stewi1014/glmandel/render"
)

const exportPreviewSize = 600

// export writes snapshot to a timestamped PNG in the export directory.
// It works from its own copy of the snapshot, so the view can keep changing
// while the export runs.
func export(app *Application, parent *gtk.ApplicationWindow, snapshot fractal.Snapshot) {
	opts := app.settings.ExportOptions()
	name := filepath.Join(app.settings.ExportPath, render.ExportName(time.Now()))
	ctx, cancel := context.WithCancelCause(app.ctx)
	progress := new(render.Progress)

	dialog, err := NewExportDialog(ctx, parent, name, opts, progress, func() {
		cancel(context.Canceled)
	})
	if err != nil {
		cancel(err)
		NewErrorDialog(parent, "Export failed", err)
		return
	}
	dialog.ShowAll()

	go func() {
		defer CatchPanicToContext(cancel)

		start := time.Now()
		err := app.pipeline.ExportFile(ctx, name, snapshot, opts, progress)
		cancel(context.Canceled)

		switch {
		case errors.Is(err, context.Canceled):
			logger.Info(fmt.Sprintf("Export to %s cancelled", name))

		case err != nil:
			logger.Error(err.Error())
			glib.IdleAdd(func() {
				NewErrorDialog(parent, "Export failed", err)
			})

		default:
			logger.Info(fmt.Sprintf("Exported %s in %v", name, time.Since(start).Round(time.Millisecond)))
			glib.IdleAdd(func() {
				showExport(app, parent, name)
			})
		}
	}()
}

// showExport opens the finished image and offers to delete it.
func showExport(app *Application, parent *gtk.ApplicationWindow, name string) {
	preview, err := NewExportPreview(app.Application, name, exportPreviewSize, func() {
		if err := os.Remove(name); err != nil {
			logger.Warning(err.Error())
			return
		}
		logger.Info(fmt.Sprintf("Deleted %s", name))
	})
	if err != nil {
		NewErrorDialog(parent, "Export preview failed", err)
		return
	}
	preview.ShowAll()
}
