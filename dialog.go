package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/glmandel/render"
)

const progressInterval = time.Second / 10

func CatchPanicToContext(ctxCancel context.CancelCauseFunc) {
	if v := recover(); v != nil {
		err, ok := v.(error)
		if !ok {
			err = fmt.Errorf("panic: %v", v)
		}
		err = fmt.Errorf("%w\n%v", err, string(debug.Stack()))
		if ctxCancel != nil {
			ctxCancel(err)
		}
	}
}

// AttachErrorDialog reports the cause of ctx ending unless it was a plain quit.
func AttachErrorDialog(parent gtk.IWindow, ctx context.Context) {
	go func() {
		<-ctx.Done()
		err := context.Cause(ctx)
		if errors.Is(err, context.Canceled) {
			return
		}
		logger.Error(err.Error())
		glib.IdleAdd(func() {
			NewErrorDialog(parent, "GLMandel stopped", err)
		})
	}()
}

func NewErrorDialog(parent gtk.IWindow, title string, err error) {
	dialog := gtk.MessageDialogNew(
		parent,
		gtk.DIALOG_DESTROY_WITH_PARENT,
		gtk.MESSAGE_ERROR,
		gtk.BUTTONS_CLOSE,
		"%s",
		title,
	)
	dialog.FormatSecondaryText("%s", err.Error())
	dialog.Connect("response", dialog.Destroy)
	dialog.SetKeepAbove(true)
	dialog.ShowAll()
}

// ExportDialog follows one export until its context ends.
type ExportDialog struct {
	*gtk.Dialog
	progressBar *gtk.ProgressBar
	progress    *render.Progress
}

func NewExportDialog(
	ctx context.Context,
	parent gtk.IWindow,
	name string,
	opts render.ExportOptions,
	progress *render.Progress,
	onCancel func(),
) (*ExportDialog, error) {
	d := &ExportDialog{progress: progress}

	var err error
	d.Dialog, err = gtk.DialogNewWithButtons(
		"Export Image",
		parent,
		gtk.DIALOG_DESTROY_WITH_PARENT,
		[]interface{}{"Cancel", gtk.RESPONSE_CANCEL},
	)
	if err != nil {
		return nil, fmt.Errorf("gtk.DialogNewWithButtons: %w", err)
	}
	d.SetKeepAbove(true)
	d.Connect("response", func(_ *gtk.Dialog, response gtk.ResponseType) {
		if response == gtk.RESPONSE_CANCEL {
			onCancel()
		}
	})

	description := fmt.Sprintf("Rendering %dx%d to %s", opts.Width, opts.Height, name)
	if opts.Supersample > 1 {
		description = fmt.Sprintf("Rendering %dx%d at %dx supersampling to %s",
			opts.Width, opts.Height, opts.Supersample, name)
	}
	label, err := gtk.LabelNew(description)
	if err != nil {
		return nil, fmt.Errorf("gtk.LabelNew: %w", err)
	}
	label.SetLineWrap(true)

	d.progressBar, err = gtk.ProgressBarNew()
	if err != nil {
		return nil, fmt.Errorf("gtk.ProgressBarNew: %w", err)
	}
	d.progressBar.SetShowText(true)
	d.progressBar.SetSizeRequest(500, 40)

	content, err := d.GetContentArea()
	if err != nil {
		return nil, fmt.Errorf("GetContentArea: %w", err)
	}
	content.Add(label)
	content.Add(d.progressBar)

	go d.poll(ctx)
	return d, nil
}

func (d *ExportDialog) poll(ctx context.Context) {
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			glib.IdleAdd(func() {
				f := d.progress.Fraction()
				d.progressBar.SetFraction(f)
				d.progressBar.SetText(fmt.Sprintf("%.0f%%", f*100))
			})
		case <-ctx.Done():
			glib.IdleAdd(d.Destroy)
			return
		}
	}
}

// NewExportPreview shows a finished export scaled to fit in size×size, with
// buttons to keep or delete the file.
func NewExportPreview(
	app *gtk.Application,
	name string,
	size int,
	onDelete func(),
) (*gtk.ApplicationWindow, error) {
	pixbuf, err := gdk.PixbufNewFromFileAtScale(name, size, size, true)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}

	w, err := gtk.ApplicationWindowNew(app)
	if err != nil {
		return nil, fmt.Errorf("gtk.ApplicationWindowNew: %w", err)
	}
	w.SetTitle(filepath.Base(name))

	image, err := gtk.ImageNewFromPixbuf(pixbuf)
	if err != nil {
		return nil, fmt.Errorf("gtk.ImageNewFromPixbuf: %w", err)
	}
	image.SetHExpand(true)
	image.SetVExpand(true)

	keepButton, _ := gtk.ButtonNewWithLabel("Keep")
	keepButton.Connect("clicked", w.Destroy)

	deleteButton, _ := gtk.ButtonNewWithLabel("Delete")
	deleteButton.Connect("clicked", func() {
		onDelete()
		w.Destroy()
	})

	grid, _ := gtk.GridNew()
	grid.Attach(image, 0, 0, 5, 1)
	grid.Attach(keepButton, 0, 1, 1, 1)
	grid.Attach(deleteButton, 4, 1, 1, 1)

	w.Add(grid)
	return w, nil
}
