package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/glmandel/config"
	"github.com/stewi1014/glmandel/misc"
	"github.com/stewi1014/glmandel/render"
)

const glDebug = false

var logger = bslogger.NewLogger("GLMandel", bslogger.Normal, nil)

func main() {
	settingsFile := flag.String("settings", "", "JSON settings file")
	exportFile := flag.String("export", "", "render the starting view to this PNG and exit")
	width := flag.Int("width", 0, "export width in pixels")
	height := flag.Int("height", 0, "export height in pixels")
	supersample := flag.Int("supersample", 0, "export supersampling factor")
	flag.Parse()

	settings, err := config.NewSettings(*settingsFile)
	misc.CheckError(err, logger, misc.Fatal)

	if *width > 0 {
		settings.ExportWidth = *width
	}
	if *height > 0 {
		settings.ExportHeight = *height
	}
	if *supersample > 0 {
		settings.ExportSupersample = *supersample
	}
	misc.CheckError(settings.Verify(), logger, misc.Fatal)

	mainContext, mainQuit := context.WithCancelCause(context.Background())

	if *exportFile != "" {
		mainQuit(exportHeadless(mainContext, settings, *exportFile))
	} else {
		go func() {
			mainQuit(gtkMain(mainContext, settings))
		}()
	}

	<-mainContext.Done()
	if err := context.Cause(mainContext); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func exportHeadless(ctx context.Context, settings config.Settings, name string) error {
	pipeline := render.NewPipeline(settings.Evaluator(), settings.ChunkSize)
	opts := settings.ExportOptions()

	logger.Info(fmt.Sprintf("Exporting %dx%d to %s", opts.Width, opts.Height, name))
	err := pipeline.ExportFile(ctx, name, settings.Snapshot(), opts, nil)
	if err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("Saved %s", name))
	return nil
}

func gtkMain(ctx context.Context, settings config.Settings) error {
	runtime.LockOSThread()

	gtk.Init(&os.Args)
	app, err := NewApplication(ctx, settings)
	if err != nil {
		return err
	}

	return app.Run()
}
