package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"time"

	"github.com/stewi1014/glmandel/fractal"
	xdraw "golang.org/x/image/draw"
)

const (
	DefaultExportWidth  = 3000
	DefaultExportHeight = 3000
	MaxSupersample      = 4
)

type ExportOptions struct {
	Width, Height int

	// Supersample renders at this multiple of the output size and scales the
	// result down. 1 renders each output pixel once.
	Supersample int
}

func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Width:       DefaultExportWidth,
		Height:      DefaultExportHeight,
		Supersample: 1,
	}
}

// Verify clamps the options into a usable range.
func (o *ExportOptions) Verify() {
	if o.Width <= 0 {
		o.Width = DefaultExportWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultExportHeight
	}
	if o.Supersample < 1 {
		o.Supersample = 1
	}
	if o.Supersample > MaxSupersample {
		o.Supersample = MaxSupersample
	}
}

// ExportImage renders snapshot at the export size, supersampling if asked.
func (p *Pipeline) ExportImage(
	ctx context.Context,
	snapshot fractal.Snapshot,
	opts ExportOptions,
	progress *Progress,
) (image.Image, error) {
	opts.Verify()

	start := time.Now()
	img, err := p.Render(ctx, snapshot, opts.Width*opts.Supersample, opts.Height*opts.Supersample, progress)
	if err != nil {
		return nil, err
	}
	p.logger.Info(fmt.Sprintf("Rendered %dx%d export in %s", img.Bounds().Dx(), img.Bounds().Dy(), time.Since(start)))

	if opts.Supersample == 1 {
		return img, nil
	}

	scaled := image.NewNRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return scaled, nil
}

// Export renders snapshot and writes it to w as a PNG.
func (p *Pipeline) Export(
	ctx context.Context,
	w io.Writer,
	snapshot fractal.Snapshot,
	opts ExportOptions,
	progress *Progress,
) error {
	img, err := p.ExportImage(ctx, snapshot, opts, progress)
	if err != nil {
		return fmt.Errorf("rendering export: %w", err)
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// ExportFile writes the export to name. The file is removed again if the
// export does not complete.
func (p *Pipeline) ExportFile(
	ctx context.Context,
	name string,
	snapshot fractal.Snapshot,
	opts ExportOptions,
	progress *Progress,
) (err error) {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, file.Close())
		if err != nil {
			os.Remove(name)
		}
	}()

	if err = p.Export(ctx, file, snapshot, opts, progress); err != nil {
		return err
	}

	p.logger.Info(fmt.Sprintf("Saved image to %s", name))
	return nil
}

// ExportName returns a timestamped file name for an export made at t.
func ExportName(t time.Time) string {
	return fmt.Sprintf("mandelbrot-%s.png", t.Format("2006-01-02T15-04-05"))
}
