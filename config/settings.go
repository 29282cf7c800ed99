// Package config loads the explorer's startup settings from a JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stewi1014/glmandel/ambient"
	"github.com/stewi1014/glmandel/fractal"
	"github.com/stewi1014/glmandel/render"
	"github.com/stewi1014/glmandel/view"
)

type Settings struct {
	logger bslogger.Logger

	CenterX  float64
	CenterY  float64
	Scale    float64
	ScaleMin float64
	ScaleMax float64

	MaxIterations    uint32
	IterationCeiling uint32
	Brightness       float64
	Contrast         float64
	ColorShift       float64
	ColorMode        string

	ChunkSize int

	ExportWidth       int
	ExportHeight      int
	ExportSupersample int
	ExportPath        string

	// SnapshotInterval is the ambient publish interval in milliseconds.
	SnapshotInterval int
}

func Default() Settings {
	return Settings{
		CenterX:  fractal.DefaultCenter[0],
		CenterY:  fractal.DefaultCenter[1],
		Scale:    fractal.DefaultScale,
		ScaleMin: fractal.DefaultScaleMin,
		ScaleMax: fractal.DefaultScaleMax,

		MaxIterations:    fractal.DefaultMaxIterations,
		IterationCeiling: fractal.DefaultIterationCeiling,
		Brightness:       fractal.DefaultBrightness,
		Contrast:         fractal.DefaultContrast,
		ColorShift:       0,
		ColorMode:        fractal.Greyscale.String(),

		ChunkSize: render.DefaultChunkSize,

		ExportWidth:       render.DefaultExportWidth,
		ExportHeight:      render.DefaultExportHeight,
		ExportSupersample: 1,

		SnapshotInterval: int(ambient.DefaultInterval / time.Millisecond),
	}
}

// NewSettings reads settingsFile over the defaults. Fields missing from the
// file keep their default value. An empty name returns the defaults.
func NewSettings(settingsFile string) (Settings, error) {
	s := Default()
	if settingsFile != "" {
		fileBytes, err := os.ReadFile(settingsFile)
		if err != nil {
			return s, fmt.Errorf("reading settings: %w", err)
		}
		if err := json.Unmarshal(fileBytes, &s); err != nil {
			return s, fmt.Errorf("parsing settings %s: %w", settingsFile, err)
		}
	}

	if err := s.Verify(); err != nil {
		return s, err
	}
	s.logger.Debug(s.String())
	return s, nil
}

func (s *Settings) String() string {
	output := "\nSettings\n"
	output += fmt.Sprintf("Center: (%g, %g)\n", s.CenterX, s.CenterY)
	output += fmt.Sprintf("Scale: %g [%g, %g]\n", s.Scale, s.ScaleMin, s.ScaleMax)
	output += fmt.Sprintf("Iterations: %d (ceiling %d)\n", s.MaxIterations, s.IterationCeiling)
	output += fmt.Sprintf("Colour: %s brightness %g contrast %g shift %g\n", s.ColorMode, s.Brightness, s.Contrast, s.ColorShift)
	output += fmt.Sprintf("Export: %dx%d supersample %d to %q\n", s.ExportWidth, s.ExportHeight, s.ExportSupersample, s.ExportPath)
	output += fmt.Sprintf("Snapshot interval: %dms", s.SnapshotInterval)
	return output
}

// Verify pulls every setting back into a usable range.
func (s *Settings) Verify() error {
	s.logger = bslogger.NewLogger("Settings", bslogger.Normal, nil)

	if !(s.ScaleMin > 0) || math.IsInf(s.ScaleMin, 0) {
		s.ScaleMin = fractal.DefaultScaleMin
	}
	if !(s.ScaleMax > 0) || math.IsInf(s.ScaleMax, 0) {
		s.ScaleMax = fractal.DefaultScaleMax
	}
	if s.ScaleMin > s.ScaleMax {
		s.logger.Warning(fmt.Sprintf("ScaleMin %g is above ScaleMax %g, swapping", s.ScaleMin, s.ScaleMax))
		s.ScaleMin, s.ScaleMax = s.ScaleMax, s.ScaleMin
	}

	v := fractal.View{Center: mgl64.Vec2{s.CenterX, s.CenterY}, Scale: s.Scale}
	v.Verify(s.ScaleMin, s.ScaleMax)
	s.CenterX, s.CenterY, s.Scale = v.Center[0], v.Center[1], v.Scale

	if s.IterationCeiling == 0 {
		s.IterationCeiling = fractal.DefaultIterationCeiling
	}

	mode, err := fractal.ParseMode(s.ColorMode)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("%v, using %s", err, fractal.Greyscale))
		mode = fractal.Greyscale
	}

	p := fractal.Params{
		MaxIterations: s.MaxIterations,
		Brightness:    s.Brightness,
		Contrast:      s.Contrast,
		ColorShift:    s.ColorShift,
		Mode:          mode,
	}
	p.Verify(s.IterationCeiling)
	s.MaxIterations = p.MaxIterations
	s.Brightness = p.Brightness
	s.Contrast = p.Contrast
	s.ColorShift = p.ColorShift
	s.ColorMode = p.Mode.String()

	if s.ChunkSize <= 0 {
		s.ChunkSize = render.DefaultChunkSize
	}

	opts := render.ExportOptions{
		Width:       s.ExportWidth,
		Height:      s.ExportHeight,
		Supersample: s.ExportSupersample,
	}
	opts.Verify()
	s.ExportWidth, s.ExportHeight, s.ExportSupersample = opts.Width, opts.Height, opts.Supersample

	if s.ExportPath == "" {
		s.ExportPath, _ = os.Getwd()
	}
	s.ExportPath = strings.TrimSpace(s.ExportPath)

	if s.SnapshotInterval <= 0 {
		s.SnapshotInterval = int(ambient.DefaultInterval / time.Millisecond)
	}

	return nil
}

func (s Settings) View() fractal.View {
	return fractal.View{
		Center: mgl64.Vec2{s.CenterX, s.CenterY},
		Scale:  s.Scale,
	}
}

func (s Settings) Params() fractal.Params {
	mode, err := fractal.ParseMode(s.ColorMode)
	if err != nil {
		mode = fractal.Greyscale
	}
	return fractal.Params{
		MaxIterations: s.MaxIterations,
		Brightness:    s.Brightness,
		Contrast:      s.Contrast,
		ColorShift:    s.ColorShift,
		Mode:          mode,
	}
}

func (s Settings) Snapshot() fractal.Snapshot {
	return fractal.Snapshot{View: s.View(), Params: s.Params()}
}

func (s Settings) Evaluator() fractal.Evaluator {
	return fractal.NewEvaluator(s.IterationCeiling)
}

func (s Settings) Limits() view.Limits {
	return view.Limits{ScaleMin: s.ScaleMin, ScaleMax: s.ScaleMax}
}

func (s Settings) ExportOptions() render.ExportOptions {
	return render.ExportOptions{
		Width:       s.ExportWidth,
		Height:      s.ExportHeight,
		Supersample: s.ExportSupersample,
	}
}

func (s Settings) Interval() time.Duration {
	return time.Duration(s.SnapshotInterval) * time.Millisecond
}
