package misc

import (
	"errors"
	"testing"

	"github.com/BrugadaSyndrome/bslogger"
)

func TestCheckError(t *testing.T) {
	logger := bslogger.NewLogger("CheckErrorTest", bslogger.Normal, nil)

	if CheckError(nil, logger, Fatal) {
		t.Error("CheckError(nil) reported an error")
	}
	if !CheckError(errors.New("expected warning"), logger, Warning) {
		t.Error("CheckError did not report a warning")
	}
}

func TestSeverityString(t *testing.T) {
	tests := map[Severity]string{
		Fatal:   "Fatal",
		Error:   "Error",
		Warning: "Warning",
		Info:    "Info",
		Debug:   "Debug",
		-1:      "Severity(-1)",
		7:       "Severity(7)",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("Severity(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
