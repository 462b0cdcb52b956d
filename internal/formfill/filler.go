// Package formfill drives the external spreadsheet-filling process
// that writes form instructions into a government return template.
// The filler can take tens of seconds, so every invocation is bounded
// by a timeout and the process is killed if it overruns.
package formfill

import (
	"context"
	"errors"
	"fmt"

	"github.com/pesafile-dev/pesafile/internal/model"
)

// Status is the outcome class of a fill attempt.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusTimeout Status = "TIMEOUT"
	StatusFailure Status = "FAILURE"
)

// Result describes one fill attempt. Log carries the process's
// captured output for diagnostics.
type Result struct {
	Status     Status
	OutputPath string // set on success
	Log        string
	ExitCode   int
}

// ErrTimeout is returned when the filler exceeds its deadline. The
// process has already been killed by the time the caller sees it.
var ErrTimeout = errors.New("form filler timed out")

// ExitError is returned when the filler exits non-zero.
type ExitError struct {
	ExitCode int
	Output   string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("form filler exited with code %d: %s", e.ExitCode, e.Output)
}

// Filler fills a template with an ordered instruction list and returns
// a handle to the filled document. Instructions are applied in order;
// later writes to a cell win.
type Filler interface {
	Fill(ctx context.Context, templatePath string, ins []model.FormInstruction, outputPath string) (Result, error)
}
