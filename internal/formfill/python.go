package formfill

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/pesafile-dev/pesafile/internal/logger"
	"github.com/pesafile-dev/pesafile/internal/model"
)

//go:embed fill.py
var fillScript []byte

// DefaultTimeout bounds one fill attempt.
const DefaultTimeout = 45 * time.Second

// PythonFiller runs the embedded openpyxl script in a subprocess. The
// script is written to a temp directory per invocation and handed the
// template, a JSON instruction payload, and the output path as argv.
type PythonFiller struct {
	python  string
	timeout time.Duration
}

// NewPythonFiller creates a PythonFiller. python is the interpreter
// binary ("python3" when empty); timeout <= 0 means DefaultTimeout.
// Fill logs through the logger carried on its context.
func NewPythonFiller(python string, timeout time.Duration) *PythonFiller {
	if python == "" {
		python = "python3"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &PythonFiller{python: python, timeout: timeout}
}

// payload is the JSON document handed to the fill script.
type payload struct {
	Instructions []model.FormInstruction `json:"instructions"`
}

// Fill writes the payload and script to a temp dir, runs the filler
// with a deadline, and classifies the outcome. On timeout the process
// is killed; no orphan survives the call.
func (f *PythonFiller) Fill(ctx context.Context, templatePath string, ins []model.FormInstruction, outputPath string) (Result, error) {
	log := logger.FromContext(ctx)

	tmpDir, err := os.MkdirTemp("", "pesafile-fill-*")
	if err != nil {
		return Result{Status: StatusFailure}, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	scriptPath := filepath.Join(tmpDir, "fill.py")
	if err := os.WriteFile(scriptPath, fillScript, 0o644); err != nil {
		return Result{Status: StatusFailure}, fmt.Errorf("writing fill.py: %w", err)
	}

	payloadPath := filepath.Join(tmpDir, "instructions.json")
	if err := writePayload(payloadPath, ins); err != nil {
		return Result{Status: StatusFailure}, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(ctx, f.python, scriptPath, templatePath, payloadPath, outputPath)
	out, err := cmd.CombinedOutput()

	if ctx.Err() != nil {
		log.Warn().
			Str("template", templatePath).
			Dur("after", time.Since(start)).
			Msg("form filler killed on timeout")
		return Result{Status: StatusTimeout, Log: string(out)}, ErrTimeout
	}

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		log.Error().
			Int("exit_code", exitCode).
			Str("output", string(out)).
			Msg("form filler failed")
		return Result{Status: StatusFailure, Log: string(out), ExitCode: exitCode},
			&ExitError{ExitCode: exitCode, Output: string(out)}
	}

	log.Info().
		Str("output", outputPath).
		Dur("took", time.Since(start)).
		Int("instructions", len(ins)).
		Msg("form filled")
	return Result{Status: StatusSuccess, OutputPath: outputPath, Log: string(out)}, nil
}

// writePayload marshals the instruction list, preserving order.
func writePayload(path string, ins []model.FormInstruction) error {
	data, err := json.MarshalIndent(payload{Instructions: ins}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling instructions: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing instructions: %w", err)
	}
	return nil
}
