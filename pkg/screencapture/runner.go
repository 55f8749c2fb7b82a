package screencapture

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Runner executes a capture command and waits for it to exit.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ProcessError carries whatever the utility wrote to stderr alongside the
// underlying exec error.
type ProcessError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *ProcessError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("command failed: %s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("command failed: %s: %v: %s", e.Command, e.Err, e.Stderr)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// ExecRunner runs commands as child processes. No timeout is applied:
// interactive modes wait for the user as long as it takes.
type ExecRunner struct {
	Logger *slog.Logger
}

func (r ExecRunner) Run(ctx context.Context, c Command) error {
	if r.Logger != nil {
		r.Logger.Debug("executing screenshot command", "command", c.String())
	}

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("%w: %w", ctx.Err(), err)
		}
		return &ProcessError{
			Command: c.String(),
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}
	return nil
}
