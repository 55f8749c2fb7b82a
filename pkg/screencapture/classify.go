package screencapture

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"syscall"
)

type FailureKind int

const (
	FailureOther FailureKind = iota
	FailurePermission
	FailureCancelled
)

func (k FailureKind) String() string {
	switch k {
	case FailurePermission:
		return "permission"
	case FailureCancelled:
		return "cancelled"
	}
	return "other"
}

// Failure is the user-facing interpretation of a failed capture process.
type Failure struct {
	Kind    FailureKind
	Message string
}

var permissionMarkers = []string{
	"operation not permitted",
	"not authorized",
	"could not create image from display",
}

var cancelMarkers = []string{
	"killed",
	"interrupt",
}

// Classify inspects process state first and only falls back to matching
// the error text, which varies with OS version and locale. For a
// ProcessError only the tool's stderr and exit error are matched; the
// command line carries user paths.
func Classify(err error) Failure {
	if err == nil {
		return Failure{}
	}
	msg := err.Error()

	if errors.Is(err, context.Canceled) {
		return Failure{Kind: FailureCancelled, Message: msg}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return Failure{Kind: FailureCancelled, Message: msg}
		}
	}

	if errors.Is(err, exec.ErrNotFound) {
		return Failure{Kind: FailureOther, Message: msg}
	}

	lower := strings.ToLower(diagnostic(err))
	for _, m := range permissionMarkers {
		if strings.Contains(lower, m) {
			return Failure{Kind: FailurePermission, Message: msg}
		}
	}
	for _, m := range cancelMarkers {
		if strings.Contains(lower, m) {
			return Failure{Kind: FailureCancelled, Message: msg}
		}
	}
	return Failure{Kind: FailureOther, Message: msg}
}

func diagnostic(err error) string {
	var pe *ProcessError
	if !errors.As(err, &pe) {
		return err.Error()
	}
	text := pe.Stderr
	if pe.Err != nil {
		text += "\n" + pe.Err.Error()
	}
	return text
}
