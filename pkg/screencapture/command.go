package screencapture

import (
	"fmt"
	"strings"
)

// Binary is the macOS screenshot utility every capture shells out to.
const Binary = "screencapture"

// FullscreenDelay gives transient notices time to disappear before the
// screen is recorded.
const FullscreenDelay = "1"

// Command is a ready-to-run invocation of the capture utility.
type Command struct {
	Name string
	Args []string
}

// Build returns the invocation for mode writing to the absolute path target.
func Build(mode Mode, target string) (Command, error) {
	if strings.TrimSpace(target) == "" {
		return Command{}, fmt.Errorf("empty capture target")
	}

	var args []string
	switch mode {
	case ModeWindow:
		args = []string{"-i", "-w", target}
	case ModeArea:
		args = []string{"-i", target}
	case ModeFullscreen:
		args = []string{"-T", FullscreenDelay, target}
	case ModeFullscreenImmediate:
		args = []string{target}
	default:
		return Command{}, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
	return Command{Name: Binary, Args: args}, nil
}

// Clipboard captures an interactive selection straight to the clipboard.
func Clipboard() Command {
	return Command{Name: Binary, Args: []string{"-i", "-c"}}
}

// String renders the command as a shell line. Arguments containing
// whitespace or quotes are double-quoted.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	for _, a := range c.Args {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n\"'\\$`") {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "$", `\$`, "`", "\\`")
	return `"` + r.Replace(s) + `"`
}
