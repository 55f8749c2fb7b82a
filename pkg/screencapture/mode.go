package screencapture

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownMode = errors.New("unknown capture mode")

// Mode selects one of the fixed capture strategies.
type Mode int

const (
	ModeWindow Mode = iota + 1
	ModeArea
	ModeFullscreen
	ModeFullscreenImmediate
)

// Modes lists every capture mode in menu order.
func Modes() []Mode {
	return []Mode{ModeWindow, ModeArea, ModeFullscreen, ModeFullscreenImmediate}
}

func (m Mode) String() string {
	switch m {
	case ModeWindow:
		return "window"
	case ModeArea:
		return "area"
	case ModeFullscreen:
		return "fullscreen"
	case ModeFullscreenImmediate:
		return "fullscreen-immediate"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func (m Mode) Valid() bool {
	return m >= ModeWindow && m <= ModeFullscreenImmediate
}

// Title is the short label shown in the options menu.
func (m Mode) Title() string {
	switch m {
	case ModeWindow:
		return "Select Window"
	case ModeArea:
		return "Select Area"
	case ModeFullscreen:
		return "Full Screen"
	case ModeFullscreenImmediate:
		return "Full Screen (Immediate)"
	}
	return m.String()
}

func (m Mode) Description() string {
	switch m {
	case ModeWindow:
		return "Click on any window to capture it"
	case ModeArea:
		return "Drag to select any area of the screen"
	case ModeFullscreen:
		return "Capture the entire screen (1 second delay)"
	case ModeFullscreenImmediate:
		return "Capture the entire screen immediately"
	}
	return ""
}

// Shortcut is the equivalent system keyboard shortcut, if there is one.
func (m Mode) Shortcut() string {
	switch m {
	case ModeWindow:
		return "Cmd+Shift+4, Space"
	case ModeArea:
		return "Cmd+Shift+4"
	case ModeFullscreen:
		return "Cmd+Shift+3"
	}
	return ""
}

// Prompt is the status line shown while the capture tool is running.
func (m Mode) Prompt() string {
	switch m {
	case ModeWindow:
		return "Click on a window to capture it..."
	case ModeArea:
		return "Drag to select an area to capture..."
	case ModeFullscreen, ModeFullscreenImmediate:
		return "Taking full screen screenshot..."
	}
	return ""
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "window":
		return ModeWindow, nil
	case "area", "interactive":
		return ModeArea, nil
	case "fullscreen":
		return ModeFullscreen, nil
	case "fullscreen-immediate", "immediate":
		return ModeFullscreenImmediate, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}
