package notify

import (
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

type Level int

const (
	Info Level = iota
	Success
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return "info"
}

// Notifier shows short-lived status messages to the user.
type Notifier interface {
	Notify(level Level, msg string)
}

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// Terminal writes styled lines to a writer.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

func (t *Terminal) Notify(level Level, msg string) {
	var line string
	switch level {
	case Success:
		line = successStyle.Render("✔ " + msg)
	case Warning:
		line = warningStyle.Render("! " + msg)
	case Error:
		line = errorStyle.Render("✘ " + msg)
	default:
		line = infoStyle.Render(msg)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, line)
}

// Desktop posts macOS notification banners through osascript.
type Desktop struct {
	Title string
}

func (d Desktop) Notify(level Level, msg string) {
	script := fmt.Sprintf("display notification %s with title %s", strconv.Quote(msg), strconv.Quote(d.Title))
	// Best effort; a missing banner never affects the capture.
	exec.Command("osascript", "-e", script).Run()
}

// Multi fans a message out to several notifiers.
type Multi []Notifier

func (m Multi) Notify(level Level, msg string) {
	for _, n := range m {
		n.Notify(level, msg)
	}
}

type Message struct {
	Level Level
	Text  string
}

// Recorder keeps every message; useful for tests and scripted callers.
type Recorder struct {
	mu       sync.Mutex
	Messages []Message
}

func (r *Recorder) Notify(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, Message{Level: level, Text: msg})
}

// Texts returns just the message bodies in order.
func (r *Recorder) Texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Messages))
	for i, m := range r.Messages {
		out[i] = m.Text
	}
	return out
}

// Last returns the most recent message, or the zero Message.
func (r *Recorder) Last() Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Messages) == 0 {
		return Message{}
	}
	return r.Messages[len(r.Messages)-1]
}
