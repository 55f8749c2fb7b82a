// Package picker is the interactive menu listing every capture mode.
package picker

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"vaultshot/pkg/screencapture"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quick  key.Binding
	Cancel key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quick, k.Cancel}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓/j", "down")),
	Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "capture")),
	Quick:  key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "quick pick")),
	Cancel: key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("esc", "cancel")),
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	descStyle     = lipgloss.NewStyle().Faint(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	shortcutStyle = lipgloss.NewStyle().Faint(true).Italic(true)
)

// Model is the bubbletea model for the capture menu.
type Model struct {
	modes    []screencapture.Mode
	cursor   int
	chosen   screencapture.Mode
	done     bool
	canceled bool
	help     help.Model
}

func New() Model {
	return Model{modes: screencapture.Modes(), help: help.New()}
}

// Choice reports the selected mode; ok is false when the menu was cancelled
// or is still open.
func (m Model) Choice() (screencapture.Mode, bool) {
	if !m.done || m.canceled {
		return 0, false
	}
	return m.chosen, true
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(km, keys.Cancel):
		m.done, m.canceled = true, true
		return m, tea.Quit
	case key.Matches(km, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, keys.Down):
		if m.cursor < len(m.modes)-1 {
			m.cursor++
		}
	case key.Matches(km, keys.Select):
		m.chosen, m.done = m.modes[m.cursor], true
		return m, tea.Quit
	case key.Matches(km, keys.Quick):
		i := int(km.String()[0] - '1')
		if i >= 0 && i < len(m.modes) {
			m.cursor = i
			m.chosen, m.done = m.modes[i], true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Screenshot Options"))
	b.WriteString("\n")
	b.WriteString(descStyle.Render("Choose how you want to take a screenshot:"))
	b.WriteString("\n\n")

	for i, mode := range m.modes {
		pointer := "  "
		title := mode.Title()
		if i == m.cursor {
			pointer = cursorStyle.Render("> ")
			title = selectedStyle.Render(title)
		}
		line := fmt.Sprintf("%s%d. %s", pointer, i+1, title)
		if sc := mode.Shortcut(); sc != "" {
			line += "  " + shortcutStyle.Render(sc)
		}
		b.WriteString(line)
		b.WriteString("\n")
		b.WriteString("     " + descStyle.Render(mode.Description()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	b.WriteString("\n")
	return b.String()
}

// Run shows the menu and blocks until the user picks a mode or cancels.
func Run(ctx context.Context, in io.Reader, out io.Writer) (screencapture.Mode, bool, error) {
	p := tea.NewProgram(New(), tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return 0, false, fmt.Errorf("capture menu: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return 0, false, fmt.Errorf("capture menu: unexpected model %T", final)
	}
	mode, chosen := m.Choice()
	return mode, chosen, nil
}
