// Package tui provides the full-screen option picker.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"github.com/runoshun/buildmenu/internal/domain"
)

// linePadding is the space taken by the cursor, padding and step indent.
const linePadding = 6

// Model is the picker model. The cursor starts on the menu's default option.
// Fields are ordered to minimize memory padding.
type Model struct {
	menu    *domain.Menu
	options []domain.MenuOption
	project string
	chosen  string
	keys    KeyMap
	styles  Styles
	cursor  int
	width   int
	done    bool
}

// New creates a picker model for menu. project is shown under the title.
func New(menu *domain.Menu, project string) *Model {
	options := menu.Options()
	cursor := 0
	for i, o := range options {
		if o.Key == menu.DefaultKey {
			cursor = i
			break
		}
	}
	return &Model{
		menu:    menu,
		options: options,
		project: project,
		keys:    DefaultKeyMap(),
		styles:  DefaultStyles(),
		cursor:  cursor,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Chosen returns the selected key, or "" when the picker was cancelled.
func (m *Model) Chosen() string {
	return m.chosen
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.done = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Select):
		if len(m.options) > 0 {
			m.chosen = m.options[m.cursor].Key
		}
		m.done = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		if len(m.options) > 0 {
			m.cursor = len(m.options) - 1
		}
	default:
		// Typing an option key selects it directly, like the line prompt.
		for _, o := range m.options {
			if msg.String() == o.Key {
				m.chosen = o.Key
				m.done = true
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// View renders the picker.
func (m *Model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.menu.Title))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render(m.project))
	b.WriteString("\n")

	for i, o := range m.options {
		line := m.fit(o.Key + ". " + o.Label)
		if o.Key == m.menu.DefaultKey {
			line += " " + m.styles.Default.Render("(default)")
		}
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(m.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")

		if i == m.cursor {
			for _, s := range o.Steps() {
				b.WriteString(m.styles.Step.Render(m.fit("$ " + s.String())))
				b.WriteString("\n")
			}
		}
	}

	b.WriteString(m.viewHelp())
	return b.String()
}

// fit truncates line to the window width, leaving room for padding.
func (m *Model) fit(line string) string {
	if m.width <= linePadding {
		return line
	}
	return truncate.StringWithTail(line, uint(m.width-linePadding), "…")
}

func (m *Model) viewHelp() string {
	parts := make([]string, 0, len(m.keys.ShortHelp()))
	for _, kb := range m.keys.ShortHelp() {
		h := kb.Help()
		parts = append(parts, m.styles.HelpKey.Render(h.Key)+" "+h.Desc)
	}
	return m.styles.Help.Render(strings.Join(parts, " • "))
}
