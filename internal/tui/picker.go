package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/buildmenu/internal/domain"
)

// Picker selects a menu option with a full-screen bubbletea program.
type Picker struct {
	in      io.Reader
	out     io.Writer
	project string
}

// Ensure Picker implements domain.SelectionPicker interface.
var _ domain.SelectionPicker = (*Picker)(nil)

// NewPicker creates a Picker that reads keys from in and draws to out.
func NewPicker(in io.Reader, out io.Writer, project string) *Picker {
	return &Picker{in: in, out: out, project: project}
}

// Pick runs the picker until an option is chosen or it is dismissed.
func (p *Picker) Pick(menu *domain.Menu) (string, error) {
	m := New(menu, p.project)
	prog := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)
	if _, err := prog.Run(); err != nil {
		return "", fmt.Errorf("run picker: %w", err)
	}
	if m.Chosen() == "" {
		return "", domain.ErrSelectionCancelled
	}
	return m.Chosen(), nil
}
