package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/buildmenu/internal/domain"
)

func newTestMenu(t *testing.T, defaultKey string) *domain.Menu {
	t.Helper()
	menu, err := domain.NewMenu("Book Builder", defaultKey, []domain.MenuOption{
		domain.NewMenuOption("1", "Build web", []domain.CommandStep{
			domain.NewCommandStep("pretext", []string{"build", "web"}, "/book"),
		}),
		domain.NewMenuOption("2", "Build and view", []domain.CommandStep{
			domain.NewCommandStep("pretext", []string{"build", "web"}, "/book"),
			domain.NewCommandStep("pretext", []string{"view", "web"}, "/book"),
		}),
		domain.NewMenuOption("3", "Build print", []domain.CommandStep{
			domain.NewCommandStep("pretext", []string{"build", "print"}, "/book"),
		}),
	})
	require.NoError(t, err)
	return menu
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m *Model, msg tea.Msg) (*Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(*Model)
	require.True(t, ok, "expected *Model from Update")
	return model, cmd
}

func TestNew_CursorStartsOnDefault(t *testing.T) {
	m := New(newTestMenu(t, "2"), "/book")
	assert.Equal(t, 1, m.cursor)
	assert.Empty(t, m.Chosen())
}

func TestModel_EnterSelectsDefault(t *testing.T) {
	m := New(newTestMenu(t, "2"), "/book")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, "2", m.Chosen())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_Navigation(t *testing.T) {
	m := New(newTestMenu(t, "1"), "/book")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor, "cursor stays at top")

	m, _ = update(t, m, runes("j"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.cursor)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.cursor, "cursor stays at bottom")

	m, _ = update(t, m, runes("g"))
	assert.Equal(t, 0, m.cursor)

	m, _ = update(t, m, runes("G"))
	assert.Equal(t, 2, m.cursor)

	m, _ = update(t, m, runes("k"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "2", m.Chosen())
}

func TestModel_TypingKeySelects(t *testing.T) {
	m := New(newTestMenu(t, "1"), "/book")

	m, cmd := update(t, m, runes("3"))

	assert.Equal(t, "3", m.Chosen())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_UnknownKeyIgnored(t *testing.T) {
	m := New(newTestMenu(t, "1"), "/book")

	m, cmd := update(t, m, runes("9"))

	assert.Empty(t, m.Chosen())
	assert.Nil(t, cmd)
}

func TestModel_Quit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		t.Run(msg.String(), func(t *testing.T) {
			m := New(newTestMenu(t, "1"), "/book")

			m, cmd := update(t, m, msg)

			assert.Empty(t, m.Chosen())
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
		})
	}
}

func TestModel_View(t *testing.T) {
	m := New(newTestMenu(t, "2"), "/book (branch main)")

	view := m.View()

	assert.Contains(t, view, "Book Builder")
	assert.Contains(t, view, "/book (branch main)")
	assert.Contains(t, view, "1. Build web")
	assert.Contains(t, view, "2. Build and view")
	assert.Contains(t, view, "(default)")
	assert.Contains(t, view, "$ pretext view web", "steps of the highlighted option are listed")
	assert.NotContains(t, view, "$ pretext build print")
	assert.Contains(t, view, "enter")
}

func TestModel_ViewEmptyAfterSelection(t *testing.T) {
	m := New(newTestMenu(t, "1"), "/book")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, m.View())
}

func TestModel_WindowSize(t *testing.T) {
	m := New(newTestMenu(t, "1"), "/book")
	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Nil(t, cmd)
}

func TestModel_ViewTruncatesToWidth(t *testing.T) {
	m := New(newTestMenu(t, "2"), "/book")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 16, Height: 20})

	view := m.View()

	assert.Contains(t, view, "2. Build …")
	assert.NotContains(t, view, "Build and view")
}
