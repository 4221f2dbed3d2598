package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies the views the app can stack.
type ViewID string

const (
	ViewTasks    ViewID = "tasks"
	ViewTaskForm ViewID = "task-form"
	ViewLogin    ViewID = "login"
)

// View is a screen in the navigation stack.
type View interface {
	ID() ViewID
	Title() string
	ShortHelp() []key.Binding
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Model, tea.Cmd)
	View() string
}

// viewCapturesInput reports whether the active view owns raw key input
// (text fields and forms) and should bypass global keybindings.
func viewCapturesInput(v View) bool {
	if v == nil {
		return false
	}
	switch v.ID() {
	case ViewTaskForm, ViewLogin:
		return true
	}
	if tv, ok := v.(*tasksView); ok {
		return tv.searchFocused
	}
	return false
}
