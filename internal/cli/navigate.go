package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack.
type popViewMsg struct{}

// refreshViewMsg tells every view on the stack to reload its data.
// Sent after mutations and whenever the reconciler reports a change.
type refreshViewMsg struct{}

// toastMsg shows a transient one-line notice above the status bar.
type toastMsg struct {
	text    string
	isError bool
}

// clearToastMsg dismisses a toast; stale sequence numbers are ignored.
type clearToastMsg struct{ seq int }

// replaceStackMsg resets the navigation stack to a single view.
type replaceStackMsg struct {
	view View
}

// loggedOutMsg is emitted when the session guard forces a logout.
// The appModel swaps the stack for the login view.
type loggedOutMsg struct{}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

// refreshViews returns a tea.Cmd that broadcasts a refresh.
func refreshViews() tea.Cmd {
	return func() tea.Msg { return refreshViewMsg{} }
}

// toast returns a tea.Cmd that shows a transient notice.
func toast(text string) tea.Cmd {
	return func() tea.Msg { return toastMsg{text: text} }
}

// toastError returns a tea.Cmd that shows a transient error notice.
func toastError(text string) tea.Cmd {
	return func() tea.Msg { return toastMsg{text: text, isError: true} }
}
