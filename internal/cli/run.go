package cli

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Notifier forwards reconciler and session events into the running
// bubbletea program. Events arriving before Bind are dropped.
type Notifier struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

// Bind attaches the program's Send function.
func (n *Notifier) Bind(send func(tea.Msg)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.send = send
}

func (n *Notifier) dispatch(msg tea.Msg) {
	n.mu.Lock()
	send := n.send
	n.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

// Changed requests a view refresh. Safe to call from any goroutine.
func (n *Notifier) Changed() {
	n.dispatch(refreshViewMsg{})
}

// LoggedOut swaps the UI to the login screen.
func (n *Notifier) LoggedOut() {
	n.dispatch(loggedOutMsg{})
}

// CommitFailed surfaces a deferred-commit error as a toast.
func (n *Notifier) CommitFailed(err error) {
	n.dispatch(toastMsg{text: errorNotice(err), isError: true})
}

// RunTUI starts the interactive program and blocks until it exits.
func RunTUI(app *App, notify *Notifier) error {
	m := newAppModel(app)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if notify != nil {
		notify.Bind(p.Send)
		defer notify.Bind(nil)
	}
	_, err := p.Run()
	return err
}
