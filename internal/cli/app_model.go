package cli

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/taskhub/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
)

// appModel is the root bubbletea Model for the TUI.
// It manages a view stack, a transient toast line and global keybindings.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool

	toastText  string
	toastError bool
	toastSeq   int
}

func newAppModel(app *App) appModel {
	ctx := context.Background()
	state := &SharedState{
		App:      app,
		Theme:    app.Prefs.Theme(ctx),
		Density:  app.Prefs.Density(ctx),
		DarkMode: app.Prefs.DarkMode(ctx),
		Now:      time.Now,
	}
	formatter.SetDarkMode(state.DarkMode)
	formatter.ApplyTheme(state.Theme)

	m := appModel{state: state}
	if app.Guard.LoggedIn() {
		m.viewStack = []View{newTasksView(state)}
	} else {
		m.viewStack = []View{newLoginView(state, false)}
	}
	return m
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// ── bubbletea interface ─────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		if v := m.activeView(); v != nil {
			updated, cmd := v.Update(msg)
			m.setActiveView(updated.(View))
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, refreshViews()

	case replaceStackMsg:
		m.viewStack = []View{msg.view}
		return m, msg.view.Init()

	case loggedOutMsg:
		login := newLoginView(m.state, false)
		m.viewStack = []View{login}
		return m, tea.Batch(login.Init(), toastError("Session expired. Please sign in again."))

	case refreshViewMsg:
		// Broadcast so views below the top also reload after mutations.
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case toastMsg:
		m.toastText = msg.text
		m.toastError = msg.isError
		m.toastSeq++
		seq := m.toastSeq
		return m, tea.Tick(4*time.Second, func(time.Time) tea.Msg {
			return clearToastMsg{seq: seq}
		})

	case clearToastMsg:
		if msg.seq == m.toastSeq {
			m.toastText = ""
		}
		return m, nil
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// Views with text inputs receive all keys directly.
	if v := m.activeView(); v != nil && viewCapturesInput(v) {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "u":
		return m, m.undo()

	case "T":
		return m, m.cycleTheme()

	case "D":
		return m, m.toggleDensity()

	case "M":
		return m, m.toggleDarkMode()

	case "esc":
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
			return m, refreshViews()
		}
		return m, nil
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

func (m *appModel) undo() tea.Cmd {
	rec := m.state.App.Rec
	return func() tea.Msg {
		if rec.Undo(context.Background()) {
			return toastMsg{text: "Undone"}
		}
		return toastMsg{text: "Nothing to undo"}
	}
}

func (m *appModel) cycleTheme() tea.Cmd {
	m.state.Theme = nextIn(formatter.ThemePresets(), m.state.Theme)
	formatter.ApplyTheme(m.state.Theme)
	theme := m.state.Theme
	store := m.state.App.Prefs
	return tea.Batch(
		func() tea.Msg {
			_ = store.SetTheme(context.Background(), theme)
			return nil
		},
		toast("Theme: "+theme),
	)
}

func (m *appModel) toggleDensity() tea.Cmd {
	if m.state.Compact() {
		m.state.Density = "cozy"
	} else {
		m.state.Density = "compact"
	}
	density := m.state.Density
	store := m.state.App.Prefs
	return tea.Batch(
		func() tea.Msg {
			_ = store.SetDensity(context.Background(), density)
			return nil
		},
		toast("Density: "+density),
	)
}

func (m *appModel) toggleDarkMode() tea.Cmd {
	m.state.DarkMode = !m.state.DarkMode
	formatter.SetDarkMode(m.state.DarkMode)
	on := m.state.DarkMode
	store := m.state.App.Prefs
	label := "Dark mode off"
	if on {
		label = "Dark mode on"
	}
	return tea.Batch(
		func() tea.Msg {
			_ = store.SetDarkMode(context.Background(), on)
			return nil
		},
		toast(label),
	)
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}

	sections = append(sections, m.renderToast())
	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}
	return result
}

// ── rendering helpers ───────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StyleHeader.Render("taskhub")

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	breadcrumb := ""
	if len(crumbs) > 0 {
		breadcrumb = " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return title + breadcrumb + "\n" + sep
}

func (m *appModel) renderToast() string {
	if m.toastText == "" {
		return ""
	}
	if m.toastError {
		return "  " + formatter.StyleBad.Render(m.toastText)
	}
	return "  " + formatter.StyleWarn.Render(m.toastText)
}

func (m *appModel) renderStatusBar() string {
	var hints []string
	if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}
	if len(m.viewStack) > 1 {
		hints = append(hints, formatter.Dim("esc: back"))
	}
	hints = append(hints, formatter.Dim("q: quit"))

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + strings.Join(hints, "  ")
}
