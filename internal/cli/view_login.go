package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/taskhub/internal/cli/formatter"
	"github.com/alexanderramin/taskhub/internal/gateway"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// loginDoneMsg reports the outcome of a login or register attempt.
type loginDoneMsg struct {
	err error
}

// loginView collects credentials and exchanges them for a session token.
type loginView struct {
	state    *SharedState
	form     *huh.Form
	register bool

	username string
	email    string
	password string

	submitting bool
	errText    string
}

func newLoginView(state *SharedState, register bool) *loginView {
	v := &loginView{state: state, register: register}
	v.form = v.buildForm()
	return v
}

func (v *loginView) buildForm() *huh.Form {
	fields := []huh.Field{}
	if v.register {
		fields = append(fields, huh.NewInput().
			Title("Username").
			Value(&v.username).
			Validate(requireField("username")))
	}
	fields = append(fields,
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Value(&v.email).
			Validate(requireField("email")),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&v.password).
			Validate(requireField("password")),
	)
	return huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(taskhubHuhTheme()).
		WithShowHelp(false)
}

func requireField(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func (v *loginView) ID() ViewID { return ViewLogin }

func (v *loginView) Title() string {
	if v.register {
		return "Register"
	}
	return "Sign In"
}

func (v *loginView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "toggle register")),
	}
}

func (v *loginView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *loginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		v.submitting = false
		if msg.err != nil {
			v.errText = loginErrorText(msg.err)
			v.form = v.buildForm()
			return v, v.form.Init()
		}
		home := newTasksView(v.state)
		return v, tea.Batch(
			func() tea.Msg { return replaceStackMsg{view: home} },
			toast("Signed in"),
		)

	case tea.KeyMsg:
		// Toggle between sign-in and register.
		if msg.Type == tea.KeyCtrlR && !v.submitting {
			v.register = !v.register
			v.errText = ""
			v.form = v.buildForm()
			return v, v.form.Init()
		}
	}

	if v.submitting {
		return v, nil
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		v.submitting = true
		v.errText = ""
		return v, v.submit()
	}
	if v.form.State == huh.StateAborted {
		v.form = v.buildForm()
		return v, v.form.Init()
	}
	return v, cmd
}

func (v *loginView) submit() tea.Cmd {
	app := v.state.App
	register := v.register
	username, email, password := v.username, v.email, v.password
	return func() tea.Msg {
		ctx := context.Background()
		var token string
		var err error
		if register {
			token, err = app.Remote.Register(ctx, username, email, password)
		} else {
			token, err = app.Remote.Login(ctx, email, password)
		}
		if err != nil {
			return loginDoneMsg{err: err}
		}
		if err := app.Guard.SetCredential(ctx, token); err != nil {
			return loginDoneMsg{err: err}
		}
		return loginDoneMsg{}
	}
}

func (v *loginView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	if v.errText != "" {
		b.WriteString("  " + formatter.StyleBad.Render(v.errText) + "\n\n")
	}
	if v.submitting {
		b.WriteString("  " + formatter.Dim("Signing in...") + "\n")
		return b.String()
	}
	b.WriteString(v.form.View())
	b.WriteString("\n  " + formatter.Dim("ctrl+r: switch between sign in and register"))
	return b.String()
}

func loginErrorText(err error) string {
	var terr *gateway.TransportError
	if errors.As(err, &terr) {
		return terr.Message
	}
	if errors.Is(err, gateway.ErrUnavailable) {
		return "Server unreachable. Is taskhub serve running?"
	}
	return err.Error()
}
