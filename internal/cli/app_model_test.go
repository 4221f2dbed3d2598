package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/taskhub/internal/teatest"
	"github.com/alexanderramin/taskhub/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppModel_StartsOnLoginWithoutCredential(t *testing.T) {
	app, _ := newTestApp(t)
	app.Guard.ForceLogout(context.Background())

	m := newAppModel(app)
	d := teatest.New(t, m)
	d.Resize(100, 40)
	d.DrainInit()

	got := d.Model.(appModel)
	require.Equal(t, ViewLogin, got.activeView().ID())
}

func TestAppModel_LoggedOutMsgSwapsToLogin(t *testing.T) {
	app, _ := newTestApp(t, testutil.NewTestTask("Something"))
	d := newTasksDriver(t, app)

	d.Send(loggedOutMsg{})

	got := d.Model.(appModel)
	require.Equal(t, ViewLogin, got.activeView().ID())
	assert.Contains(t, got.toastText, "Session expired")
}

func TestAppModel_QuitKeys(t *testing.T) {
	app, _ := newTestApp(t)
	d := newTasksDriver(t, app)
	d.PressKey('q')
	assert.True(t, d.Quitting)
}

func TestAppModel_ThemeCyclePersists(t *testing.T) {
	app, _ := newTestApp(t)
	d := newTasksDriver(t, app)

	require.Equal(t, "ocean", d.Model.(appModel).state.Theme)
	d.PressKey('T')

	got := d.Model.(appModel)
	assert.Equal(t, "forest", got.state.Theme)
	assert.Equal(t, "forest", app.Prefs.Theme(context.Background()))
}

func TestAppModel_DensityTogglePersists(t *testing.T) {
	app, _ := newTestApp(t)
	d := newTasksDriver(t, app)

	d.PressKey('D')
	assert.Equal(t, "compact", app.Prefs.Density(context.Background()))
	d.PressKey('D')
	assert.Equal(t, "cozy", app.Prefs.Density(context.Background()))
}

func TestAppModel_DarkModeTogglePersists(t *testing.T) {
	app, _ := newTestApp(t)
	d := newTasksDriver(t, app)

	require.True(t, app.Prefs.DarkMode(context.Background()))
	d.PressKey('M')
	assert.False(t, app.Prefs.DarkMode(context.Background()))
}

func TestAppModel_ToastClearIgnoresStaleSeq(t *testing.T) {
	app, _ := newTestApp(t)
	d := newTasksDriver(t, app)

	d.Send(toastMsg{text: "first"})
	d.Send(toastMsg{text: "second"})
	m := d.Model.(appModel)
	require.Equal(t, "second", m.toastText)

	// The first toast's expiry must not clear the second.
	d.Send(clearToastMsg{seq: m.toastSeq - 1})
	assert.Equal(t, "second", d.Model.(appModel).toastText)

	d.Send(clearToastMsg{seq: m.toastSeq})
	assert.Empty(t, d.Model.(appModel).toastText)
}

func TestAppModel_UndoWithNothingPendingToasts(t *testing.T) {
	app, _ := newTestApp(t)
	d := newTasksDriver(t, app)

	d.PressKey('u')
	assert.Equal(t, "Nothing to undo", d.Model.(appModel).toastText)
}

func TestNotifier_DropsEventsBeforeBind(t *testing.T) {
	var n Notifier
	n.Changed() // must not panic

	var got []tea.Msg
	n.Bind(func(msg tea.Msg) { got = append(got, msg) })
	n.Changed()
	n.LoggedOut()
	require.Len(t, got, 2)
	assert.IsType(t, refreshViewMsg{}, got[0])
	assert.IsType(t, loggedOutMsg{}, got[1])

	n.Bind(nil)
	n.Changed()
	assert.Len(t, got, 2)
}
