package cli

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/taskhub/internal/db"
	"github.com/alexanderramin/taskhub/internal/domain"
	"github.com/alexanderramin/taskhub/internal/prefs"
	"github.com/alexanderramin/taskhub/internal/reconcile"
	"github.com/alexanderramin/taskhub/internal/session"
	"github.com/alexanderramin/taskhub/internal/teatest"
	"github.com/alexanderramin/taskhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 20, 15, 0, 0, 0, time.UTC)

// newTestApp wires a full App over an in-memory prefs store and a fake
// gateway, already signed in.
func newTestApp(t *testing.T, tasks ...domain.Task) (*App, *testutil.FakeGateway) {
	t.Helper()
	ctx := context.Background()

	conn, err := db.Open(":memory:", prefs.Schema)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	store := prefs.NewStore(conn)

	guard := session.NewGuard(ctx, store, nil)
	require.NoError(t, guard.SetCredential(ctx, "tok"))

	gw := &testutil.FakeGateway{Tasks: tasks}
	rec := reconcile.New(gw, guard, store)

	return &App{Prefs: store, Guard: guard, Rec: rec}, gw
}

// newTasksDriver boots the app model with the tasks view on top.
func newTasksDriver(t *testing.T, app *App) *teatest.Driver {
	t.Helper()
	m := newAppModel(app)
	m.state.Now = func() time.Time { return testNow }
	d := teatest.New(t, m)
	d.Resize(100, 40)
	d.DrainInit()
	return d
}

func tasksViewOf(t *testing.T, d *teatest.Driver) *tasksView {
	t.Helper()
	m, ok := d.Model.(appModel)
	require.True(t, ok)
	v, ok := m.activeView().(*tasksView)
	require.True(t, ok)
	return v
}

func TestTasksView_LoadsAndLists(t *testing.T) {
	app, _ := newTestApp(t,
		testutil.NewTestTask("Write report", testutil.WithPriority(domain.PriorityHigh)),
		testutil.NewTestTask("Buy groceries"),
	)
	d := newTasksDriver(t, app)

	v := tasksViewOf(t, d)
	require.Len(t, v.proj.List, 2)
	assert.False(t, v.loading)

	out := d.View()
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "Buy groceries")
	assert.Contains(t, out, "2 tasks")
}

func TestTasksView_StatusFilterCycles(t *testing.T) {
	app, _ := newTestApp(t,
		testutil.NewTestTask("Done", testutil.WithCompleted(true)),
		testutil.NewTestTask("Open"),
	)
	d := newTasksDriver(t, app)

	d.PressKey('f') // all -> pending
	v := tasksViewOf(t, d)
	assert.Equal(t, domain.StatusPending, v.status)
	require.Len(t, v.proj.List, 1)
	assert.Equal(t, "Open", v.proj.List[0].Title)

	d.PressKey('f') // pending -> completed
	v = tasksViewOf(t, d)
	require.Len(t, v.proj.List, 1)
	assert.Equal(t, "Done", v.proj.List[0].Title)
}

func TestTasksView_SearchNarrowsList(t *testing.T) {
	app, _ := newTestApp(t,
		testutil.NewTestTask("Quarterly review"),
		testutil.NewTestTask("Water plants"),
	)
	d := newTasksDriver(t, app)

	d.PressKey('/')
	require.True(t, tasksViewOf(t, d).searchFocused)

	d.Type("qua")
	v := tasksViewOf(t, d)
	require.Len(t, v.proj.List, 1)
	assert.Equal(t, "Quarterly review", v.proj.List[0].Title)

	// Esc clears the term and restores the full list.
	d.PressEsc()
	v = tasksViewOf(t, d)
	assert.False(t, v.searchFocused)
	assert.Len(t, v.proj.List, 2)
}

func TestTasksView_ToggleCompleteIsOptimistic(t *testing.T) {
	app, gw := newTestApp(t, testutil.NewTestTask("Flip me"))
	d := newTasksDriver(t, app)

	d.PressSpace()

	snap := app.Rec.Snapshot()
	require.Len(t, snap, 1)
	assert.True(t, snap[0].Completed)
	assert.Empty(t, gw.CallsOf("update"), "commit stays deferred inside the undo window")
}

func TestTasksView_DeleteThenUndoKeyRestores(t *testing.T) {
	app, gw := newTestApp(t, testutil.NewTestTask("Keep me"))
	d := newTasksDriver(t, app)

	d.PressKey('x')
	assert.Empty(t, app.Rec.Snapshot())

	d.PressKey('u')
	assert.Len(t, app.Rec.Snapshot(), 1)
	assert.Empty(t, gw.CallsOf("delete"))
}

func TestTasksView_ReorderRequiresManualSort(t *testing.T) {
	app, _ := newTestApp(t,
		testutil.NewTestTask("First"),
		testutil.NewTestTask("Second"),
	)
	d := newTasksDriver(t, app)

	// Under created-desc the move keys only show a hint.
	before := append([]string(nil), app.Rec.ManualOrder()...)
	d.PressKey('J')
	assert.Equal(t, before, app.Rec.ManualOrder())

	// Cycle to manual sort, then move the cursor row down.
	for tasksViewOf(t, d).sort != domain.SortManual {
		d.PressKey('s')
	}
	dragged := tasksViewOf(t, d).proj.List[0].ID
	d.PressKey('J')
	assert.Equal(t, dragged, app.Rec.ManualOrder()[1])
}

func TestTasksView_BoardAndTimelineRender(t *testing.T) {
	app, _ := newTestApp(t,
		testutil.NewTestTask("Late", testutil.WithDueDate(testNow.AddDate(0, 0, -2))),
		testutil.NewTestTask("Scheduled", testutil.WithStartDate(testNow.AddDate(0, 0, 3))),
		testutil.NewTestTask("Finished", testutil.WithCompleted(true)),
	)
	d := newTasksDriver(t, app)

	d.PressTab()
	v := tasksViewOf(t, d)
	require.Equal(t, domain.ViewBoard, v.mode)
	out := d.View()
	assert.Contains(t, out, "Overdue (1)")
	assert.Contains(t, out, "Pending (1)")
	assert.Contains(t, out, "Completed (1)")

	d.PressTab()
	require.Equal(t, domain.ViewTimeline, tasksViewOf(t, d).mode)
	assert.Contains(t, d.View(), "Unscheduled")
}

func TestTasksView_PresetSaveAndApply(t *testing.T) {
	app, _ := newTestApp(t, testutil.NewTestTask("Anything"))
	d := newTasksDriver(t, app)

	d.PressKey('f') // pending
	d.PressKey('P') // save preset

	presets := app.Prefs.FilterPresets(context.Background())
	require.Len(t, presets, 1)
	assert.Equal(t, domain.StatusPending, presets[0].Status)

	// A fresh session starts on default filters; applying the preset
	// brings the saved ones back.
	d2 := newTasksDriver(t, app)
	require.Equal(t, domain.StatusAll, tasksViewOf(t, d2).status)
	d2.PressKey('p')
	assert.Equal(t, domain.StatusPending, tasksViewOf(t, d2).status)
}

func TestTaskFormView_SubmitCreatesTask(t *testing.T) {
	app, _ := newTestApp(t)
	state := &SharedState{App: app, Now: func() time.Time { return testNow }}
	require.NoError(t, app.Rec.Load(context.Background()))

	form := newTaskFormView(state, nil)
	form.fields.title = "From form"
	form.fields.priority = string(domain.PriorityHigh)
	form.fields.dueDate = "2026-09-01"
	form.fields.estimated = "2.5"

	msg := form.submit()()
	done, ok := msg.(mutationDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)

	snap := app.Rec.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "From form", snap[0].Title)
	assert.Equal(t, domain.PriorityHigh, snap[0].Priority)
	require.NotNil(t, snap[0].DueDate)
	assert.Equal(t, 2.5, snap[0].EstimatedTime)
}

func TestTaskFormView_SubmitEditPatchesOptimistically(t *testing.T) {
	task := testutil.NewTestTask("Old title", testutil.WithDueDate(testNow.AddDate(0, 0, 5)))
	app, gw := newTestApp(t, task)
	state := &SharedState{App: app, Now: func() time.Time { return testNow }}
	require.NoError(t, app.Rec.Load(context.Background()))

	form := newTaskFormView(state, &task)
	form.fields.title = "New title"
	form.fields.dueDate = "" // clears the due date

	msg := form.submit()()
	done, ok := msg.(mutationDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)

	snap := app.Rec.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "New title", snap[0].Title)
	assert.Nil(t, snap[0].DueDate)
	assert.Empty(t, gw.CallsOf("update"))
}

func TestTaskFormView_PrefillsEditTarget(t *testing.T) {
	due := testNow.AddDate(0, 0, 2)
	task := testutil.NewTestTask("Prefilled",
		testutil.WithPriority(domain.PriorityLow),
		testutil.WithDueDate(due),
		testutil.WithEstimatedTime(1.5),
	)
	app, _ := newTestApp(t, task)
	state := &SharedState{App: app, Now: func() time.Time { return testNow }}

	form := newTaskFormView(state, &task)
	assert.Equal(t, "Prefilled", form.fields.title)
	assert.Equal(t, string(domain.PriorityLow), form.fields.priority)
	assert.Equal(t, due.Format("2006-01-02"), form.fields.dueDate)
	assert.Equal(t, "1.5", form.fields.estimated)
}
