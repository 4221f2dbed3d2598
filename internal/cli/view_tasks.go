package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/taskhub/internal/cli/formatter"
	"github.com/alexanderramin/taskhub/internal/domain"
	"github.com/alexanderramin/taskhub/internal/projector"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// tasksLoadedMsg signals that the cache snapshot has been (re)loaded.
type tasksLoadedMsg struct {
	tasks []domain.Task
	order []string
	err   error
}

// mutationDoneMsg reports the outcome of an optimistic mutation.
type mutationDoneMsg struct {
	notice string
	err    error
}

var statusCycle = []domain.StatusFilter{
	domain.StatusAll, domain.StatusPending, domain.StatusCompleted, domain.StatusOverdue,
}

var sortCycle = []domain.SortKey{
	domain.SortCreatedDesc, domain.SortPriorityDesc, domain.SortDueAsc,
	domain.SortDueDesc, domain.SortManual,
}

var modeCycle = []domain.ViewMode{
	domain.ViewList, domain.ViewBoard, domain.ViewTimeline,
}

// tasksView is the home view: the projected task cache in list, board or
// timeline shape, plus the stats strip and focus box.
type tasksView struct {
	state *SharedState

	tasks []domain.Task
	order []string
	proj  projector.Projection

	mode     domain.ViewMode
	status   domain.StatusFilter
	category string
	sort     domain.SortKey

	search        textinput.Model
	searchFocused bool

	presets   []domain.FilterPreset
	presetIdx int // next preset to apply; -1 before first use

	cursor  int
	loading bool
	err     error
}

func newTasksView(state *SharedState) *tasksView {
	search := textinput.New()
	search.Placeholder = "search title, notes, category"
	search.Prompt = "/ "
	search.CharLimit = 120

	return &tasksView{
		state:     state,
		mode:      domain.ViewList,
		status:    domain.StatusAll,
		category:  "all",
		sort:      domain.SortCreatedDesc,
		search:    search,
		presetIdx: -1,
		loading:   true,
	}
}

func (v *tasksView) ID() ViewID { return ViewTasks }

func (v *tasksView) Title() string {
	switch v.mode {
	case domain.ViewBoard:
		return "Board"
	case domain.ViewTimeline:
		return "Timeline"
	}
	return "Tasks"
}

func (v *tasksView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "view")),
		key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "done")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("f"), key.WithHelp("f/c/s", "filters")),
		key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
	}
}

func (v *tasksView) Init() tea.Cmd {
	return v.loadTasks(false)
}

// loadTasks refreshes the snapshot; when fetch is true it asks the gateway
// for fresh state first.
func (v *tasksView) loadTasks(fetch bool) tea.Cmd {
	rec := v.state.App.Rec
	return func() tea.Msg {
		ctx := context.Background()
		if fetch || !rec.Loaded() {
			if err := rec.Load(ctx); err != nil {
				return tasksLoadedMsg{err: err}
			}
		}
		return tasksLoadedMsg{tasks: rec.Snapshot(), order: rec.ManualOrder()}
	}
}

func (v *tasksView) reproject() {
	v.proj = projector.Project(projector.Input{
		Tasks:       v.tasks,
		SearchTerm:  v.search.Value(),
		Status:      v.status,
		Category:    v.category,
		Sort:        v.sort,
		ManualOrder: v.order,
		Now:         v.state.Now(),
	})
	if v.cursor >= len(v.proj.List) {
		v.cursor = len(v.proj.List) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *tasksView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.tasks = msg.tasks
		v.order = msg.order
		v.reproject()
		return v, nil

	case refreshViewMsg:
		return v, v.loadTasks(false)

	case mutationDoneMsg:
		if msg.err != nil {
			return v, tea.Batch(v.loadTasks(false), toastError(errorNotice(msg.err)))
		}
		cmds := []tea.Cmd{v.loadTasks(false)}
		if msg.notice != "" {
			cmds = append(cmds, toast(msg.notice))
		}
		return v, tea.Batch(cmds...)

	case tea.KeyMsg:
		if v.searchFocused {
			return v.updateSearch(msg)
		}
		return v.handleKey(msg)
	}

	if v.searchFocused {
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *tasksView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		if msg.Type == tea.KeyEsc {
			v.search.SetValue("")
		}
		v.searchFocused = false
		v.search.Blur()
		v.reproject()
		return v, nil
	}
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	v.reproject()
	return v, cmd
}

func (v *tasksView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.proj.List)-1 {
			v.cursor++
		}
	case "tab":
		v.mode = nextIn(modeCycle, v.mode)
	case "f":
		v.status = nextIn(statusCycle, v.status)
		v.reproject()
	case "c":
		v.category = nextCategory(v.category)
		v.reproject()
	case "s":
		v.sort = nextIn(sortCycle, v.sort)
		v.reproject()
	case "/":
		v.searchFocused = true
		return v, v.search.Focus()
	case "a":
		return v, pushView(newTaskFormView(v.state, nil))
	case "e":
		if t, ok := v.selected(); ok {
			return v, pushView(newTaskFormView(v.state, &t))
		}
	case " ", "space":
		if t, ok := v.selected(); ok {
			return v, v.toggleComplete(t)
		}
	case "x":
		if t, ok := v.selected(); ok {
			return v, v.deleteTask(t)
		}
	case "J":
		return v, v.moveSelected(1)
	case "K":
		return v, v.moveSelected(-1)
	case "p":
		return v, v.applyNextPreset()
	case "P":
		return v, v.saveCurrentPreset()
	case "r":
		v.loading = true
		return v, v.loadTasks(true)
	}
	return v, nil
}

// selected returns the task under the cursor in the flat list ordering.
// Board and timeline modes share the same ordering for mutations.
func (v *tasksView) selected() (domain.Task, bool) {
	if v.cursor < 0 || v.cursor >= len(v.proj.List) {
		return domain.Task{}, false
	}
	return v.proj.List[v.cursor], true
}

func (v *tasksView) toggleComplete(t domain.Task) tea.Cmd {
	rec := v.state.App.Rec
	notice := "Completed — press u to undo"
	if t.Completed {
		notice = "Reopened — press u to undo"
	}
	return func() tea.Msg {
		if err := rec.ToggleComplete(context.Background(), t.ID); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{notice: notice}
	}
}

func (v *tasksView) deleteTask(t domain.Task) tea.Cmd {
	rec := v.state.App.Rec
	title := t.Title
	return func() tea.Msg {
		if err := rec.Delete(context.Background(), t.ID); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{notice: fmt.Sprintf("Deleted %q — press u to undo", title)}
	}
}

// moveSelected reorders the selected task one slot up or down. Only
// meaningful under manual sort; other sorts would immediately reshuffle.
func (v *tasksView) moveSelected(delta int) tea.Cmd {
	if v.sort != domain.SortManual {
		return toast("Switch to manual sort (s) to reorder")
	}
	t, ok := v.selected()
	if !ok {
		return nil
	}
	targetIdx := v.cursor + delta
	if targetIdx < 0 || targetIdx >= len(v.proj.List) {
		return nil
	}
	target := v.proj.List[targetIdx]
	rec := v.state.App.Rec
	v.cursor = targetIdx
	return func() tea.Msg {
		if err := rec.Reorder(context.Background(), t.ID, target.ID); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{}
	}
}

// ── filter presets ──────────────────────────────────────────────────────────

func (v *tasksView) applyNextPreset() tea.Cmd {
	ctx := context.Background()
	if v.presetIdx < 0 {
		v.presets = v.state.App.Prefs.FilterPresets(ctx)
	}
	if len(v.presets) == 0 {
		return toast("No saved filter presets")
	}
	v.presetIdx = (v.presetIdx + 1) % len(v.presets)
	p := v.presets[v.presetIdx]
	v.search.SetValue(p.SearchTerm)
	v.status = p.Status
	v.category = p.Category
	v.sort = p.Sort
	v.reproject()
	return toast(fmt.Sprintf("Preset %q applied", p.Name))
}

func (v *tasksView) saveCurrentPreset() tea.Cmd {
	ctx := context.Background()
	store := v.state.App.Prefs
	preset := domain.FilterPreset{
		Name:       presetName(v.status, v.category),
		SearchTerm: v.search.Value(),
		Status:     v.status,
		Category:   v.category,
		Sort:       v.sort,
	}
	presets := append(store.FilterPresets(ctx), preset)
	return func() tea.Msg {
		if err := store.SetFilterPresets(ctx, presets); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{notice: fmt.Sprintf("Preset %q saved", preset.Name)}
	}
}

func presetName(status domain.StatusFilter, category string) string {
	name := string(status)
	if category != "" && category != "all" {
		name += " · " + category
	}
	return name
}

// ── rendering ───────────────────────────────────────────────────────────────

func (v *tasksView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading tasks...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleBad.Render("Error: "+v.err.Error())
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(v.renderFilterBar())
	b.WriteString("\n")

	switch v.mode {
	case domain.ViewBoard:
		b.WriteString(v.renderBoard())
	case domain.ViewTimeline:
		b.WriteString(v.renderTimeline())
	default:
		b.WriteString(v.renderList())
	}

	b.WriteString("\n")
	b.WriteString(v.renderStats())
	if focus := v.renderFocus(); focus != "" {
		b.WriteString("\n")
		b.WriteString(focus)
	}
	return b.String()
}

func (v *tasksView) renderFilterBar() string {
	parts := []string{
		formatter.Dim("status:") + formatter.StyleAccent.Render(string(v.status)),
		formatter.Dim("category:") + formatter.StyleAccent.Render(v.category),
		formatter.Dim("sort:") + formatter.StyleAccent.Render(string(v.sort)),
	}
	bar := "  " + strings.Join(parts, formatter.Dim("  │  "))
	if v.searchFocused {
		return bar + "\n  " + v.search.View()
	}
	if term := v.search.Value(); term != "" {
		return bar + "\n  " + formatter.Dim("search: ") + term
	}
	return bar
}

func (v *tasksView) renderList() string {
	if len(v.proj.List) == 0 {
		return "\n  " + formatter.Dim("No tasks match the current filters.")
	}
	var b strings.Builder
	for i, t := range v.proj.List {
		b.WriteString(v.renderRow(t, i == v.cursor))
		b.WriteByte('\n')
		if !v.state.Compact() && t.Description != "" {
			b.WriteString("      " + formatter.Dim(formatter.Truncate(t.Description, 70)) + "\n")
		}
	}
	return b.String()
}

func (v *tasksView) renderRow(t domain.Task, isCursor bool) string {
	cursor := "  "
	if isCursor {
		cursor = formatter.StyleGood.Render("▸ ")
	}

	check := formatter.Dim("○")
	title := t.Title
	if t.Completed {
		check = formatter.StyleGood.Render("●")
		title = formatter.Dim(title)
	} else if t.IsOverdue(v.state.Now()) {
		title = formatter.StyleBad.Render(title)
	}

	meta := formatter.Dim(string(t.Category))
	if t.DueDate != nil {
		due := formatter.RelativeDateFrom(*t.DueDate, v.state.Now())
		if !t.Completed && t.IsOverdue(v.state.Now()) {
			meta += " " + formatter.StyleBad.Render(due)
		} else {
			meta += " " + formatter.Dim(due)
		}
	}
	if t.EstimatedTime > 0 {
		meta += " " + formatter.Dim(formatter.Hours(t.EstimatedTime))
	}

	return fmt.Sprintf("%s%s %s %s  %s", cursor, check, formatter.PriorityBadge(t.Priority), title, meta)
}

func (v *tasksView) renderBoard() string {
	cols := []struct {
		title string
		style lipgloss.Style
		tasks []domain.Task
	}{
		{"Overdue", formatter.StyleBad, v.proj.Board.Overdue},
		{"Pending", formatter.StyleWarn, v.proj.Board.Pending},
		{"Completed", formatter.StyleGood, v.proj.Board.Completed},
	}

	colWidth := 30
	if v.state.Width > 0 {
		if w := (v.state.Width - 8) / 3; w > 20 {
			colWidth = w
		}
	}

	var rendered []string
	for _, col := range cols {
		var b strings.Builder
		b.WriteString(col.style.Bold(true).Render(fmt.Sprintf("%s (%d)", col.title, len(col.tasks))))
		b.WriteString("\n")
		if len(col.tasks) == 0 {
			b.WriteString(formatter.Dim("  —"))
		}
		for _, t := range col.tasks {
			marker := "·"
			if isSelectedTask(v.proj.List, v.cursor, t.ID) {
				marker = formatter.StyleGood.Render("▸")
			}
			line := fmt.Sprintf("%s %s %s", marker, formatter.PriorityBadge(t.Priority),
				formatter.Truncate(t.Title, colWidth-6))
			b.WriteString(line + "\n")
		}
		rendered = append(rendered, lipgloss.NewStyle().Width(colWidth).Render(b.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered[0], "  ", rendered[1], "  ", rendered[2])
}

func isSelectedTask(list []domain.Task, cursor int, id string) bool {
	return cursor >= 0 && cursor < len(list) && list[cursor].ID == id
}

func (v *tasksView) renderTimeline() string {
	if len(v.proj.Timeline) == 0 {
		return "\n  " + formatter.Dim("Nothing scheduled.")
	}
	var b strings.Builder
	for _, bucket := range v.proj.Timeline {
		label := "Unscheduled"
		if !bucket.NoDate {
			label = formatter.DayLabel(bucket.Day, v.state.Now())
		}
		b.WriteString("  " + formatter.Header(label) + "\n")
		for _, t := range bucket.Tasks {
			b.WriteString("  " + v.renderRow(t, isSelectedTask(v.proj.List, v.cursor, t.ID)) + "\n")
		}
		if !v.state.Compact() {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (v *tasksView) renderStats() string {
	s := v.proj.Stats
	var pct float64
	if s.Total > 0 {
		pct = float64(s.Completed) / float64(s.Total)
	}
	parts := []string{
		fmt.Sprintf("%d tasks", s.Total),
		fmt.Sprintf("%d open", s.Pending),
		fmt.Sprintf("%d done %s", s.Completed, formatter.RenderProgress(pct, 8)),
		fmt.Sprintf("streak %dd", s.StreakDays),
		"next 7d " + formatter.Hours(s.SevenDayLoad),
	}
	return "  " + formatter.Dim(strings.Join(parts, "   "))
}

func (v *tasksView) renderFocus() string {
	if len(v.proj.Focus) == 0 {
		return ""
	}
	var lines []string
	for i, t := range v.proj.Focus {
		due := "no due date"
		if t.DueDate != nil {
			due = formatter.RelativeDateFrom(*t.DueDate, v.state.Now())
		}
		lines = append(lines, fmt.Sprintf("%d. %s %s  %s",
			i+1, formatter.PriorityBadge(t.Priority), t.Title, formatter.Dim(due)))
	}
	return "  " + strings.ReplaceAll(formatter.RenderBox("Focus", strings.Join(lines, "\n")), "\n", "\n  ")
}

// nextIn cycles to the element after cur, wrapping around.
func nextIn[T comparable](cycle []T, cur T) T {
	for i, v := range cycle {
		if v == cur {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}

// nextCategory cycles all → each category → all.
func nextCategory(cur string) string {
	cats := domain.CategoryNames()
	if cur == "all" || cur == "" {
		return cats[0]
	}
	for i, c := range cats {
		if c == cur {
			if i == len(cats)-1 {
				return "all"
			}
			return cats[i+1]
		}
	}
	return "all"
}

func errorNotice(err error) string {
	if domain.IsValidation(err) {
		return err.Error()
	}
	return "Request failed: " + err.Error()
}
