package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/taskhub/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// taskFormFields holds the form-bound values for the create/edit form.
type taskFormFields struct {
	title     string
	desc      string
	category  string
	priority  string
	startDate string
	dueDate   string
	estimated string
}

// taskFormView wraps a huh.Form for creating or editing a task.
// A nil edit target means create.
type taskFormView struct {
	state  *SharedState
	form   *huh.Form
	fields *taskFormFields
	editID string
}

func newTaskFormView(state *SharedState, edit *domain.Task) *taskFormView {
	f := &taskFormFields{category: string(domain.CategoryOther), priority: string(domain.PriorityMedium)}
	editID := ""
	if edit != nil {
		editID = edit.ID
		f.title = edit.Title
		f.desc = edit.Description
		f.category = string(edit.Category)
		f.priority = string(edit.Priority)
		f.startDate = formatDate(edit.StartDate)
		f.dueDate = formatDate(edit.DueDate)
		f.estimated = formatHours(edit.EstimatedTime)
	}

	var catOpts []huh.Option[string]
	for _, c := range domain.CategoryNames() {
		catOpts = append(catOpts, huh.NewOption(c, c))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&f.title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewText().
				Title("Notes").
				Value(&f.desc).
				Lines(3),
			huh.NewSelect[string]().
				Title("Category").
				Options(catOpts...).
				Value(&f.category),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("High", string(domain.PriorityHigh)),
					huh.NewOption("Medium", string(domain.PriorityMedium)),
					huh.NewOption("Low", string(domain.PriorityLow)),
				).
				Value(&f.priority),
			dateInput("Start Date (blank for none)", &f.startDate),
			dateInput("Due Date (blank for none)", &f.dueDate),
			huh.NewInput().
				Title("Estimated Hours").
				Placeholder("1.5").
				Value(&f.estimated).
				Validate(validateOptionalHours),
		),
	).WithTheme(taskhubHuhTheme()).WithShowHelp(false)

	return &taskFormView{state: state, form: form, fields: f, editID: editID}
}

func (v *taskFormView) ID() ViewID { return ViewTaskForm }

func (v *taskFormView) Title() string {
	if v.editID != "" {
		return "Edit Task"
	}
	return "New Task"
}

func (v *taskFormView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (v *taskFormView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *taskFormView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return v, tea.Batch(popView(), toast("Cancelled"))
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		return v, tea.Batch(popView(), v.submit())
	}
	if v.form.State == huh.StateAborted {
		return v, tea.Batch(popView(), toast("Cancelled"))
	}
	return v, cmd
}

func (v *taskFormView) View() string {
	return "\n" + v.form.View()
}

func (v *taskFormView) submit() tea.Cmd {
	rec := v.state.App.Rec
	f := *v.fields
	editID := v.editID
	return func() tea.Msg {
		ctx := context.Background()
		estimated, _ := strconv.ParseFloat(f.estimated, 64)

		if editID == "" {
			draft := domain.TaskDraft{
				Title:         strings.TrimSpace(f.title),
				Description:   f.desc,
				Category:      domain.Category(f.category),
				Priority:      domain.Priority(f.priority),
				StartDate:     parseDate(f.startDate),
				DueDate:       parseDate(f.dueDate),
				EstimatedTime: estimated,
			}
			if err := rec.Create(ctx, draft); err != nil {
				return mutationDoneMsg{err: err}
			}
			return mutationDoneMsg{notice: fmt.Sprintf("Created %q", draft.Title)}
		}

		cat := domain.Category(f.category)
		prio := domain.Priority(f.priority)
		patch := domain.TaskPatch{
			Title:         domain.StrPtr(strings.TrimSpace(f.title)),
			Description:   domain.StrPtr(f.desc),
			Category:      &cat,
			Priority:      &prio,
			EstimatedTime: domain.Float64Ptr(estimated),
		}
		if d := parseDate(f.startDate); d != nil {
			patch.StartDate = d
		} else {
			patch.ClearStartDate = true
		}
		if d := parseDate(f.dueDate); d != nil {
			patch.DueDate = d
		} else {
			patch.ClearDueDate = true
		}
		if err := rec.Update(ctx, editID, patch); err != nil {
			return mutationDoneMsg{err: err}
		}
		return mutationDoneMsg{notice: "Updated — press u to undo"}
	}
}
