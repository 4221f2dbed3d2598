package projector

import (
	"sort"
	"time"

	"github.com/alexanderramin/taskhub/internal/domain"
)

// focusListSize is how many tasks the focus panel surfaces.
const focusListSize = 3

// noDueHorizonDays is how far out a task with no due date is treated as
// due, which zeroes its urgency bonus.
const noDueHorizonDays = 30

// FocusScore is the composite urgency of an incomplete task: its priority
// weight plus an urgency bonus that grows as the due date approaches.
func FocusScore(t domain.Task, now time.Time) float64 {
	due := now.AddDate(0, 0, noDueHorizonDays)
	if t.DueDate != nil {
		due = *t.DueDate
	}
	daysLeft := due.Sub(now).Hours() / 24
	urgency := noDueHorizonDays - daysLeft
	if urgency < 0 {
		urgency = 0
	}
	return t.Priority.Weight() + urgency
}

// FocusList ranks the incomplete tasks by focus score and returns the top
// three. Ties keep input order.
func FocusList(tasks []domain.Task, now time.Time) []domain.Task {
	var pending []domain.Task
	for _, t := range tasks {
		if !t.Completed {
			pending = append(pending, t)
		}
	}

	sort.SliceStable(pending, func(i, j int) bool {
		return FocusScore(pending[i], now) > FocusScore(pending[j], now)
	})

	if len(pending) > focusListSize {
		pending = pending[:focusListSize]
	}
	return pending
}
