package projector

import (
	"strings"
	"time"

	"github.com/alexanderramin/taskhub/internal/domain"
)

// Filter applies the search term, status filter and category filter.
// The search matches case-insensitively as a substring of title,
// description or category.
func Filter(tasks []domain.Task, term string, status domain.StatusFilter, category string, now time.Time) []domain.Task {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if term != "" && !matchesTerm(t, term) {
			continue
		}
		if !matchesStatus(t, status, now) {
			continue
		}
		if category != "" && category != "all" && string(t.Category) != category {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesTerm(t domain.Task, term string) bool {
	for _, field := range []string{t.Title, t.Description, string(t.Category)} {
		if field != "" && strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func matchesStatus(t domain.Task, status domain.StatusFilter, now time.Time) bool {
	switch status {
	case domain.StatusPending:
		return !t.Completed
	case domain.StatusCompleted:
		return t.Completed
	case domain.StatusOverdue:
		return t.IsOverdue(now)
	}
	return true // "all" or unset
}
