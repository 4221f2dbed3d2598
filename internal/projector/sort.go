package projector

import (
	"sort"

	"github.com/alexanderramin/taskhub/internal/domain"
)

// Sort orders tasks by the given key. Every ordering is stable: ties keep
// their input order. Tasks without a due date sort as if infinitely far in
// the future — last under due-asc, first under due-desc. Manual ranking
// places unranked tasks after all ranked ones.
func Sort(tasks []domain.Task, key domain.SortKey, manualOrder []string) []domain.Task {
	out := make([]domain.Task, len(tasks))
	copy(out, tasks)

	switch key {
	case domain.SortCreatedDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	case domain.SortPriorityDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Rank() > out[j].Priority.Rank()
		})
	case domain.SortDueAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return dueBefore(out[i], out[j])
		})
	case domain.SortDueDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return dueBefore(out[j], out[i])
		})
	case domain.SortManual:
		rank := make(map[string]int, len(manualOrder))
		for i, id := range manualOrder {
			rank[id] = i
		}
		unranked := len(manualOrder)
		pos := func(t domain.Task) int {
			if p, ok := rank[t.ID]; ok {
				return p
			}
			return unranked
		}
		sort.SliceStable(out, func(i, j int) bool {
			return pos(out[i]) < pos(out[j])
		})
	}
	return out
}

// dueBefore reports whether a's due date is strictly earlier than b's,
// treating a missing due date as infinitely late.
func dueBefore(a, b domain.Task) bool {
	switch {
	case a.DueDate == nil:
		return false
	case b.DueDate == nil:
		return true
	default:
		return a.DueDate.Before(*b.DueDate)
	}
}
