package reconcile

import (
	"context"

	"github.com/alexanderramin/taskhub/internal/domain"
)

// syncManualOrder reconciles a stored ordering with the current cache:
// ids no longer present are pruned, unseen ids are appended in cache
// order, and the relative order of the rest is preserved.
func syncManualOrder(stored []string, tasks []domain.Task) []string {
	present := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		present[t.ID] = true
	}

	order := make([]string, 0, len(tasks))
	seen := make(map[string]bool, len(tasks))
	for _, id := range stored {
		if present[id] && !seen[id] {
			order = append(order, id)
			seen[id] = true
		}
	}
	for _, t := range tasks {
		if !seen[t.ID] {
			order = append(order, t.ID)
			seen[t.ID] = true
		}
	}
	return order
}

// Reorder moves draggedID to targetID's position in the manual order and
// persists the result. Unranked ids make it a no-op.
func (r *Reconciler) Reorder(ctx context.Context, draggedID, targetID string) error {
	if draggedID == targetID {
		return nil
	}

	r.mu.Lock()
	from, to := -1, -1
	for i, id := range r.manualOrder {
		switch id {
		case draggedID:
			from = i
		case targetID:
			to = i
		}
	}
	if from < 0 || to < 0 {
		r.mu.Unlock()
		return nil
	}

	order := make([]string, 0, len(r.manualOrder))
	order = append(order, r.manualOrder[:from]...)
	order = append(order, r.manualOrder[from+1:]...)
	if to > len(order) {
		to = len(order)
	}
	order = append(order[:to], append([]string{draggedID}, order[to:]...)...)
	r.manualOrder = order
	r.mu.Unlock()

	if err := r.store.SetManualOrder(ctx, order); err != nil {
		return err
	}
	r.notifyChange()
	return nil
}
