package reconcile

import (
	"context"
	"time"

	"github.com/alexanderramin/taskhub/internal/domain"
)

// pendingAction is the single in-flight undoable mutation. The finalized
// flag is the sole authority on whether the action may still fire or be
// undone; timer expiry and Undo race for it under the reconciler mutex.
type pendingAction struct {
	timer     *time.Timer
	finalized bool
	inverse   func()
	commit    func(ctx context.Context) error
}

// Update applies a patch optimistically and defers the remote commit
// behind the undo window.
func (r *Reconciler) Update(ctx context.Context, id string, patch domain.TaskPatch) error {
	r.finalizePending(ctx)

	r.mu.Lock()
	i, ok := r.findTask(id)
	if !ok {
		r.mu.Unlock()
		return ErrTaskNotFound
	}
	prev := r.tasks[i]
	if err := patch.Validate(prev); err != nil {
		r.mu.Unlock()
		return err
	}
	r.tasks[i] = patch.Apply(prev)

	r.arm(
		func() {
			if j, ok := r.findTask(id); ok {
				r.tasks[j] = prev
			}
		},
		func(ctx context.Context) error {
			if _, err := r.gw.UpdateTask(ctx, id, patch); err != nil {
				return err
			}
			return r.Load(ctx)
		},
	)
	r.mu.Unlock()

	r.notifyChange()
	return nil
}

// ToggleComplete flips the completed flag via Update.
func (r *Reconciler) ToggleComplete(ctx context.Context, id string) error {
	r.mu.Lock()
	i, ok := r.findTask(id)
	if !ok {
		r.mu.Unlock()
		return ErrTaskNotFound
	}
	next := !r.tasks[i].Completed
	r.mu.Unlock()

	return r.Update(ctx, id, domain.TaskPatch{Completed: domain.BoolPtr(next)})
}

// Delete removes the task optimistically and defers the remote delete
// behind the undo window. Undo restores the snapshot at its old position.
func (r *Reconciler) Delete(ctx context.Context, id string) error {
	r.finalizePending(ctx)

	r.mu.Lock()
	i, ok := r.findTask(id)
	if !ok {
		r.mu.Unlock()
		return ErrTaskNotFound
	}
	snapshot := r.tasks[i]
	at := i
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)

	r.arm(
		func() {
			if at > len(r.tasks) {
				at = len(r.tasks)
			}
			r.tasks = append(r.tasks[:at], append([]domain.Task{snapshot}, r.tasks[at:]...)...)
		},
		func(ctx context.Context) error {
			if err := r.gw.DeleteTask(ctx, id); err != nil {
				return err
			}
			return r.Load(ctx)
		},
	)
	r.mu.Unlock()

	r.notifyChange()
	return nil
}

// Undo cancels the pending mutation inside the undo window: the timer is
// stopped, the inverse effect is applied, and no remote commit ever
// happens. Returns false when nothing was undoable.
func (r *Reconciler) Undo(ctx context.Context) bool {
	r.mu.Lock()
	p := r.pending
	if p == nil || p.finalized {
		r.mu.Unlock()
		return false
	}
	p.finalized = true
	p.timer.Stop()
	p.inverse()
	r.pending = nil
	r.mu.Unlock()

	r.notifyChange()
	return true
}

// arm installs a new pending action. Caller holds r.mu.
func (r *Reconciler) arm(inverse func(), commit func(ctx context.Context) error) {
	p := &pendingAction{inverse: inverse, commit: commit}
	p.timer = r.afterFunc(r.window, func() {
		r.expire(p)
	})
	r.pending = p
}

// expire fires when the undo window elapses without an undo.
func (r *Reconciler) expire(p *pendingAction) {
	r.mu.Lock()
	if p.finalized {
		r.mu.Unlock()
		return
	}
	p.finalized = true
	if r.pending == p {
		r.pending = nil
	}
	r.mu.Unlock()

	// Commit failures are surfaced but the optimistic local state stands;
	// the next successful Load reconciles truth.
	r.reportCommitError(p.commit(context.Background()))
}

// finalizePending commits the prior pending action immediately. Arming a
// new deferred mutation never silently drops an outstanding commit.
func (r *Reconciler) finalizePending(ctx context.Context) {
	r.mu.Lock()
	p := r.pending
	if p == nil || p.finalized {
		r.pending = nil
		r.mu.Unlock()
		return
	}
	p.finalized = true
	p.timer.Stop()
	r.pending = nil
	r.mu.Unlock()

	r.reportCommitError(p.commit(ctx))
}
