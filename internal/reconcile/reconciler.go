package reconcile

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/alexanderramin/taskhub/internal/domain"
	"github.com/alexanderramin/taskhub/internal/gateway"
)

// DefaultUndoWindow is how long a deferred mutation stays cancellable
// before its remote commit fires.
const DefaultUndoWindow = 4200 * time.Millisecond

// SessionGuard is the slice of the session layer the reconciler needs:
// read the credential, and force a logout when the gateway rejects it.
type SessionGuard interface {
	Credential() string
	ForceLogout(ctx context.Context)
}

// OrderStore persists the user's manual task ordering.
type OrderStore interface {
	ManualOrder(ctx context.Context) []string
	SetManualOrder(ctx context.Context, ids []string) error
}

// Reconciler owns the authoritative in-memory task cache. Mutations apply
// locally first; update and delete defer their remote commit behind a
// single undo window. All state lives here rather than in package-level
// variables so a snapshot can be projected without hidden sharing.
type Reconciler struct {
	mu sync.Mutex

	gw    gateway.TaskGateway
	guard SessionGuard
	store OrderStore

	tasks       []domain.Task
	manualOrder []string
	loading     bool
	loaded      bool

	window  time.Duration
	pending *pendingAction

	// onChange fires after every cache change so the shell can re-render.
	// onCommitError surfaces failures from commits that fire after the
	// undo window expires, off the caller's stack.
	onChange      func()
	onCommitError func(error)

	// afterFunc schedules the deferred commit; replaced in tests to
	// drive expiry deterministically.
	afterFunc func(time.Duration, func()) *time.Timer
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithUndoWindow overrides the deferral window.
func WithUndoWindow(d time.Duration) Option {
	return func(r *Reconciler) { r.window = d }
}

// WithOnChange registers the cache-change hook.
func WithOnChange(fn func()) Option {
	return func(r *Reconciler) { r.onChange = fn }
}

// WithOnCommitError registers the async commit-failure hook.
func WithOnCommitError(fn func(error)) Option {
	return func(r *Reconciler) { r.onCommitError = fn }
}

// withAfterFunc replaces the timer scheduling, for tests.
func withAfterFunc(fn func(time.Duration, func()) *time.Timer) Option {
	return func(r *Reconciler) { r.afterFunc = fn }
}

// New creates a Reconciler over a gateway, session guard and order store.
func New(gw gateway.TaskGateway, guard SessionGuard, store OrderStore, opts ...Option) *Reconciler {
	r := &Reconciler{
		gw:        gw,
		guard:     guard,
		store:     store,
		window:    DefaultUndoWindow,
		afterFunc: time.AfterFunc,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Snapshot returns a copy of the current task cache.
func (r *Reconciler) Snapshot() []domain.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

// ManualOrder returns a copy of the current manual ordering.
func (r *Reconciler) ManualOrder() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.manualOrder))
	copy(out, r.manualOrder)
	return out
}

// IsLoading reports whether a Load is in flight.
func (r *Reconciler) IsLoading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// Loaded reports whether at least one Load has completed.
func (r *Reconciler) Loaded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loaded
}

// HasPendingUndo reports whether an undoable mutation is still open.
func (r *Reconciler) HasPendingUndo() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending != nil && !r.pending.finalized
}

// Load fetches the owner's full task list, replaces the cache wholesale
// and re-derives the manual order. On failure the cache is left unchanged.
func (r *Reconciler) Load(ctx context.Context) error {
	if r.guard.Credential() == "" {
		r.guard.ForceLogout(ctx)
		return gateway.ErrSessionInvalid
	}

	r.setLoading(true)
	tasks, err := r.gw.ListTasks(ctx)
	r.setLoading(false)
	if err != nil {
		if errors.Is(err, gateway.ErrSessionInvalid) {
			r.guard.ForceLogout(ctx)
		}
		return err
	}

	r.mu.Lock()
	r.tasks = tasks
	r.loaded = true
	order := syncManualOrder(r.store.ManualOrder(ctx), tasks)
	r.manualOrder = order
	r.mu.Unlock()

	// The cache already changed; observers hear about it even when
	// persisting the order fails.
	r.notifyChange()
	return r.store.SetManualOrder(ctx, order)
}

// Create validates the draft, commits it immediately (creation is not
// undoable) and reloads to absorb the server-assigned identity.
func (r *Reconciler) Create(ctx context.Context, draft domain.TaskDraft) error {
	draft.Normalize()
	if err := draft.Validate(); err != nil {
		return err
	}
	if _, err := r.gw.CreateTask(ctx, draft); err != nil {
		if errors.Is(err, gateway.ErrSessionInvalid) {
			r.guard.ForceLogout(ctx)
		}
		return err
	}
	return r.Load(ctx)
}

func (r *Reconciler) setLoading(v bool) {
	r.mu.Lock()
	r.loading = v
	r.mu.Unlock()
	r.notifyChange()
}

func (r *Reconciler) notifyChange() {
	if r.onChange != nil {
		r.onChange()
	}
}

func (r *Reconciler) reportCommitError(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, gateway.ErrSessionInvalid) {
		r.guard.ForceLogout(context.Background())
		return
	}
	if r.onCommitError != nil {
		r.onCommitError(err)
	}
}

func (r *Reconciler) findTask(id string) (int, bool) {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

// ErrTaskNotFound is returned when a mutation names an id absent from the
// cache.
var ErrTaskNotFound = errors.New("task not found in cache")
