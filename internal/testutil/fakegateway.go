package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/alexanderramin/taskhub/internal/domain"
)

// GatewayCall records one invocation against the fake gateway.
type GatewayCall struct {
	Op    string // "list", "create", "update", "delete"
	ID    string
	Draft domain.TaskDraft
	Patch domain.TaskPatch
}

// FakeGateway is a scripted in-memory task API peer. It serves ListTasks
// from Tasks, applies mutations to it, and records every call so tests
// can assert exactly which commits were observed.
type FakeGateway struct {
	mu    sync.Mutex
	Tasks []domain.Task
	Calls []GatewayCall

	// Err, when set, fails every operation.
	Err error
	// ListErr fails only ListTasks.
	ListErr error
}

func NewFakeGateway(tasks ...domain.Task) *FakeGateway {
	return &FakeGateway{Tasks: tasks}
}

func (f *FakeGateway) ListTasks(ctx context.Context) ([]domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, GatewayCall{Op: "list"})
	if f.Err != nil {
		return nil, f.Err
	}
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]domain.Task, len(f.Tasks))
	copy(out, f.Tasks)
	return out, nil
}

func (f *FakeGateway) CreateTask(ctx context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, GatewayCall{Op: "create", Draft: draft})
	if f.Err != nil {
		return nil, f.Err
	}
	task := NewTestTask(draft.Title,
		WithCategory(draft.Category),
		WithPriority(draft.Priority),
		WithEstimatedTime(draft.EstimatedTime),
		WithDescription(draft.Description),
	)
	task.StartDate = draft.StartDate
	task.DueDate = draft.DueDate
	f.Tasks = append(f.Tasks, task)
	return &task, nil
}

func (f *FakeGateway) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, GatewayCall{Op: "update", ID: id, Patch: patch})
	if f.Err != nil {
		return nil, f.Err
	}
	for i := range f.Tasks {
		if f.Tasks[i].ID == id {
			f.Tasks[i] = patch.Apply(f.Tasks[i])
			out := f.Tasks[i]
			return &out, nil
		}
	}
	return nil, errors.New("task not found")
}

func (f *FakeGateway) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, GatewayCall{Op: "delete", ID: id})
	if f.Err != nil {
		return f.Err
	}
	for i := range f.Tasks {
		if f.Tasks[i].ID == id {
			f.Tasks = append(f.Tasks[:i], f.Tasks[i+1:]...)
			break
		}
	}
	return nil
}

// CallsOf returns the recorded calls matching op.
func (f *FakeGateway) CallsOf(op string) []GatewayCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []GatewayCall
	for _, c := range f.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}
