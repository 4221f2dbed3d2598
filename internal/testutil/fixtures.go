package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/taskhub/internal/domain"
)

var taskIDCounter atomic.Int64

// TaskOption customizes a test task.
type TaskOption func(*domain.Task)

func WithID(id string) TaskOption {
	return func(t *domain.Task) { t.ID = id }
}

func WithCategory(c domain.Category) TaskOption {
	return func(t *domain.Task) { t.Category = c }
}

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) { t.Priority = p }
}

func WithDueDate(d time.Time) TaskOption {
	return func(t *domain.Task) { t.DueDate = &d }
}

func WithStartDate(d time.Time) TaskOption {
	return func(t *domain.Task) { t.StartDate = &d }
}

func WithCompleted(done bool) TaskOption {
	return func(t *domain.Task) { t.Completed = done }
}

func WithEstimatedTime(hours float64) TaskOption {
	return func(t *domain.Task) { t.EstimatedTime = hours }
}

func WithDescription(desc string) TaskOption {
	return func(t *domain.Task) { t.Description = desc }
}

func WithCreatedAt(ts time.Time) TaskOption {
	return func(t *domain.Task) { t.CreatedAt = ts }
}

func WithUpdatedAt(ts time.Time) TaskOption {
	return func(t *domain.Task) { t.UpdatedAt = ts }
}

// NewTestTask builds a task with sensible defaults and a unique id.
func NewTestTask(title string, opts ...TaskOption) domain.Task {
	now := time.Now().UTC()
	t := domain.Task{
		ID:        fmt.Sprintf("task-%03d", taskIDCounter.Add(1)),
		Owner:     "user-1",
		Title:     title,
		Category:  domain.CategoryOther,
		Priority:  domain.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}
