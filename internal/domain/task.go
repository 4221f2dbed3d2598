package domain

import "time"

// Task is the server-owned task entity. The client holds a cached
// projection; id, owner and timestamps are assigned by the server.
type Task struct {
	ID            string     `json:"id"`
	Owner         string     `json:"owner"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      Category   `json:"category"`
	Priority      Priority   `json:"priority"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	EstimatedTime float64    `json:"estimatedTime"`
	Completed     bool       `json:"completed"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// CompletionDay returns the calendar day a completed task counts toward,
// derived from UpdatedAt with CreatedAt as fallback. Server timestamps
// are UTC, so they are shifted into the viewer's location before
// truncating or a day boundary would land mid-afternoon.
func (t Task) CompletionDay(loc *time.Location) time.Time {
	ts := t.UpdatedAt
	if ts.IsZero() {
		ts = t.CreatedAt
	}
	return StartOfDay(ts.In(loc))
}

// IsOverdue reports whether the task is incomplete with a due date
// before the start of the current calendar day.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Completed || t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(StartOfDay(now))
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// TaskDraft carries the client-supplied fields for a new task.
type TaskDraft struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      Category   `json:"category"`
	Priority      Priority   `json:"priority"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	DueDate       *time.Time `json:"dueDate,omitempty"`
	EstimatedTime float64    `json:"estimatedTime"`
}

// TaskPatch is a partial update; nil fields are left unchanged.
// ClearStartDate/ClearDueDate distinguish "unset" from "untouched".
type TaskPatch struct {
	Title          *string    `json:"title,omitempty"`
	Description    *string    `json:"description,omitempty"`
	Category       *Category  `json:"category,omitempty"`
	Priority       *Priority  `json:"priority,omitempty"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	EstimatedTime  *float64   `json:"estimatedTime,omitempty"`
	Completed      *bool      `json:"completed,omitempty"`
	ClearStartDate bool       `json:"clearStartDate,omitempty"`
	ClearDueDate   bool       `json:"clearDueDate,omitempty"`
}

// Apply returns a copy of t with the patch's non-nil fields applied.
func (p TaskPatch) Apply(t Task) Task {
	t.Title = CoalesceStr(StrFromPtr(p.Title), t.Title)
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.StartDate != nil {
		t.StartDate = p.StartDate
	} else if p.ClearStartDate {
		t.StartDate = nil
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	} else if p.ClearDueDate {
		t.DueDate = nil
	}
	if p.EstimatedTime != nil {
		t.EstimatedTime = *p.EstimatedTime
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}
