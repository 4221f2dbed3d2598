package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports a client-side rejection; it never reaches the
// network.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidateDraft checks a new-task draft before any network call.
func (d TaskDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if d.Category != "" && !ValidCategories[d.Category] {
		return &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown value %q", d.Category)}
	}
	if d.Priority != "" && !ValidPriorities[d.Priority] {
		return &ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown value %q", d.Priority)}
	}
	if d.EstimatedTime < 0 {
		return &ValidationError{Field: "estimatedTime", Reason: "must not be negative"}
	}
	if d.StartDate != nil && d.DueDate != nil && d.StartDate.After(*d.DueDate) {
		return &ValidationError{Field: "startDate", Reason: "must not be after due date"}
	}
	return nil
}

// Normalize fills enum defaults on a draft (Other / Medium).
func (d *TaskDraft) Normalize() {
	if d.Category == "" {
		d.Category = CategoryOther
	}
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
}

// Validate checks a patch against the task it would produce when applied
// to base, enforcing the same edit-time rules as ValidateDraft.
func (p TaskPatch) Validate(base Task) error {
	next := p.Apply(base)
	if strings.TrimSpace(next.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if next.Category != "" && !ValidCategories[next.Category] {
		return &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown value %q", next.Category)}
	}
	if next.Priority != "" && !ValidPriorities[next.Priority] {
		return &ValidationError{Field: "priority", Reason: fmt.Sprintf("unknown value %q", next.Priority)}
	}
	if next.EstimatedTime < 0 {
		return &ValidationError{Field: "estimatedTime", Reason: "must not be negative"}
	}
	if next.StartDate != nil && next.DueDate != nil && next.StartDate.After(*next.DueDate) {
		return &ValidationError{Field: "startDate", Reason: "must not be after due date"}
	}
	return nil
}
