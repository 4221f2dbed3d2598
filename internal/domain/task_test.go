package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskDraft_Validate_EmptyTitle(t *testing.T) {
	d := TaskDraft{Title: "   "}
	err := d.Validate()
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestTaskDraft_Validate_StartAfterDue(t *testing.T) {
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	due := start.AddDate(0, 0, -1)
	d := TaskDraft{Title: "Plan sprint", StartDate: &start, DueDate: &due}
	err := d.Validate()
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestTaskDraft_Validate_OK(t *testing.T) {
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	due := start.AddDate(0, 0, 3)
	d := TaskDraft{Title: "Plan sprint", StartDate: &start, DueDate: &due}
	assert.NoError(t, d.Validate())
}

func TestTaskDraft_Validate_NegativeEstimate(t *testing.T) {
	d := TaskDraft{Title: "Estimate", EstimatedTime: -1}
	assert.Error(t, d.Validate())
}

func TestTaskDraft_Normalize_Defaults(t *testing.T) {
	d := TaskDraft{Title: "Defaults"}
	d.Normalize()
	assert.Equal(t, CategoryOther, d.Category)
	assert.Equal(t, PriorityMedium, d.Priority)
}

func TestTaskPatch_Apply_PartialFields(t *testing.T) {
	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	base := Task{
		ID:       "t1",
		Title:    "Original",
		Category: CategoryWork,
		Priority: PriorityLow,
		DueDate:  &due,
	}

	p := TaskPatch{Title: StrPtr("Renamed"), Completed: BoolPtr(true)}
	next := p.Apply(base)

	assert.Equal(t, "Renamed", next.Title)
	assert.True(t, next.Completed)
	assert.Equal(t, CategoryWork, next.Category, "untouched fields preserved")
	require.NotNil(t, next.DueDate)
	assert.True(t, next.DueDate.Equal(due))
}

func TestTaskPatch_Apply_ClearDueDate(t *testing.T) {
	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	base := Task{Title: "Has due", DueDate: &due}

	next := TaskPatch{ClearDueDate: true}.Apply(base)
	assert.Nil(t, next.DueDate)
}

func TestTaskPatch_Validate_WouldEmptyTitle(t *testing.T) {
	base := Task{Title: "Keep me"}
	err := TaskPatch{Title: StrPtr("")}.Validate(base)
	// An explicit empty title pointer leaves the base title in place via
	// CoalesceStr, so the patched task still validates.
	assert.NoError(t, err)

	err = TaskPatch{Title: StrPtr("  ")}.Validate(base)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2026, 5, 15, 14, 30, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)
	earlierToday := time.Date(2026, 5, 15, 1, 0, 0, 0, time.UTC)

	assert.True(t, Task{DueDate: &yesterday}.IsOverdue(now))
	assert.False(t, Task{DueDate: &tomorrow}.IsOverdue(now))
	assert.False(t, Task{DueDate: &earlierToday}.IsOverdue(now), "due today is not overdue")
	assert.False(t, Task{DueDate: &yesterday, Completed: true}.IsOverdue(now))
	assert.False(t, Task{}.IsOverdue(now), "no due date is never overdue")
}

func TestTask_CompletionDay_FallsBackToCreatedAt(t *testing.T) {
	created := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	task := Task{CreatedAt: created}
	assert.Equal(t, StartOfDay(created), task.CompletionDay(time.UTC))

	updated := created.AddDate(0, 0, 2)
	task.UpdatedAt = updated
	assert.Equal(t, StartOfDay(updated), task.CompletionDay(time.UTC))
}

func TestTask_CompletionDay_ConvertsToViewerLocation(t *testing.T) {
	east := time.FixedZone("UTC+10", 10*60*60)
	// 18:00 UTC is already the next calendar day at UTC+10.
	task := Task{UpdatedAt: time.Date(2026, 5, 10, 18, 0, 0, 0, time.UTC)}
	assert.Equal(t, time.Date(2026, 5, 11, 0, 0, 0, 0, east), task.CompletionDay(east))
}

func TestPriority_WeightAndRank(t *testing.T) {
	assert.Equal(t, 40.0, PriorityHigh.Weight())
	assert.Equal(t, 20.0, PriorityMedium.Weight())
	assert.Equal(t, 8.0, PriorityLow.Weight())
	assert.Greater(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Greater(t, PriorityMedium.Rank(), PriorityLow.Rank())
}
