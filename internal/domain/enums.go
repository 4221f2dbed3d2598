package domain

type Category string

const (
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
	CategoryStudy    Category = "Study"
	CategoryOther    Category = "Other"
)

// ValidCategories is the canonical set of accepted category strings.
var ValidCategories = map[Category]bool{
	CategoryWork: true, CategoryPersonal: true,
	CategoryStudy: true, CategoryOther: true,
}

// CategoryNames lists the categories in display order.
func CategoryNames() []string {
	return []string{
		string(CategoryWork), string(CategoryPersonal),
		string(CategoryStudy), string(CategoryOther),
	}
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[Priority]bool{
	PriorityLow: true, PriorityMedium: true, PriorityHigh: true,
}

// Weight returns the focus-score contribution of a priority.
func (p Priority) Weight() float64 {
	switch p {
	case PriorityHigh:
		return 40
	case PriorityMedium:
		return 20
	case PriorityLow:
		return 8
	}
	return 0
}

// Rank orders priorities for sorting (higher = more urgent).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// StatusFilter selects tasks by completion state.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPending   StatusFilter = "pending"
	StatusCompleted StatusFilter = "completed"
	StatusOverdue   StatusFilter = "overdue"
)

// SortKey names a task ordering.
type SortKey string

const (
	SortCreatedDesc  SortKey = "created-desc"
	SortPriorityDesc SortKey = "priority-desc"
	SortDueAsc       SortKey = "due-asc"
	SortDueDesc      SortKey = "due-desc"
	SortManual       SortKey = "manual"
)

// ViewMode names a presentation of the filtered task set.
type ViewMode string

const (
	ViewList     ViewMode = "list"
	ViewBoard    ViewMode = "board"
	ViewTimeline ViewMode = "timeline"
)
