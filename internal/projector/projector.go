// Package projector derives every presentation of the task cache — the
// filtered list, board and timeline groupings, summary statistics and the
// focus list — as a pure function of a cache snapshot plus the current
// filter selection. It holds no state and performs no IO, so the shell can
// recompute it on every cache change.
package projector

import (
	"time"

	"github.com/alexanderramin/taskhub/internal/domain"
)

// Input is everything a projection depends on.
type Input struct {
	Tasks       []domain.Task
	SearchTerm  string
	Status      domain.StatusFilter
	Category    string // exact category or "all"/""
	Sort        domain.SortKey
	ManualOrder []string
	Now         time.Time
}

// BoardGroups partitions the filtered tasks into three disjoint columns
// covering the whole filtered set.
type BoardGroups struct {
	Overdue   []domain.Task
	Pending   []domain.Task
	Completed []domain.Task
}

// TimelineBucket is one calendar day of the timeline (zero Day means the
// trailing no-due-date bucket).
type TimelineBucket struct {
	Day    time.Time
	NoDate bool
	Tasks  []domain.Task
}

// Stats summarizes the unfiltered cache.
type Stats struct {
	Total        int
	Pending      int
	Completed    int
	StreakDays   int
	SevenDayLoad float64
}

// Projection is the full derived view state.
type Projection struct {
	List     []domain.Task
	Board    BoardGroups
	Timeline []TimelineBucket
	Stats    Stats
	Focus    []domain.Task
}

// Project computes the projection for in. Deterministic given its input.
func Project(in Input) Projection {
	filtered := Filter(in.Tasks, in.SearchTerm, in.Status, in.Category, in.Now)
	sorted := Sort(filtered, in.Sort, in.ManualOrder)

	return Projection{
		List:     sorted,
		Board:    GroupBoard(sorted, in.Now),
		Timeline: GroupTimeline(sorted),
		Stats:    Summarize(in.Tasks, in.Now),
		Focus:    FocusList(sorted, in.Now),
	}
}
