package projector

import (
	"sort"
	"time"

	"github.com/alexanderramin/taskhub/internal/domain"
)

// GroupBoard partitions tasks into the three board columns. The groups
// are mutually exclusive and their union is the input.
func GroupBoard(tasks []domain.Task, now time.Time) BoardGroups {
	var g BoardGroups
	for _, t := range tasks {
		switch {
		case t.Completed:
			g.Completed = append(g.Completed, t)
		case t.IsOverdue(now):
			g.Overdue = append(g.Overdue, t)
		default:
			g.Pending = append(g.Pending, t)
		}
	}
	return g
}

// GroupTimeline buckets tasks by due date's calendar day, chronologically
// ascending, with a single trailing bucket for tasks without a due date.
func GroupTimeline(tasks []domain.Task) []TimelineBucket {
	byDay := make(map[time.Time][]domain.Task)
	var noDate []domain.Task

	for _, t := range tasks {
		if t.DueDate == nil {
			noDate = append(noDate, t)
			continue
		}
		day := domain.StartOfDay(*t.DueDate)
		byDay[day] = append(byDay[day], t)
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	buckets := make([]TimelineBucket, 0, len(days)+1)
	for _, day := range days {
		buckets = append(buckets, TimelineBucket{Day: day, Tasks: byDay[day]})
	}
	if len(noDate) > 0 {
		buckets = append(buckets, TimelineBucket{NoDate: true, Tasks: noDate})
	}
	return buckets
}
