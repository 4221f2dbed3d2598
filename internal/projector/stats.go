package projector

import (
	"time"

	"github.com/alexanderramin/taskhub/internal/domain"
)

// Summarize computes counts, the completion streak and the seven-day
// workload over the unfiltered cache.
func Summarize(tasks []domain.Task, now time.Time) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		} else {
			s.Pending++
		}
	}
	s.StreakDays = streakDays(tasks, now)
	s.SevenDayLoad = sevenDayWorkload(tasks, now)
	return s
}

// streakDays counts consecutive calendar days, walking backward from
// today, on which at least one task was completed.
func streakDays(tasks []domain.Task, now time.Time) int {
	days := make(map[time.Time]bool)
	for _, t := range tasks {
		if t.Completed {
			days[t.CompletionDay(now.Location())] = true
		}
	}

	streak := 0
	cursor := domain.StartOfDay(now)
	for days[cursor] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

// sevenDayWorkload sums estimated hours of incomplete tasks due within
// [today, today+7 days] inclusive.
func sevenDayWorkload(tasks []domain.Task, now time.Time) float64 {
	from := domain.StartOfDay(now)
	to := from.AddDate(0, 0, 7)

	var total float64
	for _, t := range tasks {
		if t.Completed || t.DueDate == nil {
			continue
		}
		due := domain.StartOfDay(*t.DueDate)
		if due.Before(from) || due.After(to) {
			continue
		}
		total += t.EstimatedTime
	}
	return total
}
