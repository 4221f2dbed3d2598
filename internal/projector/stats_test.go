package projector

import (
	"testing"
	"time"

	"github.com/alexanderramin/taskhub/internal/domain"
	"github.com/alexanderramin/taskhub/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSummarize_CountsOverUnfilteredCache(t *testing.T) {
	tasks := []domain.Task{
		testutil.NewTestTask("A"),
		testutil.NewTestTask("B", testutil.WithCompleted(true)),
		testutil.NewTestTask("C"),
	}
	s := Summarize(tasks, now)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Pending)
	assert.Equal(t, 1, s.Completed)
}

func TestStreak_GapBreaksTheRun(t *testing.T) {
	// Completions today, yesterday and three days ago; the gap at
	// today-2 limits the streak to 2.
	tasks := []domain.Task{
		testutil.NewTestTask("T0", testutil.WithCompleted(true), testutil.WithUpdatedAt(now)),
		testutil.NewTestTask("T1", testutil.WithCompleted(true), testutil.WithUpdatedAt(now.AddDate(0, 0, -1))),
		testutil.NewTestTask("T3", testutil.WithCompleted(true), testutil.WithUpdatedAt(now.AddDate(0, 0, -3))),
	}
	assert.Equal(t, 2, streakDays(tasks, now))
}

func TestStreak_NoCompletionToday(t *testing.T) {
	tasks := []domain.Task{
		testutil.NewTestTask("T1", testutil.WithCompleted(true), testutil.WithUpdatedAt(now.AddDate(0, 0, -1))),
	}
	assert.Equal(t, 0, streakDays(tasks, now), "streak anchors at today")
}

func TestStreak_ViewerInNonUTCZone(t *testing.T) {
	// Completed 15:00 UTC; the viewer at UTC-5 checks at 10:00 local
	// the same calendar day. Both sides must bucket in the viewer's
	// zone or the streak resets to 0.
	est := time.FixedZone("UTC-5", -5*60*60)
	local := time.Date(2026, 8, 20, 10, 0, 0, 0, est)
	tasks := []domain.Task{
		testutil.NewTestTask("T", testutil.WithCompleted(true),
			testutil.WithUpdatedAt(time.Date(2026, 8, 20, 15, 0, 0, 0, time.UTC))),
	}
	assert.Equal(t, 1, streakDays(tasks, local))
}

func TestStreak_FallsBackToCreatedAt(t *testing.T) {
	task := testutil.NewTestTask("T", testutil.WithCompleted(true), testutil.WithCreatedAt(now))
	task.UpdatedAt = time.Time{}
	assert.Equal(t, 1, streakDays([]domain.Task{task}, now))
}

func TestSevenDayWorkload_WindowBounds(t *testing.T) {
	tasks := []domain.Task{
		testutil.NewTestTask("Tomorrow", testutil.WithDueDate(now.AddDate(0, 0, 1)), testutil.WithEstimatedTime(1.0)),
		testutil.NewTestTask("InThree", testutil.WithDueDate(now.AddDate(0, 0, 3)), testutil.WithEstimatedTime(2.5)),
		testutil.NewTestTask("InNine", testutil.WithDueDate(now.AddDate(0, 0, 9)), testutil.WithEstimatedTime(8.0)),
		testutil.NewTestTask("DoneSoon", testutil.WithDueDate(now.AddDate(0, 0, 2)), testutil.WithEstimatedTime(4.0), testutil.WithCompleted(true)),
		testutil.NewTestTask("NoDue", testutil.WithEstimatedTime(6.0)),
	}
	assert.InDelta(t, 3.5, sevenDayWorkload(tasks, now), 1e-9,
		"only incomplete tasks due within seven days count")
}

func TestSevenDayWorkload_SeventhDayInclusive(t *testing.T) {
	tasks := []domain.Task{
		testutil.NewTestTask("Edge", testutil.WithDueDate(now.AddDate(0, 0, 7)), testutil.WithEstimatedTime(2.0)),
	}
	assert.InDelta(t, 2.0, sevenDayWorkload(tasks, now), 1e-9)
}
