package projector

import (
	"testing"

	"github.com/alexanderramin/taskhub/internal/domain"
	"github.com/alexanderramin/taskhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestSort_CreatedDesc(t *testing.T) {
	tasks := []domain.Task{
		testutil.NewTestTask("Old", testutil.WithCreatedAt(now.AddDate(0, 0, -5))),
		testutil.NewTestTask("New", testutil.WithCreatedAt(now)),
		testutil.NewTestTask("Mid", testutil.WithCreatedAt(now.AddDate(0, 0, -2))),
	}
	got := Sort(tasks, domain.SortCreatedDesc, nil)
	assert.Equal(t, []string{"New", "Mid", "Old"}, titles(got))
}

func TestSort_PriorityDesc_StableTies(t *testing.T) {
	tasks := []domain.Task{
		testutil.NewTestTask("M1", testutil.WithPriority(domain.PriorityMedium)),
		testutil.NewTestTask("H1", testutil.WithPriority(domain.PriorityHigh)),
		testutil.NewTestTask("M2", testutil.WithPriority(domain.PriorityMedium)),
		testutil.NewTestTask("L1", testutil.WithPriority(domain.PriorityLow)),
	}
	got := Sort(tasks, domain.SortPriorityDesc, nil)
	assert.Equal(t, []string{"H1", "M1", "M2", "L1"}, titles(got), "equal priorities keep input order")
}

func TestSort_DueAscDesc_NoDatePlacement(t *testing.T) {
	tasks := []domain.Task{
		testutil.NewTestTask("NoDate"),
		testutil.NewTestTask("Soon", testutil.WithDueDate(now.AddDate(0, 0, 1))),
		testutil.NewTestTask("Later", testutil.WithDueDate(now.AddDate(0, 0, 9))),
	}

	asc := Sort(tasks, domain.SortDueAsc, nil)
	assert.Equal(t, []string{"Soon", "Later", "NoDate"}, titles(asc), "no-date tasks last ascending")

	desc := Sort(tasks, domain.SortDueDesc, nil)
	assert.Equal(t, []string{"NoDate", "Later", "Soon"}, titles(desc), "no-date tasks first descending")
}

func TestSort_Manual_UnrankedAfterRanked(t *testing.T) {
	tasks := []domain.Task{
		testutil.NewTestTask("A", testutil.WithID("A")),
		testutil.NewTestTask("B", testutil.WithID("B")),
		testutil.NewTestTask("C", testutil.WithID("C")),
		testutil.NewTestTask("D", testutil.WithID("D")),
	}
	got := Sort(tasks, domain.SortManual, []string{"C", "A"})
	require.Equal(t, []string{"C", "A", "B", "D"}, titles(got), "unranked keep stable input order at the end")
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	tasks := []domain.Task{
		testutil.NewTestTask("B2", testutil.WithPriority(domain.PriorityLow)),
		testutil.NewTestTask("A2", testutil.WithPriority(domain.PriorityHigh)),
	}
	_ = Sort(tasks, domain.SortPriorityDesc, nil)
	assert.Equal(t, "B2", tasks[0].Title, "input slice untouched")
}
