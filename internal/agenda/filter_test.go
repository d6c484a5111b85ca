package agenda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/simtask/simtask/internal/date"
	"github.com/simtask/simtask/internal/task"
)

func mkTask(title string, d date.Date) *task.Task {
	return &task.Task{ID: "task_" + title, Title: title, Date: d}
}

func titles(tasks []*task.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func TestFilterByDate(t *testing.T) {
	day := date.New(2026, time.March, 10)
	tasks := []*task.Task{
		mkTask("match", day),
		mkTask("other", date.New(2026, time.March, 11)),
	}

	got := Filter(tasks, FilterOptions{Date: &day})
	require.Equal(t, []string{"match"}, titles(got))
}

func TestFilterTodayUpcomingOverdue(t *testing.T) {
	today := date.Today()
	yesterday := date.FromTime(today.AddDate(0, 0, -1))
	tomorrow := date.FromTime(today.AddDate(0, 0, 1))

	tasks := []*task.Task{
		mkTask("past", yesterday),
		mkTask("now", today),
		mkTask("future", tomorrow),
	}

	require.Equal(t, []string{"now"}, titles(Filter(tasks, FilterOptions{Today: true})))
	require.Equal(t, []string{"future"}, titles(Filter(tasks, FilterOptions{Upcoming: true})))
	require.Equal(t, []string{"past"}, titles(Filter(tasks, FilterOptions{Overdue: true})))
}

func TestFilterByPriorityAndCategory(t *testing.T) {
	day := date.New(2026, time.March, 10)
	a := mkTask("a", day)
	a.Priority = "high"
	a.Category = "Work"
	b := mkTask("b", day)
	b.Priority = "low"
	b.Category = "home"

	tasks := []*task.Task{a, b}

	require.Equal(t, []string{"a"}, titles(Filter(tasks, FilterOptions{Priorities: []string{"high"}})))
	require.Equal(t, []string{"a"}, titles(Filter(tasks, FilterOptions{Category: "work"})), "category match is case-insensitive")
	require.Empty(t, Filter(tasks, FilterOptions{Priorities: []string{"high"}, Category: "home"}), "filters AND together")
}

func TestFilterSearch(t *testing.T) {
	day := date.New(2026, time.March, 10)
	a := mkTask("Renew passport", day)
	a.Description = "bring photos"
	b := mkTask("Groceries", day)
	b.Category = "errands"

	tasks := []*task.Task{a, b}

	require.Equal(t, []string{"Renew passport"}, titles(Filter(tasks, FilterOptions{Search: "PASSPORT"})))
	require.Equal(t, []string{"Renew passport"}, titles(Filter(tasks, FilterOptions{Search: "photos"})))
	require.Equal(t, []string{"Groceries"}, titles(Filter(tasks, FilterOptions{Search: "errand"})))
	require.Empty(t, Filter(tasks, FilterOptions{Search: "dentist"}))
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	fallback := date.NewClock(9, 0)

	timed := mkTask("timed", date.New(2026, time.March, 10))
	clk := date.NewClock(14, 0)
	timed.Time = &clk
	require.False(t, IsOverdue(timed, fallback, now))

	clk2 := date.NewClock(11, 0)
	timed.Time = &clk2
	require.True(t, IsOverdue(timed, fallback, now))

	// Untimed tasks resolve at the fallback time of day.
	untimed := mkTask("untimed", date.New(2026, time.March, 10))
	require.True(t, IsOverdue(untimed, fallback, now))

	future := mkTask("future", date.New(2026, time.March, 11))
	require.False(t, IsOverdue(future, fallback, now))
}
