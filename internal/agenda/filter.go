// Package agenda provides agenda-level operations on task collections:
// filtering, sorting, and day summaries.
package agenda

import (
	"strings"
	"time"

	"github.com/simtask/simtask/internal/date"
	"github.com/simtask/simtask/internal/task"
)

// FilterOptions defines which tasks to include.
type FilterOptions struct {
	Date       *date.Date // nil=no filter, non-nil=only tasks due on this date
	Today      bool       // only tasks due today
	Upcoming   bool       // only tasks due strictly after today
	Overdue    bool       // only tasks due strictly before today
	Priorities []string
	Category   string
	Search     string // case-insensitive substring match across title, description, and category
}

// Filter returns tasks matching all specified criteria (AND logic).
func Filter(tasks []*task.Task, opts FilterOptions) []*task.Task {
	today := date.Today()
	var result []*task.Task
	for _, t := range tasks {
		if matchesFilter(t, opts, today) {
			result = append(result, t)
		}
	}
	return result
}

func matchesFilter(t *task.Task, opts FilterOptions, today date.Date) bool {
	if opts.Date != nil && !t.Date.Equal(opts.Date.Time) {
		return false
	}
	if opts.Today && !t.Date.Equal(today.Time) {
		return false
	}
	if opts.Upcoming && !t.Date.After(today.Time) {
		return false
	}
	if opts.Overdue && !t.Date.Before(today.Time) {
		return false
	}
	if len(opts.Priorities) > 0 && !containsStr(opts.Priorities, t.Priority) {
		return false
	}
	if opts.Category != "" && !strings.EqualFold(t.Category, opts.Category) {
		return false
	}
	if opts.Search != "" && !matchesSearch(t, opts.Search) {
		return false
	}
	return true
}

// matchesSearch performs case-insensitive substring matching across title,
// description, and category.
func matchesSearch(t *task.Task, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	return strings.Contains(strings.ToLower(t.Category), q)
}

// IsOverdue reports whether the task's due instant has passed, resolving
// untimed tasks at the given fallback time of day.
func IsOverdue(t *task.Task, fallback date.Clock, now time.Time) bool {
	return !t.DueAt(fallback, now.Location()).After(now)
}

func containsStr(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
