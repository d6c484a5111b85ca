// Package store provides durable task persistence behind a capability
// interface. Callers receive a Store selected once at startup rather than
// reaching for a package-level backend.
package store

import (
	"sort"
	"time"

	"github.com/simtask/simtask/internal/date"
	"github.com/simtask/simtask/internal/task"
)

// Fields holds the caller-supplied parts of a task record. Identity and
// timestamps are assigned by the store.
type Fields struct {
	Title       string
	Date        date.Date
	Time        *date.Clock
	Priority    string
	Category    string
	Description string
}

// Store is the durable task persistence collaborator. Storage errors are
// returned to the caller unchanged.
type Store interface {
	// Create persists a new task, assigning its identity and timestamps.
	Create(f Fields) (*task.Task, error)
	// Get returns the task with the given ID.
	Get(id string) (*task.Task, error)
	// Update applies mutate to the stored task and persists the result.
	// The task's Updated timestamp is refreshed; ID and Created are preserved.
	Update(id string, mutate func(*task.Task)) (*task.Task, error)
	// Delete removes the task record.
	Delete(id string) error
	// ByDate returns the tasks due on the given date, ordered by time of day.
	ByDate(d date.Date) ([]*task.Task, error)
	// All returns every readable task plus warnings for malformed files.
	All() ([]*task.Task, []task.ReadWarning, error)
}

// SortByDueTime orders tasks by date then time of day, untimed tasks first
// within a date, matching the agenda display order.
func SortByDueTime(tasks []*task.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if !a.Date.Equal(b.Date.Time) {
			return a.Date.Before(b.Date.Time)
		}
		switch {
		case a.Time == nil && b.Time == nil:
			return a.Created.Before(b.Created)
		case a.Time == nil:
			return true
		case b.Time == nil:
			return false
		default:
			return clockBefore(*a.Time, *b.Time)
		}
	})
}

func clockBefore(a, b date.Clock) bool {
	if a.Hour != b.Hour {
		return a.Hour < b.Hour
	}
	return a.Minute < b.Minute
}

// touch refreshes the Updated timestamp.
func touch(t *task.Task) {
	t.Updated = time.Now()
}
