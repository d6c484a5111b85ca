package agenda

import (
	"sort"

	"github.com/simtask/simtask/internal/config"
	"github.com/simtask/simtask/internal/store"
	"github.com/simtask/simtask/internal/task"
)

// Sort fields accepted by Sort and the list command.
const (
	FieldDue      = "due"
	FieldPriority = "priority"
	FieldCreated  = "created"
	FieldUpdated  = "updated"
	FieldTitle    = "title"
)

// ValidSortFields returns the accepted sort field names in display order.
func ValidSortFields() []string {
	return []string{FieldDue, FieldPriority, FieldCreated, FieldUpdated, FieldTitle}
}

// Sort sorts tasks by the given field. Priority uses the configured order
// (low, medium, high), not alphabetical; due sorts by date then time of day.
func Sort(tasks []*task.Task, field string, reverse bool) {
	if field == FieldDue {
		store.SortByDueTime(tasks)
		if reverse {
			reverseTasks(tasks)
		}
		return
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		less := compareTasks(tasks[i], tasks[j], field)
		if reverse {
			return !less
		}
		return less
	})
}

func compareTasks(a, b *task.Task, field string) bool {
	switch field {
	case FieldPriority:
		return priorityIndex(a.Priority) < priorityIndex(b.Priority)
	case FieldCreated:
		return a.Created.Before(b.Created)
	case FieldUpdated:
		return a.Updated.Before(b.Updated)
	case FieldTitle:
		return a.Title < b.Title
	default:
		return a.ID < b.ID
	}
}

func priorityIndex(p string) int {
	for i, name := range config.Priorities {
		if name == p {
			return i
		}
	}
	return -1
}

func reverseTasks(tasks []*task.Task) {
	for i, j := 0, len(tasks)-1; i < j; i, j = i+1, j-1 {
		tasks[i], tasks[j] = tasks[j], tasks[i]
	}
}
