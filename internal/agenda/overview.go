package agenda

import (
	"time"

	"github.com/simtask/simtask/internal/config"
	"github.com/simtask/simtask/internal/date"
	"github.com/simtask/simtask/internal/notify"
	"github.com/simtask/simtask/internal/task"
)

// Overview summarizes a single day's agenda.
type Overview struct {
	Date       date.Date       `json:"date"`
	TotalTasks int             `json:"total_tasks"`
	Overdue    int             `json:"overdue"`
	Reminders  int             `json:"reminders"` // alerts registered for this day's tasks
	Priorities []PriorityCount `json:"priorities,omitempty"`
}

// PriorityCount is the number of tasks at one priority.
type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int    `json:"count"`
}

// BuildOverview computes the day summary for the given tasks (already
// filtered to one date) and the currently registered alerts.
func BuildOverview(day date.Date, tasks []*task.Task, regs []notify.Registered, fallback date.Clock, now time.Time) Overview {
	o := Overview{Date: day, TotalTasks: len(tasks)}

	taskIDs := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		taskIDs[t.ID] = true
		if IsOverdue(t, fallback, now) {
			o.Overdue++
		}
	}

	for _, reg := range regs {
		if taskIDs[reg.Payload.TaskID] {
			o.Reminders++
		}
	}

	counts := make(map[string]int)
	for _, t := range tasks {
		if t.Priority != "" {
			counts[t.Priority]++
		}
	}
	for _, p := range config.Priorities {
		if counts[p] > 0 {
			o.Priorities = append(o.Priorities, PriorityCount{Priority: p, Count: counts[p]})
		}
	}

	return o
}
