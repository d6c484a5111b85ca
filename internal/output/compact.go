package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/simtask/simtask/internal/task"
)

// TaskCompact renders a list of tasks in one-line-per-record compact format.
func TaskCompact(w io.Writer, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	for _, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(t))
	}
}

// TaskDetailCompact renders a single task with detail in compact format.
func TaskDetailCompact(w io.Writer, t *task.Task) {
	fmt.Fprintln(w, formatTaskLine(t))

	// Timestamps line.
	ts := "  created:" + t.Created.Format("2006-01-02") +
		" updated:" + t.Updated.Format("2006-01-02")
	if t.SyncStatus != "" {
		ts += " sync:" + t.SyncStatus
	}
	fmt.Fprintln(w, ts)

	if t.Description != "" {
		for _, line := range strings.Split(t.Description, "\n") {
			fmt.Fprintln(w, "  "+line)
		}
	}
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(t *task.Task) string {
	line := t.ID + " " + t.Date.String()
	if t.Time != nil {
		line += " " + t.Time.String()
	}
	if t.Priority != "" {
		line += " [" + t.Priority + "]"
	}
	line += " " + t.Title
	if t.Category != "" {
		line += " (" + t.Category + ")"
	}
	if t.ReminderScheduled {
		line += " *reminder"
	}
	return line
}
