// Package task handles task files and their frontmatter.
package task

import (
	"time"

	"github.com/simtask/simtask/internal/date"
)

// Sync status values. Sync is a stub for a future backend and never
// leaves "pending" on a single device.
const (
	SyncPending = "pending"
	SyncSynced  = "synced"
	SyncFailed  = "failed"
)

// Task represents a dated task parsed from a markdown file.
type Task struct {
	ID                string      `yaml:"id" json:"id"`
	Title             string      `yaml:"title" json:"title"`
	Date              date.Date   `yaml:"date" json:"date"`
	Time              *date.Clock `yaml:"time,omitempty" json:"time,omitempty"`
	Priority          string      `yaml:"priority,omitempty" json:"priority,omitempty"`
	Category          string      `yaml:"category,omitempty" json:"category,omitempty"`
	Created           time.Time   `yaml:"created" json:"created"`
	Updated           time.Time   `yaml:"updated" json:"updated"`
	SyncStatus        string      `yaml:"sync_status,omitempty" json:"sync_status,omitempty"`
	ReminderScheduled bool        `yaml:"reminder_scheduled,omitempty" json:"reminder_scheduled,omitempty"`

	// Description is the markdown content below the frontmatter (not in YAML).
	Description string `yaml:"-" json:"description,omitempty"`

	// File is the path to the task file (not in YAML).
	File string `yaml:"-" json:"file,omitempty"`
}

// DueAt resolves the task's due instant in the given location, substituting
// fallback for the time of day when the task has none.
func (t *Task) DueAt(fallback date.Clock, loc *time.Location) time.Time {
	clk := fallback
	if t.Time != nil {
		clk = *t.Time
	}
	return t.Date.At(clk, loc)
}
