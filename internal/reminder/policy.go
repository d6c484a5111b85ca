// Package reminder computes and manages task reminder schedules: which
// instants a task should fire alerts at, registering those alerts with a
// delivery collaborator, and cancelling them by task identity.
package reminder

import (
	"github.com/simtask/simtask/internal/config"
	"github.com/simtask/simtask/internal/date"
)

// Policy holds the reminder scheduling rules.
type Policy struct {
	// AdvanceDays is the advance-reminder lead time in days. The advance
	// reminder only applies when the due instant is more than one day away.
	AdvanceDays int
	// SameDayHours is the same-day reminder lead time in hours. The
	// same-day reminder only applies when the due instant falls on the
	// current calendar day.
	SameDayHours int
	// DefaultClock is the time of day assumed for tasks without an
	// explicit due time.
	DefaultClock date.Clock
}

// DefaultPolicy returns the built-in policy: advance 3 days, same-day
// 3 hours, default due time 09:00.
func DefaultPolicy() Policy {
	return Policy{
		AdvanceDays:  config.DefaultAdvanceDays,
		SameDayHours: config.DefaultSameDayHours,
		DefaultClock: date.NewClock(9, 0),
	}
}

// PolicyFromConfig builds a Policy from the configured reminder settings.
func PolicyFromConfig(cfg *config.Config) Policy {
	return Policy{
		AdvanceDays:  cfg.Reminders.AdvanceDays,
		SameDayHours: cfg.Reminders.SameDayHours,
		DefaultClock: cfg.DefaultClock(),
	}
}
