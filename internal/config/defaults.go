// Package config handles simtask application configuration.
package config

const (
	// DefaultDir is the default simtask directory name when discovered
	// inside a project tree.
	DefaultDir = "simtask"
	// DefaultTasksDir is the default tasks subdirectory name.
	DefaultTasksDir = "tasks"
	// DefaultAlertsDir is the default alerts spool subdirectory name.
	DefaultAlertsDir = "alerts"

	// DefaultAdvanceDays is the advance-reminder lead time in days.
	DefaultAdvanceDays = 3
	// DefaultSameDayHours is the same-day reminder lead time in hours.
	DefaultSameDayHours = 3
	// DefaultReminderTime is the time of day used when a task has no
	// explicit due time.
	DefaultReminderTime = "09:00"

	// DefaultTheme is the default display theme.
	DefaultTheme = "auto"
	// DefaultLanguage is the default speech/display language.
	DefaultLanguage = "en"

	// ConfigFileName is the name of the config file within the simtask directory.
	ConfigFileName = "config.yml"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 1
)

// Themes lists the accepted theme values.
var Themes = []string{"light", "dark", "auto"}

// Priorities lists the accepted task priorities in ascending order.
var Priorities = []string{"low", "medium", "high"}
