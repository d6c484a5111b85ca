package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/simtask/simtask/internal/config"
	"github.com/simtask/simtask/internal/date"
	"github.com/simtask/simtask/internal/filelock"
	"github.com/simtask/simtask/internal/output"
	"github.com/simtask/simtask/internal/task"
)

var editCmd = &cobra.Command{
	Use:     "edit TASK_ID",
	Aliases: []string{"update"},
	Short:   "Edit an existing task",
	Long: `Updates fields on an existing task. Only the provided flags change;
everything else is preserved.

Editing re-plans the task's reminders: outstanding alerts are revoked
first, then fresh ones are registered from the updated due date and time.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().String("date", "", "new due date (YYYY-MM-DD)")
	editCmd.Flags().String("time", "", "new due time (HH:MM), or 'none' to clear")
	editCmd.Flags().String("priority", "", "new priority (low, medium, high), or 'none' to clear")
	editCmd.Flags().String("category", "", "new category, or 'none' to clear")
	editCmd.Flags().String("description", "", "new description (markdown)")
	editCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "body":
			name = "description"
		case "due":
			name = "date"
		case "at":
			name = "time"
		}
		return pflag.NormalizedName(name)
	})
	rootCmd.AddCommand(editCmd)
}

// taskEdit holds the parsed, validated field changes for one edit.
type taskEdit struct {
	title       *string
	date        *date.Date
	time        *date.Clock
	clearTime   bool
	priority    *string
	category    *string
	description *string
}

func (e taskEdit) empty() bool {
	return e.title == nil && e.date == nil && e.time == nil && !e.clearTime &&
		e.priority == nil && e.category == nil && e.description == nil
}

// touchesDue reports whether the edit changes the task's fire schedule.
func (e taskEdit) touchesDue() bool {
	return e.date != nil || e.time != nil || e.clearTime || e.title != nil
}

func (e taskEdit) apply(t *task.Task) {
	if e.title != nil {
		t.Title = *e.title
	}
	if e.date != nil {
		t.Date = *e.date
	}
	if e.clearTime {
		t.Time = nil
	} else if e.time != nil {
		t.Time = e.time
	}
	if e.priority != nil {
		t.Priority = *e.priority
	}
	if e.category != nil {
		t.Category = *e.category
	}
	if e.description != nil {
		t.Description = *e.description
	}
	t.SyncStatus = task.SyncPending
}

func runEdit(cmd *cobra.Command, args []string) error {
	taskID := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	unlock, err := filelock.Lock(filepath.Join(cfg.Dir(), ".lock"))
	if err != nil {
		return err
	}
	defer unlock() //nolint:errcheck // best-effort unlock on exit

	edit, err := collectEdit(cmd)
	if err != nil {
		return err
	}
	if edit.empty() {
		output.Messagef(os.Stderr, "Nothing to change for task %s.", taskID)
		return nil
	}

	st := openStore(cfg)
	sched := newScheduler(cfg)

	// Revoke before the record changes so stale alerts cannot fire for the
	// old due time.
	if edit.touchesDue() {
		cancelReminders(cfg, sched, taskID)
	}

	t, err := st.Update(taskID, edit.apply)
	if err != nil {
		return err
	}

	if cfg.Notify.Enabled && edit.touchesDue() {
		t = scheduleAndMark(cfg, st, t)
	}

	logActivity(cfg, "edit", t.ID, t.Title)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}
	output.Messagef(os.Stdout, "Updated task %s: %s", t.ID, t.Title)
	output.Messagef(os.Stdout, "  Due: %s", dueDisplay(t))
	return nil
}

// collectEdit validates the edit flags and returns the changes to apply.
// A literal "none" clears the optional time, priority, and category fields.
func collectEdit(cmd *cobra.Command) (taskEdit, error) {
	var edit taskEdit

	if cmd.Flags().Changed("title") {
		v, _ := cmd.Flags().GetString("title")
		if err := task.ValidateTitle(v); err != nil {
			return edit, err
		}
		s := task.SanitizeText(v)
		edit.title = &s
	}
	if cmd.Flags().Changed("date") {
		v, _ := cmd.Flags().GetString("date")
		d, err := date.Parse(v)
		if err != nil {
			return edit, task.ValidateDate(v, err)
		}
		edit.date = &d
	}
	if cmd.Flags().Changed("time") {
		v, _ := cmd.Flags().GetString("time")
		if v == "none" {
			edit.clearTime = true
		} else {
			clk, err := date.ParseClock(v)
			if err != nil {
				return edit, task.ValidateTime(v, err)
			}
			edit.time = &clk
		}
	}
	if cmd.Flags().Changed("priority") {
		v, _ := cmd.Flags().GetString("priority")
		if v == "none" {
			v = ""
		} else if err := task.ValidatePriority(v, config.Priorities); err != nil {
			return edit, err
		}
		edit.priority = &v
	}
	if cmd.Flags().Changed("category") {
		v, _ := cmd.Flags().GetString("category")
		if v == "none" {
			v = ""
		} else {
			if err := task.ValidateCategory(v); err != nil {
				return edit, err
			}
			v = task.SanitizeText(v)
		}
		edit.category = &v
	}
	if cmd.Flags().Changed("description") {
		v, _ := cmd.Flags().GetString("description")
		if err := task.ValidateDescription(v); err != nil {
			return edit, err
		}
		edit.description = &v
	}

	return edit, nil
}
