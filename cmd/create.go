package cmd

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/simtask/simtask/internal/clierr"
	"github.com/simtask/simtask/internal/config"
	"github.com/simtask/simtask/internal/date"
	"github.com/simtask/simtask/internal/filelock"
	"github.com/simtask/simtask/internal/output"
	"github.com/simtask/simtask/internal/store"
	"github.com/simtask/simtask/internal/task"
)

var createCmd = &cobra.Command{
	Use:     "create [TITLE]",
	Aliases: []string{"add"},
	Short:   "Create a new task",
	Long: `Creates a new task with the given title and due date, and schedules
its reminder alerts.

Title can be provided as a positional argument or via --title flag.
Without --time the task is due at the configured default time (09:00).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().String("title", "", "task title (alternative to positional argument)")
	createCmd.Flags().String("date", "", "due date (YYYY-MM-DD), required")
	createCmd.Flags().String("time", "", "due time (HH:MM, 24-hour)")
	createCmd.Flags().String("priority", "", "task priority (low, medium, high)")
	createCmd.Flags().String("category", "", "free-form category label")
	createCmd.Flags().String("description", "", "task description (markdown)")
	createCmd.Flags().Bool("no-reminders", false, "skip reminder scheduling for this task")
	createCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
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
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Serialize against concurrent CLI invocations and the notifier daemon.
	unlock, err := filelock.Lock(filepath.Join(cfg.Dir(), ".lock"))
	if err != nil {
		return err
	}
	defer unlock() //nolint:errcheck // best-effort unlock on exit

	fields, err := collectCreateFields(cmd, args)
	if err != nil {
		return err
	}

	st := openStore(cfg)
	t, err := st.Create(fields)
	if err != nil {
		return err
	}

	// Reminders are scheduled only after the store write succeeded.
	noReminders, _ := cmd.Flags().GetBool("no-reminders")
	if cfg.Notify.Enabled && !noReminders {
		t = scheduleAndMark(cfg, st, t)
	}

	logActivity(cfg, "create", t.ID, t.Title)

	return outputCreateResult(t)
}

// collectCreateFields validates flags and assembles the store fields.
func collectCreateFields(cmd *cobra.Command, args []string) (store.Fields, error) {
	var fields store.Fields

	title, err := resolveCreateTitle(cmd, args)
	if err != nil {
		return fields, err
	}
	if err := task.ValidateTitle(title); err != nil {
		return fields, err
	}
	fields.Title = task.SanitizeText(title)

	dateStr, _ := cmd.Flags().GetString("date")
	if dateStr == "" {
		return fields, clierr.New(clierr.InvalidDate, "due date is required: provide it with --date")
	}
	d, err := date.Parse(dateStr)
	if err != nil {
		return fields, task.ValidateDate(dateStr, err)
	}
	fields.Date = d

	if v, _ := cmd.Flags().GetString("time"); v != "" {
		clk, err := date.ParseClock(v)
		if err != nil {
			return fields, task.ValidateTime(v, err)
		}
		fields.Time = &clk
	}
	if v, _ := cmd.Flags().GetString("priority"); v != "" {
		if err := task.ValidatePriority(v, config.Priorities); err != nil {
			return fields, err
		}
		fields.Priority = v
	}
	if v, _ := cmd.Flags().GetString("category"); v != "" {
		if err := task.ValidateCategory(v); err != nil {
			return fields, err
		}
		fields.Category = task.SanitizeText(v)
	}
	if v, _ := cmd.Flags().GetString("description"); v != "" {
		if err := task.ValidateDescription(v); err != nil {
			return fields, err
		}
		fields.Description = v
	}

	return fields, nil
}

// scheduleAndMark registers the task's reminder alerts and records on the
// task whether any registration succeeded. Scheduling problems never fail
// the create; the task is already persisted.
func scheduleAndMark(cfg *config.Config, st store.Store, t *task.Task) *task.Task {
	handles := newScheduler(cfg).Schedule(t, cfg.Notify.TTS)
	if len(handles) == 0 {
		return t
	}

	updated, err := st.Update(t.ID, func(u *task.Task) {
		u.ReminderScheduled = true
	})
	if err != nil {
		printStoreWarning(err)
		return t
	}
	logActivity(cfg, "schedule", t.ID, t.Title)
	return updated
}

func printStoreWarning(err error) {
	output.Messagef(os.Stderr, "Warning: updating reminder flag: %v", err)
}

func outputCreateResult(t *task.Task) error {
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}

	output.Messagef(os.Stdout, "Created task %s: %s", t.ID, t.Title)
	output.Messagef(os.Stdout, "  Due: %s", dueDisplay(t))
	if t.Priority != "" {
		output.Messagef(os.Stdout, "  Priority: %s", t.Priority)
	}
	if t.Category != "" {
		output.Messagef(os.Stdout, "  Category: %s", t.Category)
	}
	if t.ReminderScheduled {
		output.Messagef(os.Stdout, "  Reminders: scheduled")
	}
	return nil
}

// dueDisplay renders a task's due date and optional time for messages.
func dueDisplay(t *task.Task) string {
	if t.Time != nil {
		return t.Date.String() + " " + t.Time.String()
	}
	return t.Date.String()
}

// resolveCreateTitle returns the task title from either the positional arg or --title flag.
func resolveCreateTitle(cmd *cobra.Command, args []string) (string, error) {
	flagTitle, _ := cmd.Flags().GetString("title")
	hasPositional := len(args) > 0
	hasFlag := flagTitle != ""

	switch {
	case hasPositional && hasFlag:
		return "", clierr.New(clierr.InvalidInput,
			"title provided both as argument and --title flag; use one or the other")
	case hasPositional:
		return args[0], nil
	case hasFlag:
		return flagTitle, nil
	default:
		return "", errors.New("title is required: provide it as an argument or with --title")
	}
}
