package cmd

import (
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/simtask/simtask/internal/output"
	"github.com/simtask/simtask/internal/task"
)

var remindersCmd = &cobra.Command{
	Use:     "reminders",
	Aliases: []string{"alerts"},
	Short:   "List pending reminder alerts",
	Long: `Lists every registered reminder alert in fire order. Each task can
have up to three: an advance reminder, a same-day reminder, and one at
the due instant.`,
	Args: cobra.NoArgs,
	RunE: runReminders,
}

var remindersCancelCmd = &cobra.Command{
	Use:   "cancel TASK_ID",
	Short: "Cancel a task's pending reminders",
	Long: `Revokes every pending alert registered for the given task. The task
itself is kept. Cancelling a task with no pending alerts is a no-op.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemindersCancel,
}

func init() {
	remindersCmd.AddCommand(remindersCancelCmd)
	rootCmd.AddCommand(remindersCmd)
}

func runReminders(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	regs, err := openDelivery(cfg).List()
	if err != nil {
		return err
	}

	sort.Slice(regs, func(i, j int) bool {
		return regs[i].FireAt.Before(regs[j].FireAt)
	})

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, regs)
	}
	output.AlertTable(os.Stdout, regs, time.Now())
	return nil
}

func runRemindersCancel(_ *cobra.Command, args []string) error {
	taskID := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st := openStore(cfg)
	t, err := st.Get(taskID)
	if err != nil {
		return err
	}

	if err := newScheduler(cfg).Cancel(taskID); err != nil {
		return err
	}

	if t.ReminderScheduled {
		if _, err := st.Update(taskID, func(u *task.Task) {
			u.ReminderScheduled = false
		}); err != nil {
			printStoreWarning(err)
		}
	}

	logActivity(cfg, "cancel-reminders", taskID, t.Title)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{
			"status": "cancelled",
			"id":     taskID,
		})
	}
	output.Messagef(os.Stdout, "Cancelled reminders for task %s: %s", taskID, t.Title)
	return nil
}
