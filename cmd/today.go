package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/simtask/simtask/internal/agenda"
	"github.com/simtask/simtask/internal/date"
	"github.com/simtask/simtask/internal/output"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's agenda",
	Long: `Shows a summary of today's tasks (totals, overdue count, pending
reminders) followed by the task list ordered by time of day.`,
	Args: cobra.NoArgs,
	RunE: runToday,
}

func init() {
	rootCmd.AddCommand(todayCmd)
}

func runToday(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	day := date.Today()
	tasks, err := openStore(cfg).ByDate(day)
	if err != nil {
		return err
	}

	regs, err := openDelivery(cfg).List()
	if err != nil {
		// A broken alert spool should not hide today's tasks.
		printAlertWarning(err)
		regs = nil
	}

	overview := agenda.BuildOverview(day, tasks, regs, cfg.DefaultClock(), time.Now())

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, struct {
			Overview agenda.Overview `json:"overview"`
			Tasks    any             `json:"tasks"`
		}{overview, tasks})
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, tasks)
	default:
		output.OverviewTable(os.Stdout, overview)
		if len(tasks) > 0 {
			output.Messagef(os.Stdout, "")
			output.TaskTable(os.Stdout, tasks)
		}
	}
	return nil
}

func printAlertWarning(err error) {
	output.Messagef(os.Stderr, "Warning: reading alert spool: %v", err)
}
