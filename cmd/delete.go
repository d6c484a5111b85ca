package cmd

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/simtask/simtask/internal/clierr"
	"github.com/simtask/simtask/internal/filelock"
	"github.com/simtask/simtask/internal/output"
)

var deleteCmd = &cobra.Command{
	Use:     "delete TASK_ID",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Deletes a task and revokes its outstanding reminder alerts.

Asks for confirmation when run interactively; pass --yes to skip the
prompt (required when stdin is not a terminal).`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
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

	st := openStore(cfg)
	t, err := st.Get(taskID)
	if err != nil {
		return err
	}

	skipPrompt, _ := cmd.Flags().GetBool("yes")
	if !skipPrompt {
		ok, err := confirmDelete(t.Title)
		if err != nil {
			return err
		}
		if !ok {
			output.Messagef(os.Stderr, "Aborted.")
			return nil
		}
	}

	// Alerts go first: a task record without alerts is harmless, alerts
	// without a task record would still fire.
	cancelReminders(cfg, newScheduler(cfg), taskID)

	if err := st.Delete(taskID); err != nil {
		return err
	}

	logActivity(cfg, "delete", taskID, t.Title)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{
			"status": "deleted",
			"id":     taskID,
		})
	}
	output.Messagef(os.Stdout, "Deleted task %s: %s", taskID, t.Title)
	return nil
}

// confirmDelete prompts on the terminal for a y/N answer. Refuses to guess
// when stdin is not a terminal.
func confirmDelete(title string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, clierr.New(clierr.ConfirmationReq,
			"stdin is not a terminal; pass --yes to delete without confirmation")
	}

	output.Messagef(os.Stderr, "Delete task %q? This also cancels its reminders. [y/N] ", title)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
