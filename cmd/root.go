// Package cmd implements the simtask CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/simtask/simtask/internal/clierr"
	"github.com/simtask/simtask/internal/config"
	"github.com/simtask/simtask/internal/history"
	"github.com/simtask/simtask/internal/notify"
	"github.com/simtask/simtask/internal/output"
	"github.com/simtask/simtask/internal/reminder"
	"github.com/simtask/simtask/internal/store"
	"github.com/simtask/simtask/internal/task"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagDir     string
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "simtask",
	Short: "Personal task reminders from your terminal",
	Long: `simtask keeps dated tasks as plain files and reminds you about them.
Create tasks with due dates, run 'simtask notify' to receive desktop
notifications (optionally read aloud) ahead of and at each due time.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runAgenda,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || output.ColorDisabled() {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to simtask directory")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// Handle SilentError — exit with code, no output.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	// Determine if JSON mode is active.
	jsonMode := flagJSON
	if !jsonMode {
		jsonMode = os.Getenv("SIMTASK_OUTPUT") == "json"
	}

	if jsonMode {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		// Unknown error — wrap as INTERNAL_ERROR.
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	// Non-JSON mode: print to stderr.
	fmt.Fprintln(os.Stderr, err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// defaultHomeDir returns the path to ~/.config/simtask.
func defaultHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config/simtask"), nil
}

// resolveDir returns the absolute path to the simtask directory.
// Falls back to ~/.config/simtask if none is found in the current directory tree.
func resolveDir() (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	dir, err := config.FindDir(cwd)
	if err == nil {
		return dir, nil
	}

	// Fall back to ~/.config/simtask.
	return defaultHomeDir()
}

// loadConfig finds and loads the simtask config.
// If the resolved directory is ~/.config/simtask and it doesn't exist yet,
// it is auto-created with defaults.
func loadConfig() (*config.Config, error) {
	dir, err := resolveDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dir)
	if err == nil {
		return cfg, nil
	}

	// Auto-create ~/.config/simtask if it's the home default and doesn't exist.
	if !errors.Is(err, config.ErrNotFound) {
		return nil, err
	}
	homeDir, homeErr := defaultHomeDir()
	if homeErr != nil || dir != homeDir {
		return nil, err
	}

	return config.Init(homeDir)
}

// openStore returns the task persistence backend for the loaded config.
// The store is selected here, once, and passed to call sites explicitly.
func openStore(cfg *config.Config) store.Store {
	return store.NewFileStore(cfg.TasksPath())
}

// openDelivery returns the alert delivery backend for the loaded config.
func openDelivery(cfg *config.Config) notify.Delivery {
	return notify.NewSpool(cfg.AlertsPath())
}

// newScheduler builds the reminder scheduler over the configured delivery
// backend and policy.
func newScheduler(cfg *config.Config) *reminder.Scheduler {
	return reminder.NewScheduler(openDelivery(cfg), reminder.PolicyFromConfig(cfg))
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// printWarnings writes task read warnings to stderr.
func printWarnings(warnings []task.ReadWarning) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: skipping malformed file %s: %v\n", w.File, w.Err)
	}
}

// logActivity appends an entry to the activity log. Errors are silently
// discarded because logging should never fail a command.
func logActivity(cfg *config.Config, action, taskID, detail string) {
	history.LogMutation(cfg.Dir(), action, taskID, detail)
}

// cancelReminders revokes a task's outstanding alerts, logging (not
// failing) when the spool cannot be enumerated. Must complete before the
// task is rescheduled or its record deleted.
func cancelReminders(cfg *config.Config, sched *reminder.Scheduler, taskID string) {
	if err := sched.Cancel(taskID); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cancelling reminders for %s: %v\n", taskID, err)
	}
}
