package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/simtask/simtask/internal/config"
	"github.com/simtask/simtask/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init [DIR]",
	Short: "Create a simtask directory",
	Long: `Creates a simtask directory with default settings, a tasks
subdirectory, and an alerts spool. Defaults to ./simtask; pass a path to
initialize elsewhere.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, args []string) error {
	dir := config.DefaultDir
	if len(args) > 0 {
		dir = args[0]
	}
	if flagDir != "" {
		dir = flagDir
	}

	cfg, err := config.Init(dir)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]string{
			"status": "initialized",
			"dir":    cfg.Dir(),
		})
	}

	output.Messagef(os.Stdout, "Initialized simtask directory at %s", cfg.Dir())
	output.Messagef(os.Stdout, "  Tasks:  %s", cfg.TasksPath())
	output.Messagef(os.Stdout, "  Alerts: %s", cfg.AlertsPath())
	return nil
}
