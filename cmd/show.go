package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/simtask/simtask/internal/output"
)

var showCmd = &cobra.Command{
	Use:     "show TASK_ID",
	Aliases: []string{"view"},
	Short:   "Show a task's full detail",
	Args:    cobra.ExactArgs(1),
	RunE:    runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	t, err := openStore(cfg).Get(args[0])
	if err != nil {
		return err
	}

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, t)
	case output.FormatCompact:
		output.TaskDetailCompact(os.Stdout, t)
	default:
		rendered := ""
		if t.Description != "" {
			rendered = output.RenderMarkdown(t.Description, terminalWidth())
		}
		output.TaskDetail(os.Stdout, t, rendered)
	}
	return nil
}

// terminalWidth returns the stdout width for wrapping, or a sane default
// when stdout is not a terminal.
func terminalWidth() int {
	const defaultWidth = 80
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}
