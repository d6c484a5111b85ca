package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/simtask/simtask/internal/agenda"
	"github.com/simtask/simtask/internal/clierr"
	"github.com/simtask/simtask/internal/date"
	"github.com/simtask/simtask/internal/output"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `Lists tasks, optionally filtered and sorted.

Filters combine with AND logic. --search matches title, description, and
category case-insensitively.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().String("date", "", "only tasks due on this date (YYYY-MM-DD)")
	listCmd.Flags().Bool("today", false, "only tasks due today")
	listCmd.Flags().Bool("upcoming", false, "only tasks due after today")
	listCmd.Flags().Bool("overdue", false, "only tasks due before today")
	listCmd.Flags().StringSlice("priority", nil, "filter by priority (repeatable)")
	listCmd.Flags().String("category", "", "filter by category (exact, case-insensitive)")
	listCmd.Flags().StringP("search", "s", "", "search title, description, and category")
	listCmd.Flags().String("sort", agenda.FieldDue, "sort field (due, priority, created, updated, title)")
	listCmd.Flags().BoolP("reverse", "r", false, "reverse sort order")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts, err := collectListFilter(cmd)
	if err != nil {
		return err
	}

	sortField, _ := cmd.Flags().GetString("sort")
	if !containsStr(agenda.ValidSortFields(), sortField) {
		return clierr.Newf(clierr.InvalidInput, "invalid sort field %q", sortField).
			WithDetails(map[string]any{"allowed": agenda.ValidSortFields()})
	}

	tasks, warnings, err := openStore(cfg).All()
	if err != nil {
		return err
	}
	printWarnings(warnings)

	tasks = agenda.Filter(tasks, opts)
	reverse, _ := cmd.Flags().GetBool("reverse")
	agenda.Sort(tasks, sortField, reverse)

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, tasks)
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, tasks)
	default:
		output.TaskTable(os.Stdout, tasks)
	}
	return nil
}

func collectListFilter(cmd *cobra.Command) (agenda.FilterOptions, error) {
	var opts agenda.FilterOptions

	if v, _ := cmd.Flags().GetString("date"); v != "" {
		d, err := date.Parse(v)
		if err != nil {
			return opts, clierr.Newf(clierr.InvalidDate, "invalid date: %v", err)
		}
		opts.Date = &d
	}
	opts.Today, _ = cmd.Flags().GetBool("today")
	opts.Upcoming, _ = cmd.Flags().GetBool("upcoming")
	opts.Overdue, _ = cmd.Flags().GetBool("overdue")
	opts.Priorities, _ = cmd.Flags().GetStringSlice("priority")
	opts.Category, _ = cmd.Flags().GetString("category")
	opts.Search, _ = cmd.Flags().GetString("search")

	return opts, nil
}

func containsStr(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
