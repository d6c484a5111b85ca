package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/simtask/simtask/internal/tui"
	"github.com/simtask/simtask/internal/watcher"
)

var agendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Open the interactive agenda",
	Long: `Opens the interactive terminal agenda: tasks grouped into overdue,
today, and upcoming, refreshed live as task and alert files change.

This is also the default when simtask runs without a subcommand.`,
	Args: cobra.NoArgs,
	RunE: runAgenda,
}

func init() {
	rootCmd.AddCommand(agendaCmd)
}

func runAgenda(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	model := tui.NewAgenda(cfg, openStore(cfg), openDelivery(cfg))
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go startAgendaWatcher(ctx, model, p)

	_, err = p.Run()
	return err
}

func startAgendaWatcher(ctx context.Context, model *tui.Agenda, p *tea.Program) {
	w, err := watcher.New(model.WatchPaths(), func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		return // non-fatal: the agenda works without live refresh
	}
	defer w.Close()
	w.Run(ctx, nil)
}
