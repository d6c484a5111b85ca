package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/simtask/simtask/internal/notifier"
	"github.com/simtask/simtask/internal/notify"
	"github.com/simtask/simtask/internal/output"
	"github.com/simtask/simtask/internal/speech"
)

var notifyCmd = &cobra.Command{
	Use:     "notify",
	Aliases: []string{"daemon"},
	Short:   "Run the reminder notifier in the foreground",
	Long: `Runs the reminder loop: watches the alert spool, posts a desktop
notification when each alert comes due, and reads it aloud when speech
is enabled. Alerts that came due while no notifier was running fire
immediately on startup.

Runs until interrupted (Ctrl-C).`,
	Args: cobra.NoArgs,
	RunE: runNotify,
}

func init() {
	notifyCmd.Flags().Bool("no-tts", false, "disable speech for this run")
	rootCmd.AddCommand(notifyCmd)
}

func runNotify(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var speaker speech.Speaker = speech.Nop{}
	noTTS, _ := cmd.Flags().GetBool("no-tts")
	if cfg.Notify.TTS && !noTTS {
		speaker = speech.New(cfg.Language)
	}

	spool := notify.NewSpool(cfg.AlertsPath())
	n := notifier.New(spool, speaker)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	output.Messagef(os.Stderr, "Watching %s for reminders (Ctrl-C to stop)", cfg.AlertsPath())
	return n.Run(ctx)
}
