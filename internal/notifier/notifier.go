package notifier

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/simtask/simtask/internal/notify"
	"github.com/simtask/simtask/internal/speech"
	"github.com/simtask/simtask/internal/watcher"
)

// Notifier is the foreground reminder loop. It treats the alert spool as
// the single source of truth: every pass reloads the spool, fires whatever
// is due (including alerts that came due while the process was down), and
// sleeps until the next pending fire instant. A filesystem watcher on the
// spool directory wakes the loop when CLI invocations register or revoke
// alerts.
type Notifier struct {
	spool   *notify.Spool
	poster  Poster
	speaker speech.Speaker

	// out receives one line per fired alert; defaults to stdout.
	out io.Writer
	// now is the clock used for due checks; defaults to time.Now.
	now func() time.Time
}

// New creates a Notifier over the given spool, with the platform's
// notification poster and speech engine.
func New(spool *notify.Spool, speaker speech.Speaker) *Notifier {
	return &Notifier{
		spool:   spool,
		poster:  newPlatformPoster(),
		speaker: speaker,
		out:     os.Stdout,
		now:     time.Now,
	}
}

// SetPoster overrides the notification poster. Used by tests.
func (n *Notifier) SetPoster(p Poster) { n.poster = p }

// SetOutput overrides the fired-alert log writer.
func (n *Notifier) SetOutput(w io.Writer) { n.out = w }

// SetClock overrides the due-check clock. Used by tests.
func (n *Notifier) SetClock(now func() time.Time) { n.now = now }

// Run blocks until the context is canceled, firing alerts as they come due.
func (n *Notifier) Run(ctx context.Context) error {
	reload := make(chan struct{}, 1)
	w, err := watcher.New([]string{n.spool.Dir()}, func() {
		select {
		case reload <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return fmt.Errorf("watching alerts directory: %w", err)
	}
	defer w.Close()
	go w.Run(ctx, func(err error) {
		fmt.Fprintf(os.Stderr, "Warning: watcher: %v\n", err)
	})

	for {
		next, err := n.firePass()
		if err != nil {
			return err
		}

		var timerC <-chan time.Time
		var timer *time.Timer
		if next != nil {
			timer = time.NewTimer(time.Until(*next))
			timerC = timer.C
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case <-reload:
		case <-timerC:
		}
		if timer != nil {
			timer.Stop()
		}
	}
}

// firePass fires every due alert and returns the fire instant of the next
// pending one, or nil when the spool holds no future alerts.
func (n *Notifier) firePass() (*time.Time, error) {
	alerts, warnings, err := n.spool.Pending()
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: skipping malformed alert %s: %v\n", w.File, w.Err)
	}

	now := n.now()
	var next *time.Time
	for _, a := range alerts {
		if a.FireAt.After(now) {
			if next == nil || a.FireAt.Before(*next) {
				at := a.FireAt
				next = &at
			}
			continue
		}

		n.fire(a)
		if err := n.spool.Revoke(notify.Handle(a.ID)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: removing fired alert %s: %v\n", a.ID, err)
		}
	}

	return next, nil
}

// fire delivers a single alert: desktop notification first, then the voice
// reminder when the alert was registered with one. Both are best-effort.
func (n *Notifier) fire(a *notify.Alert) {
	fmt.Fprintf(n.out, "%s  %s (task %s)\n", n.now().Format("15:04:05"), a.Title, a.Task.TaskID)

	if err := n.poster.Post(a.Title, a.Body); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: posting notification for task %s: %v\n", a.Task.TaskID, err)
	}

	if a.Speech != "" {
		if err := n.speaker.Speak(a.Speech); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: speaking reminder for task %s: %v\n", a.Task.TaskID, err)
		}
	}
}
