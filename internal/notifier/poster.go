// Package notifier runs the foreground alert loop: it arms timers for the
// alerts in the spool, posts desktop notifications when they fire, relays
// voice reminders to the speech collaborator, and removes fired alerts.
package notifier

import (
	"fmt"
	"os"
)

// Poster delivers a fired alert to the user. One implementation per
// platform, selected at startup.
type Poster interface {
	Post(title, body string) error
}

// stderrPoster prints alerts to stderr. Fallback when the platform has no
// desktop notification mechanism available.
type stderrPoster struct{}

// Post implements Poster.
func (stderrPoster) Post(title, body string) error {
	_, err := fmt.Fprintf(os.Stderr, "\a[%s] %s\n", title, body)
	return err
}
