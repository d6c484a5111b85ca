//go:build linux

package notifier

import (
	"fmt"
	"os/exec"
)

// notifySendPoster posts desktop notifications via notify-send.
type notifySendPoster struct{}

func newPlatformPoster() Poster {
	if _, err := exec.LookPath("notify-send"); err != nil {
		return stderrPoster{}
	}
	return notifySendPoster{}
}

// Post implements Poster.
func (notifySendPoster) Post(title, body string) error {
	if err := exec.Command("notify-send", "--urgency=normal", title, body).Run(); err != nil {
		return fmt.Errorf("running notify-send: %w", err)
	}
	return nil
}
