//go:build darwin

package speech

import (
	"fmt"
	"os/exec"
)

// saySpeaker shells out to the macOS say binary.
type saySpeaker struct{}

func newPlatformSpeaker(_ string) Speaker {
	if _, err := exec.LookPath("say"); err != nil {
		return Nop{}
	}
	return saySpeaker{}
}

// Speak implements Speaker.
func (saySpeaker) Speak(message string) error {
	if err := exec.Command("say", message).Run(); err != nil {
		return fmt.Errorf("running say: %w", err)
	}
	return nil
}
