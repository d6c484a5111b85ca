//go:build linux

package speech

import (
	"fmt"
	"os/exec"
)

// espeakSpeaker shells out to espeak-ng (or the older espeak binary).
type espeakSpeaker struct {
	binary   string
	language string
}

func newPlatformSpeaker(language string) Speaker {
	for _, bin := range []string{"espeak-ng", "espeak"} {
		if _, err := exec.LookPath(bin); err == nil {
			return &espeakSpeaker{binary: bin, language: language}
		}
	}
	return Nop{}
}

// Speak implements Speaker.
func (s *espeakSpeaker) Speak(message string) error {
	args := []string{message}
	if s.language != "" {
		args = []string{"-v", s.language, message}
	}
	if err := exec.Command(s.binary, args...).Run(); err != nil { //nolint:gosec // fixed binary, message as single argv
		return fmt.Errorf("running %s: %w", s.binary, err)
	}
	return nil
}
