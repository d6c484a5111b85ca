// Package speech provides best-effort text-to-speech playback for fired
// reminders. Failures are logged by callers, never surfaced further.
package speech

// Speaker reads a message aloud. Implementations are fire-and-forget:
// a returned error means the message was not spoken, nothing more.
type Speaker interface {
	Speak(message string) error
}

// New returns the text-to-speech engine for the current platform, or a
// no-op Speaker when the platform has none.
func New(language string) Speaker {
	return newPlatformSpeaker(language)
}

// Nop is a Speaker that discards every message.
type Nop struct{}

// Speak implements Speaker.
func (Nop) Speak(string) error { return nil }
