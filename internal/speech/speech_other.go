//go:build !linux && !darwin

package speech

func newPlatformSpeaker(_ string) Speaker {
	return Nop{}
}
