//go:build !linux && !darwin

package notifier

func newPlatformPoster() Poster {
	return stderrPoster{}
}
