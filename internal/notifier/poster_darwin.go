//go:build darwin

package notifier

import (
	"fmt"
	"os/exec"
	"strings"
)

// osascriptPoster posts notification-center alerts via osascript.
type osascriptPoster struct{}

func newPlatformPoster() Poster {
	if _, err := exec.LookPath("osascript"); err != nil {
		return stderrPoster{}
	}
	return osascriptPoster{}
}

// Post implements Poster.
func (osascriptPoster) Post(title, body string) error {
	script := fmt.Sprintf("display notification %q with title %q",
		escapeAppleScript(body), escapeAppleScript(title))
	if err := exec.Command("osascript", "-e", script).Run(); err != nil {
		return fmt.Errorf("running osascript: %w", err)
	}
	return nil
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
