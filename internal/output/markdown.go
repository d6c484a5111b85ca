package output

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders a task description as styled terminal markdown.
// Returns the input unchanged when rendering is unavailable (no TTY styling,
// renderer failure) so callers can always print the result.
func RenderMarkdown(md string, width int) string {
	if md == "" || ColorDisabled() {
		return md
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
