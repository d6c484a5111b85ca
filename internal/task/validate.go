package task

import (
	"regexp"
	"strings"

	"github.com/simtask/simtask/internal/clierr"
)

// Field length caps.
const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 2000
	MaxCategoryLength    = 50
)

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// SanitizeText strips markup and angle brackets from free-form input
// and trims surrounding whitespace.
func SanitizeText(s string) string {
	s = htmlTagRe.ReplaceAllString(s, "")
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	return strings.TrimSpace(s)
}

// ValidateTitle checks that a title is present and within limits after
// sanitization.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return clierr.New(clierr.InvalidTitle, "title is required")
	}
	sanitized := SanitizeText(title)
	if sanitized == "" {
		return clierr.New(clierr.InvalidTitle, "title contains only invalid characters")
	}
	if len(sanitized) > MaxTitleLength {
		return clierr.Newf(clierr.InvalidTitle, "title must be at most %d characters", MaxTitleLength).
			WithDetails(map[string]any{"max": MaxTitleLength, "length": len(sanitized)})
	}
	return nil
}

// ValidateDescription checks the optional description length.
func ValidateDescription(desc string) error {
	if desc == "" {
		return nil
	}
	if len(SanitizeText(desc)) > MaxDescriptionLength {
		return clierr.Newf(clierr.InvalidInput, "description must be at most %d characters", MaxDescriptionLength).
			WithDetails(map[string]any{"max": MaxDescriptionLength})
	}
	return nil
}

// ValidateCategory checks the optional category length.
func ValidateCategory(category string) error {
	if category == "" {
		return nil
	}
	if len(SanitizeText(category)) > MaxCategoryLength {
		return clierr.Newf(clierr.InvalidInput, "category must be at most %d characters", MaxCategoryLength).
			WithDetails(map[string]any{"max": MaxCategoryLength})
	}
	return nil
}

// ValidatePriority checks that a priority is in the allowed list.
func ValidatePriority(priority string, allowed []string) error {
	for _, p := range allowed {
		if p == priority {
			return nil
		}
	}
	return clierr.Newf(clierr.InvalidPriority, "invalid priority %q", priority).
		WithDetails(map[string]any{
			"priority": priority,
			"allowed":  allowed,
		})
}

// ValidateDate returns a CLIError for invalid date input.
func ValidateDate(input string, err error) *clierr.Error {
	return clierr.Newf(clierr.InvalidDate, "invalid date: %v", err).
		WithDetails(map[string]any{"input": input})
}

// ValidateTime returns a CLIError for invalid time-of-day input.
func ValidateTime(input string, err error) *clierr.Error {
	return clierr.Newf(clierr.InvalidTime, "invalid time: %v", err).
		WithDetails(map[string]any{"input": input})
}
