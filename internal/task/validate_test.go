package task

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simtask/simtask/internal/clierr"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain title", "plain title"},
		{"  padded  ", "padded"},
		{"<b>bold</b> move", "bold move"},
		{"a < b > c", "a  c"},
		{"<script>alert(1)</script>", "alert(1)"},
		{"<><>", ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, SanitizeText(tt.input), "input %q", tt.input)
	}
}

func TestValidateTitle(t *testing.T) {
	require.NoError(t, ValidateTitle("Dentist"))
	require.NoError(t, ValidateTitle(strings.Repeat("a", MaxTitleLength)))

	requireCode := func(err error, code string) {
		t.Helper()
		var cliErr *clierr.Error
		require.True(t, errors.As(err, &cliErr))
		require.Equal(t, code, cliErr.Code)
	}

	requireCode(ValidateTitle(""), clierr.InvalidTitle)
	requireCode(ValidateTitle("   "), clierr.InvalidTitle)
	requireCode(ValidateTitle("<><>"), clierr.InvalidTitle)
	requireCode(ValidateTitle(strings.Repeat("a", MaxTitleLength+1)), clierr.InvalidTitle)
}

func TestValidateDescription(t *testing.T) {
	require.NoError(t, ValidateDescription(""))
	require.NoError(t, ValidateDescription(strings.Repeat("d", MaxDescriptionLength)))
	require.Error(t, ValidateDescription(strings.Repeat("d", MaxDescriptionLength+1)))
}

func TestValidateCategory(t *testing.T) {
	require.NoError(t, ValidateCategory(""))
	require.NoError(t, ValidateCategory("errands"))
	require.Error(t, ValidateCategory(strings.Repeat("c", MaxCategoryLength+1)))
}

func TestValidatePriority(t *testing.T) {
	allowed := []string{"low", "medium", "high"}

	require.NoError(t, ValidatePriority("low", allowed))
	require.NoError(t, ValidatePriority("high", allowed))

	err := ValidatePriority("urgent", allowed)
	require.Error(t, err)
	var cliErr *clierr.Error
	require.True(t, errors.As(err, &cliErr))
	require.Equal(t, clierr.InvalidPriority, cliErr.Code)
	require.Equal(t, allowed, cliErr.Details["allowed"])
}
