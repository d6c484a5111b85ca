package date

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input string
		want  Clock
	}{
		{"00:00", Clock{0, 0}},
		{"09:05", Clock{9, 5}},
		{"12:00", Clock{12, 0}},
		{"23:59", Clock{23, 59}},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		require.Equal(t, tt.want, got)
	}
}

func TestParseClockInvalid(t *testing.T) {
	for _, input := range []string{"", "24:00", "9:5", "09:60", "noon", "09.30"} {
		_, err := ParseClock(input)
		require.Error(t, err, "input %q", input)
	}
}

func TestClockString(t *testing.T) {
	require.Equal(t, "09:05", NewClock(9, 5).String())
	require.Equal(t, "00:00", NewClock(0, 0).String())
	require.Equal(t, "23:59", NewClock(23, 59).String())
}

func TestClockDisplay(t *testing.T) {
	tests := []struct {
		clock Clock
		want  string
	}{
		{NewClock(0, 0), "12:00 AM"},
		{NewClock(0, 30), "12:30 AM"},
		{NewClock(9, 5), "9:05 AM"},
		{NewClock(12, 0), "12:00 PM"},
		{NewClock(15, 30), "3:30 PM"},
		{NewClock(23, 59), "11:59 PM"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.clock.Display())
	}
}
