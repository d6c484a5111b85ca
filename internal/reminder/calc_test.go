package reminder

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/simtask/simtask/internal/date"
)

func testPolicy() Policy {
	return Policy{
		AdvanceDays:  3,
		SameDayHours: 3,
		DefaultClock: date.NewClock(9, 0),
	}
}

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func clockPtr(hour, minute int) *date.Clock {
	c := date.NewClock(hour, minute)
	return &c
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name string
		due  date.Date
		time *date.Clock
		now  time.Time
		want []Instant
	}{
		{
			name: "far future gets advance and due reminders",
			due:  date.New(2026, time.March, 10),
			time: clockPtr(9, 0),
			now:  at(2026, time.March, 1, 12, 0),
			want: []Instant{
				{At: at(2026, time.March, 7, 9, 0), Kind: KindAdvance},
				{At: at(2026, time.March, 10, 9, 0), Kind: KindDueInstant},
			},
		},
		{
			name: "due tomorrow gets only the due reminder",
			due:  date.New(2026, time.March, 10),
			time: clockPtr(9, 0),
			now:  at(2026, time.March, 9, 8, 0),
			want: []Instant{
				{At: at(2026, time.March, 10, 9, 0), Kind: KindDueInstant},
			},
		},
		{
			name: "due later today gets same-day and due reminders",
			due:  date.New(2026, time.March, 10),
			time: clockPtr(9, 0),
			now:  at(2026, time.March, 10, 4, 0),
			want: []Instant{
				{At: at(2026, time.March, 10, 6, 0), Kind: KindSameDay},
				{At: at(2026, time.March, 10, 9, 0), Kind: KindDueInstant},
			},
		},
		{
			name: "same-day instant already passed leaves only the due reminder",
			due:  date.New(2026, time.March, 10),
			time: clockPtr(9, 0),
			now:  at(2026, time.March, 10, 7, 0),
			want: []Instant{
				{At: at(2026, time.March, 10, 9, 0), Kind: KindDueInstant},
			},
		},
		{
			name: "advance instant already passed leaves only the due reminder",
			due:  date.New(2026, time.March, 10),
			time: clockPtr(9, 0),
			now:  at(2026, time.March, 8, 0, 0),
			want: []Instant{
				{At: at(2026, time.March, 10, 9, 0), Kind: KindDueInstant},
			},
		},
		{
			name: "due instant in the past yields nothing",
			due:  date.New(2026, time.March, 10),
			time: clockPtr(9, 0),
			now:  at(2026, time.March, 10, 10, 0),
			want: []Instant{},
		},
		{
			name: "due instant exactly now yields nothing",
			due:  date.New(2026, time.March, 10),
			time: clockPtr(9, 0),
			now:  at(2026, time.March, 10, 9, 0),
			want: []Instant{},
		},
		{
			name: "five days out at 15:00 seen from 08:00",
			due:  date.New(2026, time.March, 6),
			time: clockPtr(15, 0),
			now:  at(2026, time.March, 1, 8, 0),
			want: []Instant{
				{At: at(2026, time.March, 3, 15, 0), Kind: KindAdvance},
				{At: at(2026, time.March, 6, 15, 0), Kind: KindDueInstant},
			},
		},
		{
			name: "due today at 20:00 seen from 10:00",
			due:  date.New(2026, time.March, 1),
			time: clockPtr(20, 0),
			now:  at(2026, time.March, 1, 10, 0),
			want: []Instant{
				{At: at(2026, time.March, 1, 17, 0), Kind: KindSameDay},
				{At: at(2026, time.March, 1, 20, 0), Kind: KindDueInstant},
			},
		},
		{
			name: "untimed task due earlier today yields nothing",
			due:  date.New(2026, time.March, 10),
			time: nil,
			now:  at(2026, time.March, 10, 10, 0),
			want: []Instant{},
		},
		{
			name: "untimed task falls back to the policy default time",
			due:  date.New(2026, time.March, 10),
			time: nil,
			now:  at(2026, time.March, 1, 12, 0),
			want: []Instant{
				{At: at(2026, time.March, 7, 9, 0), Kind: KindAdvance},
				{At: at(2026, time.March, 10, 9, 0), Kind: KindDueInstant},
			},
		},
		{
			name: "barely more than a day away still counts as tomorrow",
			due:  date.New(2026, time.March, 10),
			time: clockPtr(9, 0),
			now:  at(2026, time.March, 8, 10, 0),
			want: []Instant{
				{At: at(2026, time.March, 10, 9, 0), Kind: KindDueInstant},
			},
		},
		{
			name: "same-day reminder may cross midnight backwards",
			due:  date.New(2026, time.March, 12),
			time: clockPtr(1, 0),
			now:  at(2026, time.March, 11, 21, 0),
			want: []Instant{
				{At: at(2026, time.March, 11, 22, 0), Kind: KindSameDay},
				{At: at(2026, time.March, 12, 1, 0), Kind: KindDueInstant},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.due, tt.time, tt.now, testPolicy())
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Compute() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComputeExactlyTwoDaysHasAdvanceInPast(t *testing.T) {
	// 48h away: daysUntil is 2, so the advance rule applies, but the advance
	// instant (due minus 3 days) is already past and must be dropped.
	got := Compute(date.New(2026, time.March, 10), clockPtr(9, 0), at(2026, time.March, 8, 9, 0), testPolicy())
	require.Len(t, got, 1)
	require.Equal(t, KindDueInstant, got[0].Kind)
}

func TestComputeInstantsAreStrictlyFutureAndAscending(t *testing.T) {
	due := date.New(2026, time.June, 15)
	clk := clockPtr(14, 30)

	nows := []time.Time{
		at(2026, time.June, 1, 0, 0),
		at(2026, time.June, 12, 14, 29),
		at(2026, time.June, 14, 14, 30),
		at(2026, time.June, 15, 0, 0),
		at(2026, time.June, 15, 11, 29),
		at(2026, time.June, 15, 11, 31),
		at(2026, time.June, 15, 14, 30),
		at(2026, time.June, 16, 0, 0),
	}

	for _, now := range nows {
		got := Compute(due, clk, now, testPolicy())
		for i, in := range got {
			require.True(t, in.At.After(now),
				"now=%v instant %d (%v) not strictly in the future", now, i, in.At)
			if i > 0 {
				require.True(t, got[i-1].At.Before(in.At),
					"now=%v instants out of order: %v then %v", now, got[i-1].At, in.At)
			}
		}
	}
}

func TestComputeIsPure(t *testing.T) {
	due := date.New(2026, time.March, 10)
	now := at(2026, time.March, 1, 12, 0)

	first := Compute(due, clockPtr(9, 0), now, testPolicy())
	second := Compute(due, clockPtr(9, 0), now, testPolicy())
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated Compute() calls differ (-first +second):\n%s", diff)
	}
}

func TestComputeRespectsPolicyOverrides(t *testing.T) {
	p := Policy{AdvanceDays: 7, SameDayHours: 1, DefaultClock: date.NewClock(8, 0)}

	got := Compute(date.New(2026, time.March, 20), clockPtr(9, 0), at(2026, time.March, 1, 0, 0), p)
	require.Len(t, got, 2)
	require.Equal(t, at(2026, time.March, 13, 9, 0), got[0].At)

	got = Compute(date.New(2026, time.March, 1), clockPtr(9, 0), at(2026, time.March, 1, 7, 0), p)
	require.Len(t, got, 2)
	require.Equal(t, at(2026, time.March, 1, 8, 0), got[0].At)
	require.Equal(t, KindSameDay, got[0].Kind)
}

func TestKindString(t *testing.T) {
	require.Equal(t, "advance", KindAdvance.String())
	require.Equal(t, "same-day", KindSameDay.String())
	require.Equal(t, "due", KindDueInstant.String())
}
