package reminder

import (
	"math"
	"time"

	"github.com/simtask/simtask/internal/date"
)

// Kind classifies which policy rule produced a reminder instant. It selects
// the rendered message template and is never persisted.
type Kind int

const (
	// KindAdvance fires a fixed number of days before the due instant.
	KindAdvance Kind = iota
	// KindSameDay fires a fixed number of hours before a due instant that
	// falls on the current calendar day.
	KindSameDay
	// KindDueInstant fires at the due instant itself.
	KindDueInstant
)

// String returns the kind as a short lowercase label.
func (k Kind) String() string {
	switch k {
	case KindAdvance:
		return "advance"
	case KindSameDay:
		return "same-day"
	case KindDueInstant:
		return "due"
	default:
		return "unknown"
	}
}

// Instant is a single computed reminder fire time.
type Instant struct {
	At   time.Time
	Kind Kind
}

// Compute returns the future reminder instants for a task due on the given
// date (at the given time of day, or the policy default when nil), relative
// to now. The result is ascending by instant and contains only instants
// strictly after now; a due instant at or before now yields an empty slice.
//
// Rules:
//   - more than one day until due: advance reminder at due minus
//     AdvanceDays calendar days, plus the due-instant reminder;
//   - due on the current calendar day: same-day reminder at due minus
//     SameDayHours, plus the due-instant reminder;
//   - due exactly tomorrow: only the due-instant reminder. The advance and
//     same-day rules are mutually exclusive by construction.
//
// Compute is pure: identical inputs yield identical output.
func Compute(due date.Date, at *date.Clock, now time.Time, p Policy) []Instant {
	clk := p.DefaultClock
	if at != nil {
		clk = *at
	}
	dueAt := due.At(clk, now.Location())

	// Day-truncated distance to the due instant. A due time later today is
	// 0 days away even though the calendar dates match; floor (not
	// truncation) keeps past due instants negative.
	daysUntil := int(math.Floor(dueAt.Sub(now).Hours() / 24))

	instants := make([]Instant, 0, 2)

	if daysUntil > 1 {
		advanceAt := dueAt.AddDate(0, 0, -p.AdvanceDays)
		if advanceAt.After(now) {
			instants = append(instants, Instant{At: advanceAt, Kind: KindAdvance})
		}
	}

	if daysUntil == 0 {
		sameDayAt := dueAt.Add(-time.Duration(p.SameDayHours) * time.Hour)
		if sameDayAt.After(now) {
			instants = append(instants, Instant{At: sameDayAt, Kind: KindSameDay})
		}
	}

	if dueAt.After(now) {
		instants = append(instants, Instant{At: dueAt, Kind: KindDueInstant})
	}

	return instants
}
