package reminder

import (
	"fmt"

	"github.com/simtask/simtask/internal/date"
	"github.com/simtask/simtask/internal/task"
)

// Notification framing per reminder kind.
const (
	titleDueToday = "Task Due Today!"
	titleUpcoming = "Upcoming Task"
)

// NotificationTitle returns the alert title for a reminder kind. The
// due-instant reminder gets the "due today" framing; advance and same-day
// reminders are framed as upcoming.
func NotificationTitle(k Kind) string {
	if k == KindDueInstant {
		return titleDueToday
	}
	return titleUpcoming
}

// NotificationBody renders the alert body: the task title plus its
// scheduled date and, when present, time.
func NotificationBody(t *task.Task) string {
	return fmt.Sprintf("%s\nScheduled: %s", t.Title, FormatDateTime(t.Date, t.Time))
}

// FormatDateTime renders a date and optional time for display,
// e.g. "Mar 4, 2026 at 3:30 PM".
func FormatDateTime(d date.Date, c *date.Clock) string {
	s := d.Format("Jan 2, 2006")
	if c != nil {
		s += " at " + c.Display()
	}
	return s
}

// SpeechPhrase renders the natural-language reminder read aloud when the
// alert fires, e.g. "Dentist scheduled for March 4, 2026 at 3:30 PM".
func SpeechPhrase(t *task.Task) string {
	phrase := fmt.Sprintf("%s scheduled for %s", t.Title, t.Date.Format("January 2, 2006"))
	if t.Time != nil {
		phrase += " at " + t.Time.Display()
	}
	return phrase
}
