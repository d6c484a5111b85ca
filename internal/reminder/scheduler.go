package reminder

import (
	"fmt"
	"os"
	"time"

	"github.com/simtask/simtask/internal/notify"
	"github.com/simtask/simtask/internal/task"
)

// Scheduler registers and revokes task reminder alerts against a delivery
// collaborator. It is invoked sequentially from user-triggered actions and
// is not safe for concurrent use.
type Scheduler struct {
	delivery notify.Delivery
	policy   Policy

	// now is the clock used for computing instants; defaults to time.Now.
	now func() time.Time
	// warnf receives per-alert failure messages; defaults to stderr.
	warnf func(format string, args ...any)
}

// NewScheduler creates a Scheduler over the given delivery collaborator.
func NewScheduler(delivery notify.Delivery, policy Policy) *Scheduler {
	return &Scheduler{
		delivery: delivery,
		policy:   policy,
		now:      time.Now,
		warnf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		},
	}
}

// SetClock overrides the scheduler's clock. Used by tests.
func (s *Scheduler) SetClock(now func() time.Time) {
	s.now = now
}

// SetWarnf overrides the per-alert failure logger.
func (s *Scheduler) SetWarnf(warnf func(format string, args ...any)) {
	s.warnf = warnf
}

// Schedule computes the task's future reminder instants and registers one
// alert per instant. Registration failures are logged and skipped so one
// failed instant does not abort the rest; the returned handles cover the
// registrations that succeeded (possibly none). When voiceEnabled is true
// each alert carries a speech phrase for the notifier to read on fire.
func (s *Scheduler) Schedule(t *task.Task, voiceEnabled bool) []notify.Handle {
	instants := Compute(t.Date, t.Time, s.now(), s.policy)

	payload := notify.Payload{
		TaskID: t.ID,
		Title:  t.Title,
		Date:   t.Date,
		Time:   t.Time,
	}

	speech := ""
	if voiceEnabled {
		speech = SpeechPhrase(t)
	}

	var handles []notify.Handle
	for _, in := range instants {
		h, err := s.delivery.Register(in.At, NotificationTitle(in.Kind), NotificationBody(t), speech, payload)
		if err != nil {
			s.warnf("Warning: registering %s reminder for task %s: %v", in.Kind, t.ID, err)
			continue
		}
		handles = append(handles, h)
	}

	return handles
}

// Cancel revokes every registered alert belonging to the given task.
// Cancellation is best-effort and idempotent: revoke failures are logged
// and skipped, and a task with no registered alerts is a no-op. The only
// returned error is a failure to enumerate registered alerts at all.
func (s *Scheduler) Cancel(taskID string) error {
	regs, err := s.delivery.List()
	if err != nil {
		return fmt.Errorf("listing registered alerts: %w", err)
	}

	for _, reg := range regs {
		if reg.Payload.TaskID != taskID {
			continue
		}
		if err := s.delivery.Revoke(reg.Handle); err != nil {
			s.warnf("Warning: revoking alert %s for task %s: %v", reg.Handle, taskID, err)
		}
	}

	return nil
}
