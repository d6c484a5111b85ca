package reminder

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/simtask/simtask/internal/date"
	"github.com/simtask/simtask/internal/notify"
	"github.com/simtask/simtask/internal/task"
)

// fakeDelivery is an in-memory notify.Delivery for scheduler tests.
type fakeDelivery struct {
	alerts map[notify.Handle]notify.Registered
	seq    int

	registerErr error // returned by Register for every call when set
	failFirst   bool  // fail only the first Register call
	revokeErr   map[notify.Handle]error
	listErr     error

	speeches map[notify.Handle]string
	titles   map[notify.Handle]string
}

func newFakeDelivery() *fakeDelivery {
	return &fakeDelivery{
		alerts:    make(map[notify.Handle]notify.Registered),
		revokeErr: make(map[notify.Handle]error),
		speeches:  make(map[notify.Handle]string),
		titles:    make(map[notify.Handle]string),
	}
}

func (f *fakeDelivery) Register(at time.Time, title, _, speech string, p notify.Payload) (notify.Handle, error) {
	if f.registerErr != nil {
		return "", f.registerErr
	}
	if f.failFirst {
		f.failFirst = false
		return "", errors.New("platform limit reached")
	}
	f.seq++
	h := notify.Handle(fmt.Sprintf("h%d", f.seq))
	f.alerts[h] = notify.Registered{Handle: h, FireAt: at, Payload: p}
	f.speeches[h] = speech
	f.titles[h] = title
	return h, nil
}

func (f *fakeDelivery) List() ([]notify.Registered, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	regs := make([]notify.Registered, 0, len(f.alerts))
	for _, reg := range f.alerts {
		regs = append(regs, reg)
	}
	return regs, nil
}

func (f *fakeDelivery) Revoke(h notify.Handle) error {
	if err := f.revokeErr[h]; err != nil {
		return err
	}
	delete(f.alerts, h)
	return nil
}

func newTestScheduler(d notify.Delivery, now time.Time) *Scheduler {
	s := NewScheduler(d, testPolicy())
	s.SetClock(func() time.Time { return now })
	s.SetWarnf(func(string, ...any) {})
	return s
}

func testTask() *task.Task {
	clk := date.NewClock(9, 0)
	return &task.Task{
		ID:    "task_1709000000000_ab12cd34",
		Title: "Dentist",
		Date:  date.New(2026, time.March, 10),
		Time:  &clk,
	}
}

func TestScheduleRegistersOneAlertPerInstant(t *testing.T) {
	d := newFakeDelivery()
	s := newTestScheduler(d, at(2026, time.March, 1, 12, 0))

	handles := s.Schedule(testTask(), false)

	require.Len(t, handles, 2)
	require.Len(t, d.alerts, 2)
	for _, h := range handles {
		reg := d.alerts[h]
		require.Equal(t, "task_1709000000000_ab12cd34", reg.Payload.TaskID)
		require.Equal(t, "Dentist", reg.Payload.Title)
		require.Equal(t, "2026-03-10", reg.Payload.Date.String())
		require.NotNil(t, reg.Payload.Time)
		require.Equal(t, "09:00", reg.Payload.Time.String())
		require.Empty(t, d.speeches[h])
	}
}

func TestScheduleFramesDueInstantDifferently(t *testing.T) {
	d := newFakeDelivery()
	s := newTestScheduler(d, at(2026, time.March, 1, 12, 0))

	handles := s.Schedule(testTask(), false)
	require.Len(t, handles, 2)

	// Handles come back in instant order: advance first, due instant last.
	require.Equal(t, "Upcoming Task", d.titles[handles[0]])
	require.Equal(t, "Task Due Today!", d.titles[handles[1]])
}

func TestScheduleVoiceEnabledAttachesSpeech(t *testing.T) {
	d := newFakeDelivery()
	s := newTestScheduler(d, at(2026, time.March, 1, 12, 0))

	handles := s.Schedule(testTask(), true)

	require.NotEmpty(t, handles)
	for _, h := range handles {
		require.Equal(t, "Dentist scheduled for March 10, 2026 at 9:00 AM", d.speeches[h])
	}
}

func TestSchedulePastDueRegistersNothing(t *testing.T) {
	d := newFakeDelivery()
	s := newTestScheduler(d, at(2026, time.March, 11, 0, 0))

	handles := s.Schedule(testTask(), false)

	require.Empty(t, handles)
	require.Empty(t, d.alerts)
}

func TestSchedulePartialFailureKeepsRemaining(t *testing.T) {
	d := newFakeDelivery()
	d.failFirst = true

	var warned []string
	s := newTestScheduler(d, at(2026, time.March, 1, 12, 0))
	s.SetWarnf(func(format string, args ...any) {
		warned = append(warned, fmt.Sprintf(format, args...))
	})

	handles := s.Schedule(testTask(), false)

	require.Len(t, handles, 1, "second registration should survive the first failing")
	require.Len(t, warned, 1)
	require.Contains(t, warned[0], "advance")
	require.Contains(t, warned[0], "task_1709000000000_ab12cd34")
}

func TestScheduleTotalFailureReturnsNoHandles(t *testing.T) {
	d := newFakeDelivery()
	d.registerErr = errors.New("denied")

	s := newTestScheduler(d, at(2026, time.March, 1, 12, 0))
	handles := s.Schedule(testTask(), false)

	require.Empty(t, handles)
}

func TestCancelRevokesOnlyMatchingTask(t *testing.T) {
	d := newFakeDelivery()
	s := newTestScheduler(d, at(2026, time.March, 1, 12, 0))

	mine := testTask()
	other := testTask()
	other.ID = "task_1709000000001_ff00ff00"
	other.Title = "Groceries"

	s.Schedule(mine, false)
	otherHandles := s.Schedule(other, false)

	require.NoError(t, s.Cancel(mine.ID))

	require.Len(t, d.alerts, len(otherHandles))
	for _, reg := range d.alerts {
		require.Equal(t, other.ID, reg.Payload.TaskID)
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	d := newFakeDelivery()
	s := newTestScheduler(d, at(2026, time.March, 1, 12, 0))

	s.Schedule(testTask(), false)

	require.NoError(t, s.Cancel(testTask().ID))
	require.NoError(t, s.Cancel(testTask().ID))
	require.NoError(t, s.Cancel("task_never_existed"))
	require.Empty(t, d.alerts)
}

func TestCancelListFailure(t *testing.T) {
	d := newFakeDelivery()
	d.listErr = errors.New("spool unreadable")

	s := newTestScheduler(d, at(2026, time.March, 1, 12, 0))
	err := s.Cancel("task_x")

	require.Error(t, err)
	require.ErrorContains(t, err, "listing registered alerts")
}

func TestCancelRevokeFailureContinues(t *testing.T) {
	d := newFakeDelivery()
	s := newTestScheduler(d, at(2026, time.March, 1, 12, 0))

	handles := s.Schedule(testTask(), false)
	require.Len(t, handles, 2)
	d.revokeErr[handles[0]] = errors.New("gone stale")

	var warned int
	s.SetWarnf(func(string, ...any) { warned++ })

	require.NoError(t, s.Cancel(testTask().ID))
	require.Equal(t, 1, warned)
	require.Len(t, d.alerts, 1, "failed revoke leaves its alert, the other is removed")
}

func TestCancelThenRescheduleYieldsFreshHandles(t *testing.T) {
	d := newFakeDelivery()
	s := newTestScheduler(d, at(2026, time.March, 1, 12, 0))

	first := s.Schedule(testTask(), false)
	require.NoError(t, s.Cancel(testTask().ID))
	second := s.Schedule(testTask(), false)

	require.Len(t, second, 2)
	for _, h := range second {
		require.NotContains(t, first, h)
	}
}
