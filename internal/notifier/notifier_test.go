package notifier

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/simtask/simtask/internal/date"
	"github.com/simtask/simtask/internal/notify"
	"github.com/simtask/simtask/internal/speech"
)

// recordingPoster captures posted notifications.
type recordingPoster struct {
	mu     sync.Mutex
	posted []string
}

func (p *recordingPoster) Post(title, body string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.posted = append(p.posted, title+"|"+body)
	return nil
}

func (p *recordingPoster) titles() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.posted...)
}

// recordingSpeaker captures spoken phrases.
type recordingSpeaker struct {
	mu     sync.Mutex
	spoken []string
}

func (s *recordingSpeaker) Speak(message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spoken = append(s.spoken, message)
	return nil
}

func (s *recordingSpeaker) phrases() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.spoken...)
}

func payload(taskID string) notify.Payload {
	return notify.Payload{TaskID: taskID, Title: "Dentist", Date: date.New(2026, time.March, 10)}
}

func TestRunFiresDueAlertsAndKeepsFutureOnes(t *testing.T) {
	spool := notify.NewSpool(t.TempDir())
	now := time.Now()

	_, err := spool.Register(now.Add(-time.Minute), "Task Due Today!", "Dentist", "Dentist scheduled for March 10, 2026", payload("task_due"))
	require.NoError(t, err)
	futureHandle, err := spool.Register(now.Add(time.Hour), "Upcoming Task", "Dentist", "", payload("task_future"))
	require.NoError(t, err)

	poster := &recordingPoster{}
	speaker := &recordingSpeaker{}
	n := New(spool, speaker)
	n.SetPoster(poster)
	n.SetOutput(io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- n.Run(ctx) }()

	require.Eventually(t, func() bool {
		return len(poster.titles()) == 1
	}, 5*time.Second, 10*time.Millisecond, "due alert should fire on startup")

	require.Equal(t, []string{"Task Due Today!|Dentist"}, poster.titles())
	require.Equal(t, []string{"Dentist scheduled for March 10, 2026"}, speaker.phrases())

	// The fired alert is removed from the spool, the future one stays.
	require.Eventually(t, func() bool {
		regs, listErr := spool.List()
		return listErr == nil && len(regs) == 1
	}, 5*time.Second, 10*time.Millisecond)
	regs, err := spool.List()
	require.NoError(t, err)
	require.Equal(t, futureHandle, regs[0].Handle)

	cancel()
	require.NoError(t, <-done)
}

func TestRunPicksUpNewlyRegisteredAlerts(t *testing.T) {
	spool := notify.NewSpool(t.TempDir())

	poster := &recordingPoster{}
	n := New(spool, speech.Nop{})
	n.SetPoster(poster)
	n.SetOutput(io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- n.Run(ctx) }()

	// Give the watcher a moment to arm, then drop a due alert into the spool
	// the way a concurrent CLI invocation would.
	time.Sleep(200 * time.Millisecond)
	_, err := spool.Register(time.Now().Add(-time.Second), "Task Due Today!", "Water plants", "", payload("task_live"))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(poster.titles()) == 1
	}, 5*time.Second, 10*time.Millisecond, "alert registered while running should fire")

	cancel()
	require.NoError(t, <-done)
}

func TestFireSkipsSpeechWhenEmpty(t *testing.T) {
	spool := notify.NewSpool(t.TempDir())
	speaker := &recordingSpeaker{}

	n := New(spool, speaker)
	n.SetPoster(&recordingPoster{})
	n.SetOutput(io.Discard)

	n.fire(&notify.Alert{ID: "alrt_1_a", Title: "Upcoming Task", Body: "b", Task: payload("task_x")})
	require.Empty(t, speaker.phrases())

	n.fire(&notify.Alert{ID: "alrt_2_b", Title: "Upcoming Task", Body: "b", Speech: "say it", Task: payload("task_x")})
	require.Equal(t, []string{"say it"}, speaker.phrases())
}
