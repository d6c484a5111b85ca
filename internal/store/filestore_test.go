package store

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/simtask/simtask/internal/clierr"
	"github.com/simtask/simtask/internal/date"
	"github.com/simtask/simtask/internal/task"
)

func clockPtr(hour, minute int) *date.Clock {
	c := date.NewClock(hour, minute)
	return &c
}

func sampleFields() Fields {
	return Fields{
		Title:       "Renew passport",
		Date:        date.New(2026, time.March, 10),
		Time:        clockPtr(14, 30),
		Priority:    "high",
		Category:    "errands",
		Description: "Bring two photos.\n",
	}
}

func TestCreateAssignsIdentityAndTimestamps(t *testing.T) {
	st := NewFileStore(t.TempDir())

	before := time.Now()
	created, err := st.Create(sampleFields())
	require.NoError(t, err)

	require.NotEmpty(t, created.ID)
	require.Equal(t, task.SyncPending, created.SyncStatus)
	require.False(t, created.Created.Before(before.Truncate(time.Second)))
	require.Equal(t, created.Created, created.Updated)
	require.False(t, created.ReminderScheduled)

	got, err := st.Get(created.ID)
	require.NoError(t, err)
	require.Equal(t, "Renew passport", got.Title)
	require.Equal(t, "2026-03-10", got.Date.String())
	require.Equal(t, "14:30", got.Time.String())
	require.Equal(t, "Bring two photos.\n", got.Description)
}

func TestGetUnknownID(t *testing.T) {
	st := NewFileStore(t.TempDir())

	_, err := st.Get("task_missing")
	var cliErr *clierr.Error
	require.True(t, errors.As(err, &cliErr))
	require.Equal(t, clierr.TaskNotFound, cliErr.Code)
}

func TestUpdatePreservesIdentity(t *testing.T) {
	st := NewFileStore(t.TempDir())
	created, err := st.Create(sampleFields())
	require.NoError(t, err)

	got, err := st.Update(created.ID, func(u *task.Task) {
		u.Title = "Renew passport (urgent)"
		u.ID = "task_hijacked" // must not stick
		u.ReminderScheduled = true
	})
	require.NoError(t, err)

	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "Renew passport (urgent)", got.Title)
	require.True(t, got.ReminderScheduled)
	require.Equal(t, created.Created, got.Created)
	require.False(t, got.Updated.Before(created.Updated))

	back, err := st.Get(created.ID)
	require.NoError(t, err)
	require.Equal(t, "Renew passport (urgent)", back.Title)
}

func TestDelete(t *testing.T) {
	st := NewFileStore(t.TempDir())
	created, err := st.Create(sampleFields())
	require.NoError(t, err)

	require.NoError(t, st.Delete(created.ID))

	_, err = st.Get(created.ID)
	require.Error(t, err)

	err = st.Delete(created.ID)
	var cliErr *clierr.Error
	require.True(t, errors.As(err, &cliErr))
	require.Equal(t, clierr.TaskNotFound, cliErr.Code)
}

func TestByDateFiltersAndSorts(t *testing.T) {
	st := NewFileStore(t.TempDir())
	day := date.New(2026, time.March, 10)

	mk := func(title string, d date.Date, clk *date.Clock) {
		t.Helper()
		_, err := st.Create(Fields{Title: title, Date: d, Time: clk})
		require.NoError(t, err)
	}

	mk("afternoon", day, clockPtr(15, 0))
	mk("untimed", day, nil)
	mk("morning", day, clockPtr(8, 0))
	mk("other day", date.New(2026, time.March, 11), clockPtr(8, 0))

	got, err := st.ByDate(day)
	require.NoError(t, err)
	require.Len(t, got, 3)

	titles := []string{got[0].Title, got[1].Title, got[2].Title}
	require.Equal(t, []string{"untimed", "morning", "afternoon"}, titles)
}

func TestAllSortsAcrossDates(t *testing.T) {
	st := NewFileStore(t.TempDir())

	_, err := st.Create(Fields{Title: "later", Date: date.New(2026, time.March, 12)})
	require.NoError(t, err)
	_, err = st.Create(Fields{Title: "sooner", Date: date.New(2026, time.March, 10)})
	require.NoError(t, err)

	got, warnings, err := st.All()
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Len(t, got, 2)
	require.Equal(t, "sooner", got[0].Title)
	require.Equal(t, "later", got[1].Title)
}

func TestSortByDueTimeTieBreaksOnCreated(t *testing.T) {
	day := date.New(2026, time.March, 10)
	older := &task.Task{Title: "older", Date: day, Created: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := &task.Task{Title: "newer", Date: day, Created: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)}

	tasks := []*task.Task{newer, older}
	SortByDueTime(tasks)
	require.Equal(t, "older", tasks[0].Title)
	require.Equal(t, "newer", tasks[1].Title)
}
