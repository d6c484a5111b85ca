package store

import (
	"fmt"
	"os"
	"time"

	"github.com/simtask/simtask/internal/date"
	"github.com/simtask/simtask/internal/task"
)

// FileStore persists tasks as markdown files with YAML frontmatter,
// one file per task, named by task ID.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at the given tasks directory.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Create persists a new task, assigning its identity and timestamps.
func (s *FileStore) Create(f Fields) (*task.Task, error) {
	now := time.Now()
	t := &task.Task{
		ID:          task.NewID(),
		Title:       f.Title,
		Date:        f.Date,
		Time:        f.Time,
		Priority:    f.Priority,
		Category:    f.Category,
		Description: f.Description,
		Created:     now,
		Updated:     now,
		SyncStatus:  task.SyncPending,
	}

	path := task.PathFor(s.dir, t.ID)
	t.File = path
	if err := task.Write(path, t); err != nil {
		return nil, fmt.Errorf("writing task: %w", err)
	}
	return t, nil
}

// Get returns the task with the given ID.
func (s *FileStore) Get(id string) (*task.Task, error) {
	path, err := task.FindByID(s.dir, id)
	if err != nil {
		return nil, err
	}
	return task.Read(path)
}

// Update applies mutate to the stored task and persists the result.
func (s *FileStore) Update(id string, mutate func(*task.Task)) (*task.Task, error) {
	t, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	mutate(t)
	t.ID = id // identity is immutable
	touch(t)

	if err := task.Write(task.PathFor(s.dir, id), t); err != nil {
		return nil, fmt.Errorf("writing task: %w", err)
	}
	return t, nil
}

// Delete removes the task record.
func (s *FileStore) Delete(id string) error {
	path, err := task.FindByID(s.dir, id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

// ByDate returns the tasks due on the given date, ordered by time of day.
func (s *FileStore) ByDate(d date.Date) ([]*task.Task, error) {
	all, err := task.ReadAll(s.dir)
	if err != nil {
		return nil, err
	}

	var tasks []*task.Task
	for _, t := range all {
		if t.Date.Equal(d.Time) {
			tasks = append(tasks, t)
		}
	}
	SortByDueTime(tasks)
	return tasks, nil
}

// All returns every readable task plus warnings for malformed files.
func (s *FileStore) All() ([]*task.Task, []task.ReadWarning, error) {
	tasks, warnings, err := task.ReadAllLenient(s.dir)
	if err != nil {
		return nil, nil, err
	}
	SortByDueTime(tasks)
	return tasks, warnings, nil
}
