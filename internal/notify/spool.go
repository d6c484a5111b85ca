package notify

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/simtask/simtask/internal/date"
)

const alertFileMode = 0o600

// Alert is the on-disk representation of a registered alert. The spool
// owns alert lifetime: files are created by Register, removed either by
// the notifier daemon when they fire or by Revoke.
type Alert struct {
	ID     string    `yaml:"id"`
	FireAt time.Time `yaml:"fire_at"`
	Title  string    `yaml:"title"`
	Body   string    `yaml:"body"`
	Speech string    `yaml:"speech,omitempty"`
	Task   Payload   `yaml:"task"`
}

// Spool is a file-backed Delivery: one YAML file per registered alert in a
// spool directory. CLI invocations and the notifier daemon coordinate
// through this directory.
type Spool struct {
	dir string
}

// NewSpool creates a Spool rooted at the given alerts directory.
func NewSpool(dir string) *Spool {
	return &Spool{dir: dir}
}

// Dir returns the spool directory path.
func (s *Spool) Dir() string {
	return s.dir
}

// Register schedules a one-shot alert at the given instant.
func (s *Spool) Register(at time.Time, title, body, speech string, p Payload) (Handle, error) {
	a := Alert{
		ID:     newAlertID(),
		FireAt: at,
		Title:  title,
		Body:   body,
		Speech: speech,
		Task:   p,
	}

	data, err := yaml.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("marshaling alert: %w", err)
	}
	if err := os.WriteFile(s.pathFor(a.ID), data, alertFileMode); err != nil {
		return "", fmt.Errorf("writing alert: %w", err)
	}
	return Handle(a.ID), nil
}

// List enumerates all currently registered alerts. Malformed spool files
// are skipped.
func (s *Spool) List() ([]Registered, error) {
	alerts, _, err := s.Pending()
	if err != nil {
		return nil, err
	}

	regs := make([]Registered, 0, len(alerts))
	for _, a := range alerts {
		regs = append(regs, Registered{Handle: Handle(a.ID), FireAt: a.FireAt, Payload: a.Task})
	}
	return regs, nil
}

// Revoke removes a registered alert. Revoking an unknown handle is a no-op.
func (s *Spool) Revoke(h Handle) error {
	err := os.Remove(s.pathFor(string(h)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("revoking alert %s: %w", h, err)
	}
	return nil
}

// ReadWarning describes a spool file that could not be parsed.
type ReadWarning struct {
	File string
	Err  error
}

// Pending reads every alert file in the spool, skipping malformed files
// with warnings. Used by the notifier daemon, which needs the full alert,
// not just handle and payload.
func (s *Spool) Pending() ([]*Alert, []ReadWarning, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("reading alerts directory: %w", err)
	}

	var alerts []*Alert
	var warnings []ReadWarning
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yml" {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		data, readErr := os.ReadFile(path) //nolint:gosec // spool path from trusted source
		if readErr != nil {
			warnings = append(warnings, ReadWarning{File: entry.Name(), Err: readErr})
			continue
		}

		var a Alert
		if err := yaml.Unmarshal(data, &a); err != nil {
			warnings = append(warnings, ReadWarning{File: entry.Name(), Err: err})
			continue
		}
		alerts = append(alerts, &a)
	}

	return alerts, warnings, nil
}

func (s *Spool) pathFor(id string) string {
	return filepath.Join(s.dir, id+".yml")
}

// newAlertID generates an opaque alert identifier.
func newAlertID() string {
	suffix := make([]byte, 4)
	_, _ = rand.Read(suffix)
	return fmt.Sprintf("alrt_%d_%s", time.Now().UnixMilli(), hex.EncodeToString(suffix))
}

// FireDate returns the calendar date an alert fires on. Kept here so both
// the scheduler's framing choice and the TUI badge logic share it.
func FireDate(at time.Time) date.Date {
	return date.FromTime(at)
}
