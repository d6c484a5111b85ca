// Package notify defines the alert delivery collaborator: registering
// one-shot alerts for future instants, enumerating what is registered,
// and revoking alerts by handle.
package notify

import (
	"time"

	"github.com/simtask/simtask/internal/date"
)

// Handle identifies a registered alert for later revocation. Handles are
// transient: they are never persisted by callers, and cancellation after a
// restart falls back to scanning registered alerts by payload.
type Handle string

// Payload is the identifying data attached to a registered alert, read back
// when the alert fires or when enumerating for cancellation.
type Payload struct {
	TaskID string      `yaml:"task_id" json:"task_id"`
	Title  string      `yaml:"title" json:"title"`
	Date   date.Date   `yaml:"date" json:"date"`
	Time   *date.Clock `yaml:"time,omitempty" json:"time,omitempty"`
}

// Registered pairs a live alert's handle with its payload.
type Registered struct {
	Handle  Handle    `json:"handle"`
	FireAt  time.Time `json:"fire_at"`
	Payload Payload   `json:"task"`
}

// Delivery is the platform alerting collaborator. Register may fail per
// alert (permissions, platform limits); failure of one registration never
// implies failure of others.
type Delivery interface {
	// Register schedules a one-shot alert at the given instant. speech is
	// the phrase to read aloud on fire, empty when voice is disabled.
	Register(at time.Time, title, body, speech string, p Payload) (Handle, error)
	// List enumerates all currently registered alerts.
	List() ([]Registered, error)
	// Revoke removes a registered alert. Revoking an unknown handle is a no-op.
	Revoke(h Handle) error
}
