package date

import (
	"encoding/json"
	"fmt"
	"time"

	"go.yaml.in/yaml/v3"
)

const clockFormat = "15:04"

// Clock represents a time of day (hour and minute, 24-hour).
type Clock struct {
	Hour   int
	Minute int
}

// NewClock creates a Clock from hour and minute.
func NewClock(hour, minute int) Clock {
	return Clock{Hour: hour, Minute: minute}
}

// ParseClock parses an HH:MM string (24-hour) into a Clock.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(clockFormat, s)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid time %q: expected HH:MM (24-hour)", s)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// String returns the time as HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Display returns the time in 12-hour form, e.g. "3:04 PM".
func (c Clock) Display() string {
	period := "AM"
	if c.Hour >= 12 {
		period = "PM"
	}
	hour := c.Hour % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, c.Minute, period)
}

// MarshalYAML implements yaml.Marshaler.
func (c Clock) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// UnmarshalYAML implements yaml.v3 Unmarshaler.
func (c *Clock) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseClock(value.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Clock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
