package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout is the calendar day form used for dates in profiles and API payloads
const DateLayout = "2006-01-02"

// Date is a calendar day. It reads either YYYY-MM-DD or an RFC3339 timestamp
// from JSON and YAML and always writes YYYY-MM-DD. The time of day is dropped.
type Date struct {
	time.Time
}

// NewDate returns the day t falls on
func NewDate(t time.Time) *Date {
	d := dayOf(t)
	return &d
}

// ParseDate accepts YYYY-MM-DD or RFC3339
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return dayOf(t), nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Date{}, fmt.Errorf("date %q must be YYYY-MM-DD or RFC3339", s)
	}
	return dayOf(t), nil
}

func dayOf(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// String renders the day as YYYY-MM-DD
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON writes the day as a YYYY-MM-DD string
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts YYYY-MM-DD or RFC3339 strings
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML writes the day as a YYYY-MM-DD string
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML accepts YYYY-MM-DD or RFC3339 scalars
func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseDate(value.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
