package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar day transferred as "yyyy-MM-dd". The backend uses
// bare dates for budget ranges and list filters, full RFC 3339
// timestamps everywhere else.
type Date struct {
	time.Time
}

// NewDate builds a Date from a point in time, truncating to the day.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "yyyy-MM-dd" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return Date{t}, nil
}

// String returns the wire representation.
func (d Date) String() string { return d.Format(DateLayout) }

// MarshalJSON encodes the date as a quoted "yyyy-MM-dd" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON accepts "yyyy-MM-dd" and, for tolerance with older
// backend revisions, a full RFC 3339 timestamp.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		*d = Date{t}
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", s, err)
	}
	*d = NewDate(t)
	return nil
}
