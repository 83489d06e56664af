package records

import (
	"bytes"
	"encoding/json"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar day stored as UTC midnight so that day differences are exact.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate accepts YYYY-MM-DD or RFC3339.
func ParseDate(value string) (Date, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return DateOf(parsed), nil
	}
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return Date{}, err
	}
	return DateOf(parsed), nil
}

func (d Date) Time() time.Time { return d.t }

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

func (d Date) After(other Date) bool { return d.t.After(other.t) }

func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// DaysUntil returns other minus d in days.
func (d Date) DaysUntil(other Date) float64 {
	return other.t.Sub(d.t).Hours() / 24
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
