package models

import (
	"fmt"
	"strings"
	"time"
)

// Wire formats used by the booking backend. Dates travel as YYYY-MM-DD,
// station times as HH:MM:SS, and full timestamps as an ISO datetime
// without a zone offset (interpreted as local backend time).
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02T15:04:05"
)

// Date is a calendar date serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// DateTime is a timestamp serialized as YYYY-MM-DDTHH:MM:SS. RFC3339
// values are accepted on decode since some backend responses carry a
// zone offset.
type DateTime struct {
	time.Time
}

func (dt DateTime) String() string {
	return dt.Format(DateTimeLayout)
}

func (dt DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + dt.Format(DateTimeLayout) + `"`), nil
}

func (dt *DateTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		dt.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{DateTimeLayout, time.RFC3339, DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			dt.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid datetime %q", s)
}
