package utils

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// TimestampLayout is how action timestamps are rendered in exports.
const TimestampLayout = "2006-01-02 15:04:05"

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	DateLayout,
}

//
// ===========================================================
//  DATES (calendar days are UTC midnight)
// ===========================================================
//

// ParseDate accepts YYYY-MM-DD or any full timestamp and returns its calendar day.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t, nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return DayOf(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

// DayOf drops the clock part, keeping t's own calendar date.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a calendar day, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

//
// ===========================================================
//  WALL-CLOCK TIMESTAMPS (hotel local time stored without zone)
// ===========================================================
//

// ParseDateTime reads a timestamp sent by the front desk. Values without an offset are
// taken as wall-clock time in loc. The result is the wall clock in loc, tagged UTC.
func ParseDateTime(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty datetime")
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range dateTimeLayouts {
		hasZone := layout == time.RFC3339 || layout == time.RFC3339Nano
		var (
			t   time.Time
			err error
		)
		if hasZone {
			t, err = time.Parse(layout, raw)
		} else {
			t, err = time.ParseInLocation(layout, raw, loc)
		}
		if err == nil {
			return WallClock(t.In(loc)), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q", raw)
}

// WallClock keeps the clock reading of t and relabels it as UTC, so drivers store the
// reading unchanged.
func WallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
