package utils

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used at the API boundary.
const DateLayout = "2006-01-02"

// NanosToTime converts integer nanoseconds since the Unix epoch to a UTC time.
func NanosToTime(ns int64) time.Time {
	return time.Unix(0, ns).UTC()
}

// TimeToNanos converts a time to integer nanoseconds since the Unix epoch.
func TimeToNanos(t time.Time) int64 {
	return t.UnixNano()
}

// DateToTime parses a YYYY-MM-DD date string as midnight UTC.
// Parsing in UTC keeps the date <-> timestamp round trip exact at day
// granularity regardless of the server's local timezone.
func DateToTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// TimeToDate formats a time as a YYYY-MM-DD date string in UTC.
func TimeToDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
