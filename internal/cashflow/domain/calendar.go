package cashflow

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// NormalizeDate reduces a raw date representation to a calendar date at
// midnight UTC. It accepts a plain date ("2024-01-05") or a date with a time
// portion separated by 'T' or a space; the time portion is discarded.
// Normalization is idempotent: feeding the formatted result back in yields
// the same date. Unparseable input returns ErrUnparseableDate instead of
// passing the raw value through.
func NormalizeDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("%w: empty string", ErrUnparseableDate)
	}

	datePart := trimmed
	if idx := strings.IndexAny(trimmed, "T "); idx >= 0 {
		datePart = trimmed[:idx]
	}

	parsed, err := time.Parse(dateLayout, datePart)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableDate, raw)
	}
	return parsed, nil
}

// DayStart truncates a timestamp to midnight UTC of its calendar date.
func DayStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey is the bucket key for a calendar day, in the storage-friendly
// yyyymmdd form.
func DayKey(t time.Time) string {
	return DayStart(t).Format("20060102")
}

// DaysInclusive counts calendar days from start to end, both included.
// Returns 0 when end precedes start.
func DaysInclusive(start, end time.Time) int {
	s := DayStart(start)
	e := DayStart(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}
