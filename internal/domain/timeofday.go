package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time expressed as minutes since midnight,
// in venue-local time. Valid values are 0..1439.
type TimeOfDay int

const MinutesPerDay = 1440

// FormatError reports a time or date string that could not be parsed.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid time format: %q", e.Input)
}

// ParseTimeOfDay accepts "HH:MM", "HH:MM:SS" (seconds dropped) and
// timestamp strings like "2025-11-03T14:30:00Z" (date and seconds dropped).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	raw := s
	if i := strings.IndexAny(s, "T "); i >= 0 && strings.Contains(s[:i], "-") {
		s = s[i+1:]
	}
	if len(s) > 5 {
		s = s[:5]
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, &FormatError{Input: raw}
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, &FormatError{Input: raw}
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, &FormatError{Input: raw}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, &FormatError{Input: raw}
	}
	return TimeOfDay(h*60 + m), nil
}

func (t TimeOfDay) Minutes() int { return int(t) }

func (t TimeOfDay) Hour() int { return int(t) / 60 }

func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Compare returns -1, 0 or 1.
func (t TimeOfDay) Compare(other TimeOfDay) int {
	switch {
	case t < other:
		return -1
	case t > other:
		return 1
	default:
		return 0
	}
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	v, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// On anchors the time of day to a calendar date in loc.
func (t TimeOfDay) On(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc)
}

const dateLayout = "2006-01-02"

// ParseDate parses a "YYYY-MM-DD" string as a date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, &FormatError{Input: s}
	}
	return d, nil
}

func FormatDate(d time.Time) string { return d.Format(dateLayout) }
