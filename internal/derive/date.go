package derive

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var (
	// ErrEmptyDate is returned by ParseDate for blank input.
	ErrEmptyDate = errors.New("empty date")
	// ErrNotISODate is returned for values that do not start with a
	// YYYY-MM-DD calendar date.
	ErrNotISODate = errors.New("not an ISO 8601 date")
)

const isoDay = "2006-01-02"

// ParseDate parses an ISO 8601 date ("2006-01-02") or timestamp
// ("2006-01-02T15:04:05Z07:00", a space separator is also accepted). Values
// without a zone are read as UTC so ordering does not depend on the host's
// time zone.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmptyDate
	}
	if len(s) < len(isoDay) {
		return time.Time{}, fmt.Errorf("%q: %w", s, ErrNotISODate)
	}
	day, err := time.Parse(isoDay, s[:len(isoDay)])
	if err != nil || day.Year() < 1 {
		return time.Time{}, fmt.Errorf("%q: %w", s, ErrNotISODate)
	}
	rest := s[len(isoDay):]
	if rest == "" {
		return day, nil
	}
	if rest[0] != 'T' && rest[0] != ' ' {
		return time.Time{}, fmt.Errorf("%q: %w", s, ErrNotISODate)
	}

	t, err := dateparse.ParseStrict(s)
	if err != nil {
		return time.Time{}, err
	}
	if !hasZone(rest[1:]) {
		// Keep the wall clock and pin it to UTC whatever zone the parser
		// picked.
		t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	}
	if y, m, d := t.Date(); y != day.Year() || m != day.Month() || d != day.Day() {
		return time.Time{}, fmt.Errorf("%q: %w", s, ErrNotISODate)
	}
	return t.UTC(), nil
}

// hasZone reports whether the time part of an ISO timestamp carries a zone
// designator or numeric offset.
func hasZone(clock string) bool {
	return strings.ContainsAny(clock, "Zz+-")
}
