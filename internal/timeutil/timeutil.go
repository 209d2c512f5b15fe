// Package timeutil converts between minute-of-day integers, "HH:MM" strings
// and canonical YYYYMMDD date keys.
//
// Date keys are always derived from the UTC calendar day of an epoch-millisecond
// timestamp. Every caller in this module goes through DateKeyFromMillis so the
// date index never mixes local and UTC truncation.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	MinutesPerDay = 24 * 60
	MillisPerDay  = int64(24 * time.Hour / time.Millisecond)

	dateKeyLayout = "20060102"
	isoDateLayout = "2006-01-02"
)

// ParseError reports a malformed time or date string.
type ParseError struct {
	Input  string
	Expect string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: expected %s", e.Input, e.Expect)
}

// MinutesOfDay parses a strict "HH:MM" string (two digits each, 24-hour clock).
// Empty input is an error.
func MinutesOfDay(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, &ParseError{Input: s, Expect: "HH:MM"}
	}
	h, errH := parseTwoDigits(s[0:2])
	m, errM := parseTwoDigits(s[3:5])
	if errH != nil || errM != nil || h > 23 || m > 59 {
		return 0, &ParseError{Input: s, Expect: "HH:MM"}
	}
	return h*60 + m, nil
}

// MinutesOfDayOrZero is the lenient form used only where a missing time is
// allowed to mean midnight (the conflict query defaults).
func MinutesOfDayOrZero(s string) (int, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return MinutesOfDay(s)
}

func parseTwoDigits(s string) (int, error) {
	if s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, strconv.ErrSyntax
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), nil
}

// TimeString formats minutes since midnight as "HH:MM".
// Minutes outside [0, 1440) are a programming error and panic.
func TimeString(minutes int) string {
	if minutes < 0 || minutes >= MinutesPerDay {
		panic(fmt.Sprintf("timeutil: minutes %d out of range [0,%d)", minutes, MinutesPerDay))
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ValidMinutes reports whether m is a minute-of-day value.
func ValidMinutes(m int) bool {
	return m >= 0 && m < MinutesPerDay
}

// StartOfDayUTC truncates an epoch-millisecond timestamp to UTC midnight.
func StartOfDayUTC(ms int64) int64 {
	t := time.UnixMilli(ms).UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).UnixMilli()
}

// DateKeyFromMillis returns the YYYYMMDD key of the UTC calendar day containing ms.
func DateKeyFromMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(dateKeyLayout)
}

// DateKeyFromISO normalises "YYYY-MM-DD" or an RFC 3339 timestamp to a date key.
func DateKeyFromISO(s string) (string, error) {
	ms, err := parseISODay(s)
	if err != nil {
		return "", err
	}
	return DateKeyFromMillis(ms), nil
}

// ParseDateKey returns UTC midnight of a YYYYMMDD key in epoch milliseconds.
func ParseDateKey(key string) (int64, error) {
	t, err := time.ParseInLocation(dateKeyLayout, key, time.UTC)
	if err != nil {
		return 0, &ParseError{Input: key, Expect: "YYYYMMDD"}
	}
	return t.UnixMilli(), nil
}

// ISODate formats the UTC calendar day of ms as "YYYY-MM-DD".
func ISODate(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(isoDateLayout)
}

func parseISODay(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(isoDateLayout, s, time.UTC); err == nil {
		return t.UnixMilli(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return StartOfDayUTC(t.UnixMilli()), nil
	}
	return 0, &ParseError{Input: s, Expect: "YYYY-MM-DD or RFC 3339"}
}

// CivilDaysBetween counts whole calendar days from day a to day b.
// Only the year/month/day of each argument is used.
func CivilDaysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da) / (24 * time.Hour))
}
