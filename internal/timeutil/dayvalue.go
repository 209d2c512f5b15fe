package timeutil

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// DayValue is a calendar day accepted from clients either as an epoch-millisecond
// number, a numeric string, or an ISO date. It always holds UTC midnight of that day.
type DayValue struct {
	millis int64
	set    bool
}

// DayFromMillis builds a DayValue from any instant within the UTC day.
func DayFromMillis(ms int64) DayValue {
	return DayValue{millis: StartOfDayUTC(ms), set: true}
}

// ParseDay accepts "1735689600000", a "20250101" date key, "2025-01-01" or an
// RFC 3339 timestamp. Eight digits always read as a date key.
func ParseDay(s string) (DayValue, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DayValue{}, &ParseError{Input: s, Expect: "epoch milliseconds or YYYY-MM-DD"}
	}
	if len(s) == len(dateKeyLayout) {
		if ms, err := ParseDateKey(s); err == nil {
			return DayValue{millis: ms, set: true}, nil
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return DayFromMillis(ms), nil
	}
	ms, err := parseISODay(s)
	if err != nil {
		return DayValue{}, err
	}
	return DayValue{millis: ms, set: true}, nil
}

func (d DayValue) IsZero() bool { return !d.set }

// Millis is UTC midnight of the day in epoch milliseconds.
func (d DayValue) Millis() int64 { return d.millis }

func (d DayValue) Key() string { return DateKeyFromMillis(d.millis) }

func (d DayValue) MarshalJSON() ([]byte, error) {
	if !d.set {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(d.millis, 10)), nil
}

func (d *DayValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*d = DayValue{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := ParseDay(s)
		if err != nil {
			return err
		}
		*d = v
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return &ParseError{Input: string(b), Expect: "epoch milliseconds or YYYY-MM-DD"}
	}
	ms, err := n.Int64()
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil {
			return &ParseError{Input: string(b), Expect: "epoch milliseconds"}
		}
		ms = int64(f)
	}
	*d = DayFromMillis(ms)
	return nil
}
