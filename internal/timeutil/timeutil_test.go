package timeutil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinutesOfDay_Valid(t *testing.T) {
	cases := map[string]int{
		"00:00": 0,
		"09:00": 540,
		"11:00": 660,
		"14:00": 840,
		"23:59": 1439,
	}
	for in, want := range cases {
		got, err := MinutesOfDay(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestMinutesOfDay_Invalid(t *testing.T) {
	for _, in := range []string{"", "9:00", "24:00", "12:60", "ab:cd", "12-30", "12:300", " 12:30"} {
		_, err := MinutesOfDay(in)
		var pe *ParseError
		assert.ErrorAs(t, err, &pe, in)
	}
}

func TestMinutesOfDayOrZero_EmptyIsMidnight(t *testing.T) {
	got, err := MinutesOfDayOrZero("  ")
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	_, err = MinutesOfDayOrZero("7pm")
	assert.Error(t, err)
}

func TestTimeString_RoundTrip(t *testing.T) {
	for m := 0; m < MinutesPerDay; m++ {
		s := TimeString(m)
		back, err := MinutesOfDay(s)
		require.NoError(t, err)
		require.Equal(t, m, back)
		require.Equal(t, s, TimeString(back))
	}
}

func TestTimeString_OutOfRangePanics(t *testing.T) {
	assert.Panics(t, func() { TimeString(-1) })
	assert.Panics(t, func() { TimeString(MinutesPerDay) })
}

func TestDateKey_UTCTruncation(t *testing.T) {
	// 2025-03-10 23:30 UTC is already 2025-03-11 in Jakarta; the key stays on the UTC day.
	ms := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, "20250310", DateKeyFromMillis(ms))

	key, err := DateKeyFromISO("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "20250310", key)

	key, err = DateKeyFromISO("2025-03-10T23:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, "20250310", key)

	_, err = DateKeyFromISO("10/03/2025")
	assert.Error(t, err)
}

func TestParseDateKey(t *testing.T) {
	ms, err := ParseDateKey("20250310")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC).UnixMilli(), ms)

	_, err = ParseDateKey("2025-03-10")
	assert.Error(t, err)
}

func TestCivilDaysBetween(t *testing.T) {
	a := time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC)
	b := time.Date(2026, 1, 1, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, CivilDaysBetween(a, b))
	assert.Equal(t, -1, CivilDaysBetween(b, a))
	assert.Equal(t, 0, CivilDaysBetween(a, a.Add(30*time.Minute)))
}

func TestDayValue_UnmarshalJSON(t *testing.T) {
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC).UnixMilli()

	var payload struct {
		A DayValue `json:"a"`
		B DayValue `json:"b"`
		C DayValue `json:"c"`
		D DayValue `json:"d"`
	}
	raw := `{"a": 1741612200000, "b": "2025-03-10", "c": "1741564800000", "d": null}`
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	assert.Equal(t, want, payload.A.Millis())
	assert.Equal(t, want, payload.B.Millis())
	assert.Equal(t, want, payload.C.Millis())
	assert.True(t, payload.D.IsZero())
	assert.Equal(t, "20250310", payload.A.Key())

	out, err := json.Marshal(payload.B)
	require.NoError(t, err)
	assert.Equal(t, "1741564800000", string(out))
}

func TestDayValue_RejectsGarbage(t *testing.T) {
	var d DayValue
	assert.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`true`), &d))
}

func TestParseDay(t *testing.T) {
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC).UnixMilli()
	tests := []struct {
		in   string
		want int64
	}{
		{"20250310", want},
		{"2025-03-10", want},
		{"2025-03-10T15:30:00Z", want},
		{"1741612200000", want},
		{"86400000", 86400000},
		{"0", 0},
		{"1970-01-01", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDay(tt.in)
			require.NoError(t, err)
			assert.False(t, d.IsZero(), "epoch day is a real day")
			assert.Equal(t, tt.want, d.Millis())
		})
	}

	_, err := ParseDay("")
	assert.Error(t, err)
}
