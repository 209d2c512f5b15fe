package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	base := Event{Date: dayX.UnixMilli(), StartTimeMinutes: 540, EndTimeMinutes: 660}
	at := func(d time.Duration) time.Time { return dayX.Add(d) }

	tests := []struct {
		name string
		e    Event
		now  time.Time
		want Status
	}{
		{"inside window", base, at(10 * time.Hour), StatusOngoing},
		{"at start", base, at(9 * time.Hour), StatusOngoing},
		{"at end inclusive", base, at(11 * time.Hour), StatusOngoing},
		{"same day before start", base, at(8 * time.Hour), StatusUpcoming},
		{"same day after end", base, at(11*time.Hour + time.Minute), StatusPast},
		{"tomorrow", base, at(-20 * time.Hour), StatusUpcoming},
		{"29 days ahead", base, at(-29 * 24 * time.Hour), StatusUpcoming},
		{"30 days ahead", base, at(-30 * 24 * time.Hour), StatusComingSoon},
		{"yesterday", base, at(30 * time.Hour), StatusPast},
		{"no date", Event{StartTimeMinutes: 540, EndTimeMinutes: 660}, at(10 * time.Hour), StatusUnknown},
		{"bad minutes", Event{Date: dayX.UnixMilli(), StartTimeMinutes: -1, EndTimeMinutes: 660}, at(10 * time.Hour), StatusUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := tt.e
			assert.Equal(t, tt.want, Classify(&e, tt.now, DefaultStatusPolicy()))
		})
	}
}

func TestClassify_ExclusiveEnd(t *testing.T) {
	e := Event{Date: dayX.UnixMilli(), StartTimeMinutes: 540, EndTimeMinutes: 660}
	p := DefaultStatusPolicy()
	p.InclusiveEnd = false

	assert.Equal(t, StatusOngoing, Classify(&e, dayX.Add(10*time.Hour+59*time.Minute), p))
	assert.Equal(t, StatusPast, Classify(&e, dayX.Add(11*time.Hour), p))
}

func TestClassify_CustomThreshold(t *testing.T) {
	e := Event{Date: dayX.UnixMilli(), StartTimeMinutes: 540, EndTimeMinutes: 660}
	p := DefaultStatusPolicy()
	p.UpcomingDays = 7

	assert.Equal(t, StatusUpcoming, Classify(&e, dayX.AddDate(0, 0, -6), p))
	assert.Equal(t, StatusComingSoon, Classify(&e, dayX.AddDate(0, 0, -7), p))
}

func TestClassify_UsesCampusWallClock(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	p := DefaultStatusPolicy()
	p.Location = jakarta

	// 2025-03-09 18:00 UTC is 2025-03-10 01:00 in Jakarta: already the event's day.
	e := Event{Date: dayX.UnixMilli(), StartTimeMinutes: 60, EndTimeMinutes: 120}
	now := dayX.Add(-6 * time.Hour)
	assert.Equal(t, StatusOngoing, Classify(&e, now, p))
	assert.Equal(t, StatusUpcoming, Classify(&e, now, DefaultStatusPolicy()))
}

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]Status{
		"Ongoing":     StatusOngoing,
		"upcoming":    StatusUpcoming,
		"Coming Soon": StatusComingSoon,
		"coming-soon": StatusComingSoon,
		"PAST":        StatusPast,
	} {
		got, ok := ParseStatus(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseStatus("later")
	assert.False(t, ok)
}
