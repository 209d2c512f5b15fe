package event

import (
	"time"

	"github.com/uph-campus/campus-events-backend/internal/timeutil"
)

// Status is the lifecycle label shown on listings and the dashboard.
type Status string

const (
	StatusOngoing    Status = "Ongoing"
	StatusUpcoming   Status = "Upcoming"
	StatusComingSoon Status = "Coming Soon"
	StatusPast       Status = "Past"
	StatusUnknown    Status = "Unknown"
)

// Statuses in dashboard order.
var Statuses = []Status{StatusOngoing, StatusUpcoming, StatusComingSoon, StatusPast}

const DefaultUpcomingDays = 30

// StatusPolicy holds the knobs of Classify.
type StatusPolicy struct {
	// UpcomingDays: events fewer than this many days ahead are Upcoming,
	// the rest Coming Soon.
	UpcomingDays int
	// InclusiveEnd counts the end minute itself as Ongoing.
	InclusiveEnd bool
	// Location is the campus wall clock used to read "today" and the current
	// minute. Event days are UTC calendar days regardless.
	Location *time.Location
}

func DefaultStatusPolicy() StatusPolicy {
	return StatusPolicy{UpcomingDays: DefaultUpcomingDays, InclusiveEnd: true, Location: time.UTC}
}

// ParseStatus maps a query value ("Coming Soon", "coming-soon", "past") to a Status.
func ParseStatus(s string) (Status, bool) {
	switch normalize(s) {
	case "ongoing":
		return StatusOngoing, true
	case "upcoming":
		return StatusUpcoming, true
	case "comingsoon":
		return StatusComingSoon, true
	case "past":
		return StatusPast, true
	}
	return "", false
}

func normalize(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			out = append(out, c+'a'-'A')
		case c >= 'a' && c <= 'z':
			out = append(out, c)
		}
	}
	return string(out)
}

// Classify labels e relative to now. It is pure: same inputs, same answer.
//
// On the event's own day the booked window decides: before start is
// Upcoming, inside the window Ongoing, after end Past.
func Classify(e *Event, now time.Time, p StatusPolicy) Status {
	if e.Date == 0 || !timeutil.ValidMinutes(e.StartTimeMinutes) || !timeutil.ValidMinutes(e.EndTimeMinutes) {
		return StatusUnknown
	}
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	threshold := p.UpcomingDays
	if threshold <= 0 {
		threshold = DefaultUpcomingDays
	}

	local := now.In(loc)
	eventDay := time.UnixMilli(e.Date).UTC()
	diffDays := timeutil.CivilDaysBetween(local, eventDay)

	switch {
	case diffDays < 0:
		return StatusPast
	case diffDays == 0:
		nowMin := local.Hour()*60 + local.Minute()
		if nowMin < e.StartTimeMinutes {
			return StatusUpcoming
		}
		if nowMin < e.EndTimeMinutes || (p.InclusiveEnd && nowMin == e.EndTimeMinutes) {
			return StatusOngoing
		}
		return StatusPast
	case diffDays < threshold:
		return StatusUpcoming
	default:
		return StatusComingSoon
	}
}
