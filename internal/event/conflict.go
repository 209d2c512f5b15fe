package event

import (
	"context"
	"fmt"
	"log"

	"github.com/uph-campus/campus-events-backend/internal/timeutil"
)

// Overlaps is the half-open interval test for [aStart,aEnd) and [bStart,bEnd).
// Bookings that only touch (one ends at 600, the next starts at 600) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

func validateCandidate(c Candidate) error {
	verr := &ValidationError{}
	if c.Date.IsZero() {
		verr.add("date", "is required")
	}
	if c.Room == "" {
		verr.add("room", "is required")
	}
	if c.StartMinutes < 0 || c.StartMinutes >= timeutil.MinutesPerDay {
		verr.add("startMinutes", "must be within [0,%d)", timeutil.MinutesPerDay)
	}
	if c.EndMinutes <= 0 || c.EndMinutes > timeutil.MinutesPerDay {
		verr.add("endMinutes", "must be within (0,%d]", timeutil.MinutesPerDay)
	}
	if c.StartMinutes >= c.EndMinutes {
		verr.add("endMinutes", "must be after startMinutes")
	}
	return verr.orNil()
}

// loadDay resolves the date index entry for key into event records. Ids with
// no record, or whose record is filed under another day, break the index
// invariant: they are logged and skipped so listings keep working.
func (s *Service) loadDay(ctx context.Context, key string) ([]Event, error) {
	ids, err := s.Repo.Index().EventsOnDay(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read date index %s: %w", key, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	events, missing, err := s.Repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range missing {
		log.Printf("⚠️ date index %s holds dangling event id %s", key, id)
	}

	out := events[:0]
	for _, e := range events {
		if e.DateKey() != key {
			log.Printf("⚠️ date index %s holds event %s filed under %s", key, e.ID, e.DateKey())
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func overlapping(day []Event, c Candidate, excludeID string) []Event {
	var out []Event
	for _, e := range day {
		if excludeID != "" && e.ID == excludeID {
			continue
		}
		if e.Room != c.Room {
			continue
		}
		if Overlaps(c.StartMinutes, c.EndMinutes, e.StartTimeMinutes, e.EndTimeMinutes) {
			out = append(out, e)
		}
	}
	return out
}

// FindConflicts reports existing bookings of c.Room on c's day whose window
// overlaps c. excludeID skips the event being edited. It never writes.
func (s *Service) FindConflicts(ctx context.Context, c Candidate, excludeID string) ([]Event, error) {
	if err := validateCandidate(c); err != nil {
		return nil, err
	}
	day, err := s.loadDay(ctx, c.Date.Key())
	if err != nil {
		return nil, err
	}
	return overlapping(day, c, excludeID), nil
}

// EventsOnDay lists the events booked on a UTC day, in room then start order.
func (s *Service) EventsOnDay(ctx context.Context, dateKey string) ([]Event, error) {
	day, err := s.loadDay(ctx, dateKey)
	if err != nil {
		return nil, err
	}
	sortByRoomAndStart(day)
	return day, nil
}
