package event

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/uph-campus/campus-events-backend/internal/timeutil"
)

// ListFilter narrows List. Zero values match everything.
type ListFilter struct {
	PublishedOnly bool
	Building      string
	Status        Status
	// From and To are inclusive YYYYMMDD keys.
	From  string
	To    string
	Query string
}

// View is an event with its status at the time of the request.
type View struct {
	Event
	Status Status `json:"status"`
}

func (f ListFilter) match(e *Event, now time.Time, p StatusPolicy) bool {
	if f.PublishedOnly && !e.Published {
		return false
	}
	if f.Building != "" && !strings.EqualFold(f.Building, e.Building) {
		return false
	}
	key := e.DateKey()
	if f.From != "" && key < f.From {
		return false
	}
	if f.To != "" && key > f.To {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		hay := strings.ToLower(e.Name + "\x00" + e.HeldBy + "\x00" + e.Room + "\x00" + e.Building)
		if !strings.Contains(hay, q) {
			return false
		}
	}
	if f.Status != "" && Classify(e, now, p) != f.Status {
		return false
	}
	return true
}

// ===========================
// 📋 List Events
func (s *Service) List(ctx context.Context, f ListFilter) ([]Event, error) {
	all, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]Event, 0, len(all))
	for i := range all {
		if f.match(&all[i], now, s.Policy) {
			out = append(out, all[i])
		}
	}
	sortByDateAndStart(out)
	return out, nil
}

// Views attaches the current status to each event.
func (s *Service) Views(events []Event) []View {
	now := s.now()
	out := make([]View, 0, len(events))
	for _, e := range events {
		out = append(out, View{Event: e, Status: Classify(&e, now, s.Policy)})
	}
	return out
}

// View attaches the current status to one event.
func (s *Service) View(e *Event) View {
	return View{Event: *e, Status: Classify(e, s.now(), s.Policy)}
}

// ParseRange validates optional from/to query values given as YYYYMMDD keys
// or ISO dates and returns them as keys.
func ParseRange(from, to string) (string, string, error) {
	fk, err := rangeKey(from)
	if err != nil {
		return "", "", err
	}
	tk, err := rangeKey(to)
	if err != nil {
		return "", "", err
	}
	return fk, tk, nil
}

func rangeKey(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if _, err := timeutil.ParseDateKey(s); err == nil {
		return s, nil
	}
	return timeutil.DateKeyFromISO(s)
}

func sortByDateAndStart(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.StartTimeMinutes != b.StartTimeMinutes {
			return a.StartTimeMinutes < b.StartTimeMinutes
		}
		return a.ID < b.ID
	})
}

func sortByRoomAndStart(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.Room != b.Room {
			return a.Room < b.Room
		}
		if a.StartTimeMinutes != b.StartTimeMinutes {
			return a.StartTimeMinutes < b.StartTimeMinutes
		}
		return a.ID < b.ID
	})
}
