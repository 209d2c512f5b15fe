package event

import (
	"context"
	"sort"
)

// Summary backs the admin dashboard cards.
type Summary struct {
	Total       int            `json:"total"`
	Published   int            `json:"published"`
	Unpublished int            `json:"unpublished"`
	ByStatus    map[Status]int `json:"byStatus"`
}

// ===========================
// 📊 Dashboard counts
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	all, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sum := &Summary{ByStatus: make(map[Status]int, len(Statuses)+1)}
	for _, st := range Statuses {
		sum.ByStatus[st] = 0
	}
	now := s.now()
	for i := range all {
		sum.Total++
		if all[i].Published {
			sum.Published++
		} else {
			sum.Unpublished++
		}
		sum.ByStatus[Classify(&all[i], now, s.Policy)]++
	}
	return sum, nil
}

// ===========================
// 🕰 History: past events, newest first
func (s *Service) History(ctx context.Context, limit int) ([]Event, error) {
	past, err := s.List(ctx, ListFilter{Status: StatusPast})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(past, func(i, j int) bool {
		if past[i].Date != past[j].Date {
			return past[i].Date > past[j].Date
		}
		return past[i].StartTimeMinutes > past[j].StartTimeMinutes
	})
	if limit > 0 && len(past) > limit {
		past = past[:limit]
	}
	return past, nil
}
