// Package dateindex maps YYYYMMDD date keys to the set of event ids booked on
// that day. The index is derived data: event repositories write it in the same
// transaction as the event record and nothing else mutates it.
package dateindex

import (
	"context"
	"sort"
)

// Index is the date key -> event id set mapping.
type Index interface {
	// Insert adds eventID to the set for dateKey, creating the set if needed.
	Insert(ctx context.Context, dateKey, eventID string) error
	// Remove drops eventID from the set; empty sets are pruned.
	Remove(ctx context.Context, dateKey, eventID string) error
	// EventsOnDay returns the ids for dateKey, or an empty slice.
	EventsOnDay(ctx context.Context, dateKey string) ([]string, error)
	// Snapshot returns the whole index, used by reconciliation.
	Snapshot(ctx context.Context) (map[string][]string, error)
}

// Entry is one (date key, event id) membership.
type Entry struct {
	DateKey string `json:"dateKey"`
	EventID string `json:"eventId"`
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
