package dateindex

import (
	"context"
	"sync"
)

// Memory is an in-process Index. The mutex makes it safe on its own; the
// in-memory event repository additionally holds its own lock across record and
// index writes.
type Memory struct {
	mu   sync.RWMutex
	sets map[string]map[string]struct{}
}

func NewMemory() *Memory {
	return &Memory{sets: make(map[string]map[string]struct{})}
}

func (m *Memory) Insert(_ context.Context, dateKey, eventID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.sets[dateKey]
	if !ok {
		set = make(map[string]struct{})
		m.sets[dateKey] = set
	}
	set[eventID] = struct{}{}
	return nil
}

func (m *Memory) Remove(_ context.Context, dateKey, eventID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	set, ok := m.sets[dateKey]
	if !ok {
		return nil
	}
	delete(set, eventID)
	if len(set) == 0 {
		delete(m.sets, dateKey)
	}
	return nil
}

func (m *Memory) EventsOnDay(_ context.Context, dateKey string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedKeys(m.sets[dateKey]), nil
}

func (m *Memory) Snapshot(_ context.Context) (map[string][]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string][]string, len(m.sets))
	for key, set := range m.sets {
		out[key] = sortedKeys(set)
	}
	return out, nil
}

// Len is the number of date keys currently held.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sets)
}
