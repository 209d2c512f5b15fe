package event

import (
	"context"
	"sync"

	"github.com/uph-campus/campus-events-backend/internal/dateindex"
)

// MemoryRepository keeps events in process. One lock covers the record map and
// the index writes, which gives the same all-or-nothing behaviour as the
// database backends.
type MemoryRepository struct {
	mu     sync.RWMutex
	events map[string]Event
	index  *dateindex.Memory
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		events: make(map[string]Event),
		index:  dateindex.NewMemory(),
	}
}

func (r *MemoryRepository) Index() dateindex.Index {
	return r.index
}

func (r *MemoryRepository) Insert(ctx context.Context, e *Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[e.ID] = *e
	return r.index.Insert(ctx, e.DateKey(), e.ID)
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (r *MemoryRepository) FindByIDs(_ context.Context, ids []string) ([]Event, []string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var found []Event
	var missing []string
	for _, id := range ids {
		if e, ok := r.events[id]; ok {
			found = append(found, e)
		} else {
			missing = append(missing, id)
		}
	}
	return found, missing, nil
}

func (r *MemoryRepository) FindAll(_ context.Context) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Event, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e)
	}
	return out, nil
}

func (r *MemoryRepository) Replace(ctx context.Context, e *Event, prevDateKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[e.ID]; !ok {
		return ErrNotFound
	}
	r.events[e.ID] = *e
	if newKey := e.DateKey(); newKey != prevDateKey {
		if err := r.index.Remove(ctx, prevDateKey, e.ID); err != nil {
			return err
		}
		return r.index.Insert(ctx, newKey, e.ID)
	}
	return nil
}

func (r *MemoryRepository) Remove(ctx context.Context, e *Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.events[e.ID]
	if !ok {
		return ErrNotFound
	}
	delete(r.events, e.ID)
	return r.index.Remove(ctx, stored.DateKey(), e.ID)
}
