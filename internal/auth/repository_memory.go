package auth

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryRepository backs the in-memory store mode and tests.
type MemoryRepository struct {
	mu     sync.RWMutex
	admins map[uint]Admin
	nextID uint
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{admins: make(map[uint]Admin)}
}

func (r *MemoryRepository) Create(_ context.Context, admin *Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	admin.ID = r.nextID
	now := time.Now()
	admin.CreatedAt, admin.UpdatedAt = now, now
	r.admins[admin.ID] = *admin
	return nil
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (*Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.admins {
		if strings.EqualFold(a.Email, email) {
			return &a, nil
		}
	}
	return nil, ErrAdminNotFound
}

func (r *MemoryRepository) FindByID(_ context.Context, id uint) (*Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.admins[id]
	if !ok {
		return nil, ErrAdminNotFound
	}
	return &a, nil
}

func (r *MemoryRepository) TouchLastLogin(_ context.Context, id uint, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[id]
	if !ok {
		return ErrAdminNotFound
	}
	a.LastLoginAt = &at
	r.admins[id] = a
	return nil
}
