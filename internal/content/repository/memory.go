package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/contentforge/contentforge/internal/content"
)

// MemoryRepo is a map-backed repository used as the fallback backend when
// neither MongoDB nor Redis is configured, and as the unit-test backend.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]content.Record
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]content.Record)}
}

func (m *MemoryRepo) List(ctx context.Context) ([]*content.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*content.Record, 0, len(m.store))
	for _, r := range m.store {
		rec := r
		out = append(out, &rec)
	}
	return out, nil
}

func (m *MemoryRepo) Get(ctx context.Context, id string) (*content.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.store[id]; ok {
		rec := r
		return &rec, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]*content.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*content.Record{}
	for _, r := range m.store {
		if r.UserID == userID {
			rec := r
			out = append(out, &rec)
		}
	}
	// newest-first; createdAt is ISO-8601 so string order is time order
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (m *MemoryRepo) Put(ctx context.Context, rec *content.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[rec.ID] = *rec
	return nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}
