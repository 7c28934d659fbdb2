package restaurants

import (
	"context"
	"sync"
)

type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]Restaurant
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[int64]Restaurant)}
}

func (m *MemoryRepo) GetByPlaceID(ctx context.Context, provider, placeID string) (Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return Restaurant{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.byID {
		if r.Provider == provider && r.PlaceID == placeID && placeID != "" {
			return r, nil
		}
	}
	return Restaurant{}, ErrNotFound
}

func (m *MemoryRepo) GetBySlug(ctx context.Context, slug string) (Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return Restaurant{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.byID {
		if r.Slug == slug && slug != "" {
			return r, nil
		}
	}
	return Restaurant{}, ErrNotFound
}

func (m *MemoryRepo) GetByIDs(ctx context.Context, ids []int64) ([]Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Restaurant, 0, len(ids))
	for _, id := range ids {
		if r, ok := m.byID[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemoryRepo) Upsert(ctx context.Context, r Restaurant) (Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return Restaurant{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, existing := range m.byID {
		match := (r.PlaceID != "" && existing.Provider == r.Provider && existing.PlaceID == r.PlaceID) ||
			(r.PlaceID == "" && r.Slug != "" && existing.Slug == r.Slug)
		if match {
			r.ID = id
			m.byID[id] = r
			return r, nil
		}
	}
	m.nextID++
	r.ID = m.nextID
	m.byID[r.ID] = r
	return r, nil
}
