package preferences

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	prefs map[int64]map[int64]Preference
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{prefs: make(map[int64]map[int64]Preference)}
}

func (m *MemoryRepo) Upsert(ctx context.Context, userID int64, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	byRestaurant, ok := m.prefs[userID]
	if !ok {
		byRestaurant = make(map[int64]Preference)
		m.prefs[userID] = byRestaurant
	}
	byRestaurant[entry.RestaurantID] = entry.Preference
	return nil
}

func (m *MemoryRepo) ListForUser(ctx context.Context, userID int64) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Entry, 0, len(m.prefs[userID]))
	for rid, pref := range m.prefs[userID] {
		out = append(out, Entry{RestaurantID: rid, Preference: pref})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RestaurantID < out[j].RestaurantID })
	return out, nil
}
