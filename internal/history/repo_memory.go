package history

import (
	"context"
	"strings"
	"sync"
	"time"
)

type memoryRow struct {
	requestID    int64
	restaurantID int64
	kind         Kind
}

type MemoryRepo struct {
	mu       sync.RWMutex
	nextID   int64
	requests []Request
	rows     []memoryRow
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (m *MemoryRepo) Record(ctx context.Context, req Request, inputIDs, recommendedIDs []int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	req.ID = m.nextID
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	m.requests = append(m.requests, req)
	for _, id := range inputIDs {
		m.rows = append(m.rows, memoryRow{requestID: req.ID, restaurantID: id, kind: KindInput})
	}
	for _, id := range recommendedIDs {
		m.rows = append(m.rows, memoryRow{requestID: req.ID, restaurantID: id, kind: KindRecommendation})
	}
	return req.ID, nil
}

func (m *MemoryRepo) PreviouslyRecommended(ctx context.Context, userID int64, city string) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	matching := make(map[int64]bool)
	for _, req := range m.requests {
		if req.UserID == userID && strings.EqualFold(req.City, city) {
			matching[req.ID] = true
		}
	}
	return m.collect(func(r memoryRow) bool {
		return matching[r.requestID] && r.kind == KindRecommendation
	}), nil
}

func (m *MemoryRepo) RestaurantIDs(ctx context.Context, userID int64) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	owned := make(map[int64]bool)
	for _, req := range m.requests {
		if req.UserID == userID {
			owned[req.ID] = true
		}
	}
	return m.collect(func(r memoryRow) bool { return owned[r.requestID] }), nil
}

// collect walks rows newest first and returns distinct restaurant ids.
func (m *MemoryRepo) collect(keep func(memoryRow) bool) []int64 {
	seen := make(map[int64]bool)
	var out []int64
	for i := len(m.rows) - 1; i >= 0; i-- {
		r := m.rows[i]
		if !keep(r) || seen[r.restaurantID] {
			continue
		}
		seen[r.restaurantID] = true
		out = append(out, r.restaurantID)
	}
	return out
}
