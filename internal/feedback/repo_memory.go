package feedback

import (
	"context"
	"sync"
	"time"
)

type voteKey struct {
	suggestionID int64
	userID       int64
}

type MemoryRepo struct {
	mu          sync.RWMutex
	nextID      int64
	suggestions []Suggestion
	votes       map[voteKey]int
	now         func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{votes: make(map[voteKey]int), now: func() time.Time { return time.Now().UTC() }}
}

func (m *MemoryRepo) Create(ctx context.Context, userID int64, content string) (Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return Suggestion{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	s := Suggestion{ID: m.nextID, UserID: userID, Content: content, CreatedAt: m.now()}
	m.suggestions = append(m.suggestions, s)
	return s, nil
}

func (m *MemoryRepo) Exists(ctx context.Context, suggestionID int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.suggestions {
		if s.ID == suggestionID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryRepo) List(ctx context.Context, viewerID int64) ([]SuggestionView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]SuggestionView, 0, len(m.suggestions))
	for _, s := range m.suggestions {
		view := SuggestionView{ID: s.ID, Content: s.Content, CreatedAt: s.CreatedAt, Score: m.scoreLocked(s.ID)}
		if viewerID != 0 {
			view.UserVote = m.votes[voteKey{s.ID, viewerID}]
		}
		out = append(out, view)
	}
	return out, nil
}

func (m *MemoryRepo) GetVote(ctx context.Context, suggestionID, userID int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.votes[voteKey{suggestionID, userID}], nil
}

func (m *MemoryRepo) SetVote(ctx context.Context, suggestionID, userID int64, vote int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.votes[voteKey{suggestionID, userID}] = vote
	return nil
}

func (m *MemoryRepo) DeleteVote(ctx context.Context, suggestionID, userID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.votes, voteKey{suggestionID, userID})
	return nil
}

func (m *MemoryRepo) Score(ctx context.Context, suggestionID int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scoreLocked(suggestionID), nil
}

func (m *MemoryRepo) scoreLocked(suggestionID int64) int {
	total := 0
	for k, v := range m.votes {
		if k.suggestionID == suggestionID {
			total += v
		}
	}
	return total
}
