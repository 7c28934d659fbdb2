package users

import (
	"context"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	users  map[string]User
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{users: make(map[string]User)}
}

func (r *MemoryRepo) GetOrCreate(ctx context.Context, name string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[name]; ok {
		return user, nil
	}
	r.nextID++
	user := User{ID: r.nextID, Name: name, CreatedAt: time.Now().UTC()}
	r.users[name] = user
	return user, nil
}

func (r *MemoryRepo) GetByName(ctx context.Context, name string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[name]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}
