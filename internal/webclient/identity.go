package webclient

import (
	"context"
	"errors"

	"campfire/internal/shared/storage/kv"
	"campfire/internal/shared/util"
)

// NameKey is where the display name is remembered.
const NameKey = "campfire_username"

// NameStore remembers one display name between sessions.
type NameStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, name string) error
}

// KVNameStore keeps the name in the local key/value store.
type KVNameStore struct {
	Store *kv.Store
}

func (s KVNameStore) Load(ctx context.Context) (string, error) {
	var name string
	if err := s.Store.Get(ctx, NameKey, &name); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return util.SanitizeName(name), nil
}

// Save stores the sanitized name. An empty name leaves the stored one alone.
func (s KVNameStore) Save(ctx context.Context, name string) error {
	name = util.SanitizeName(name)
	if name == "" {
		return nil
	}
	return s.Store.Set(ctx, NameKey, name, 0)
}
