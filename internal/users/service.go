package users

import (
	"context"
	"errors"

	"campfire/internal/shared/util"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Ensure returns the user with the given display name, creating it on first use.
func (s *Service) Ensure(ctx context.Context, name string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	name = util.SanitizeName(name)
	if name == "" {
		return User{}, ErrInvalidName
	}
	return s.Repo.GetOrCreate(ctx, name)
}

// Lookup finds an existing user without creating one.
func (s *Service) Lookup(ctx context.Context, name string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	name = util.SanitizeName(name)
	if name == "" {
		return User{}, ErrInvalidName
	}
	return s.Repo.GetByName(ctx, name)
}
