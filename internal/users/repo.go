package users

import (
	"context"
	"errors"
)

var ErrNotFound = errNotFound{}

var ErrInvalidName = errors.New("user name is required")

type errNotFound struct{}

func (errNotFound) Error() string { return "user not found" }

type Repo interface {
	GetOrCreate(ctx context.Context, name string) (User, error)
	GetByName(ctx context.Context, name string) (User, error)
}
