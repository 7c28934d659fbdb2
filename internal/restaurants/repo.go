package restaurants

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("restaurant not found")

type Repo interface {
	GetByPlaceID(ctx context.Context, provider, placeID string) (Restaurant, error)
	GetBySlug(ctx context.Context, slug string) (Restaurant, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Restaurant, error)
	// Upsert inserts or refreshes by (provider, place_id), falling back to slug
	// when the restaurant has no place id. It returns the stored row.
	Upsert(ctx context.Context, r Restaurant) (Restaurant, error)
}
