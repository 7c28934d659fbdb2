package restaurants

import (
	"context"
	"errors"
	"strings"
	"time"

	"campfire/internal/shared/util"
)

// now is swapped in tests.
var now = func() time.Time { return time.Now().UTC() }

type Service struct {
	Repo     Repo
	Provider string
}

func NewService(repo Repo, provider string) *Service {
	if strings.TrimSpace(provider) == "" {
		provider = ProviderGoogle
	}
	return &Service{Repo: repo, Provider: provider}
}

// Save stamps provider, slug and enrichment time, then upserts.
// A slug already held by a different place gets the place id appended.
func (s *Service) Save(ctx context.Context, r Restaurant, city string) (Restaurant, error) {
	if s == nil || s.Repo == nil {
		return Restaurant{}, errors.New("restaurants service not configured")
	}
	if strings.TrimSpace(r.Name) == "" {
		return Restaurant{}, errors.New("restaurant name is required")
	}
	if r.Provider == "" {
		r.Provider = s.Provider
	}
	if r.CityHint == "" {
		r.CityHint = strings.TrimSpace(city)
	}
	if r.Slug == "" {
		r.Slug = util.Slug(r.Name, r.CityHint)
	}
	if r.PlaceID != "" {
		existing, err := s.Repo.GetBySlug(ctx, r.Slug)
		switch {
		case err == nil && existing.PlaceID != r.PlaceID:
			r.Slug = r.Slug + "-" + strings.ToLower(shortID(r.PlaceID))
		case err != nil && !errors.Is(err, ErrNotFound):
			return Restaurant{}, err
		}
		if r.LastEnrichedAt == nil {
			t := now()
			r.LastEnrichedAt = &t
		}
	}
	return s.Repo.Upsert(ctx, r)
}

// ByPlaceID returns a cached restaurant for the configured provider.
func (s *Service) ByPlaceID(ctx context.Context, placeID string) (Restaurant, error) {
	return s.Repo.GetByPlaceID(ctx, s.Provider, placeID)
}

// ByName resolves a free-text restaurant name within a city via its slug.
func (s *Service) ByName(ctx context.Context, name, city string) (Restaurant, error) {
	slug := util.Slug(name, city)
	if slug == "" {
		return Restaurant{}, ErrNotFound
	}
	return s.Repo.GetBySlug(ctx, slug)
}

// ByIDs returns the restaurants that exist among ids, in id order for Postgres
// and request order for the in-memory repo.
func (s *Service) ByIDs(ctx context.Context, ids []int64) ([]Restaurant, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.Repo.GetByIDs(ctx, ids)
}

func shortID(id string) string {
	cleaned := util.Slug(id, "")
	if len(cleaned) > 8 {
		return cleaned[len(cleaned)-8:]
	}
	return cleaned
}
