package preferences

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"campfire/internal/restaurants"
	"campfire/internal/shared/util"
	"campfire/internal/users"
)

// UserLookup finds existing users without creating them.
type UserLookup interface {
	Lookup(ctx context.Context, name string) (users.User, error)
}

// RestaurantLookup loads restaurants by id.
type RestaurantLookup interface {
	ByIDs(ctx context.Context, ids []int64) ([]restaurants.Restaurant, error)
}

// HistoryLookup lists restaurants a user has interacted with through requests.
type HistoryLookup interface {
	RestaurantIDs(ctx context.Context, userID int64) ([]int64, error)
}

type Service struct {
	Repo        Repo
	Users       UserLookup
	Restaurants RestaurantLookup
	History     HistoryLookup
}

// Save persists each entry immediately; the last write per restaurant wins.
func (s *Service) Save(ctx context.Context, userName string, entries []Entry) error {
	name := util.SanitizeName(userName)
	if name == "" || len(entries) == 0 {
		return fmt.Errorf("%w: user_name and preferences are required", ErrInvalidInput)
	}
	user, err := s.Users.Lookup(ctx, name)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	ids := make([]int64, 0, len(entries))
	seen := make(map[int64]bool)
	for _, e := range entries {
		if e.RestaurantID <= 0 {
			return fmt.Errorf("%w: restaurant_id is required", ErrInvalidInput)
		}
		if !e.Preference.Valid() {
			return fmt.Errorf("%w: preference must be like, neutral or dislike", ErrInvalidInput)
		}
		if !seen[e.RestaurantID] {
			seen[e.RestaurantID] = true
			ids = append(ids, e.RestaurantID)
		}
	}
	found, err := s.Restaurants.ByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		return ErrRestaurantNotFound
	}

	for _, e := range entries {
		if err := s.Repo.Upsert(ctx, user.ID, e); err != nil {
			return fmt.Errorf("save preference: %w", err)
		}
	}
	return nil
}

// List returns every restaurant the user has input, been recommended or rated,
// with neutral as the default preference. Unknown users get an empty list.
func (s *Service) List(ctx context.Context, userName string) ([]RestaurantPreference, error) {
	name := util.SanitizeName(userName)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	user, err := s.Users.Lookup(ctx, name)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return []RestaurantPreference{}, nil
		}
		return nil, err
	}

	entries, err := s.Repo.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	byRestaurant := make(map[int64]Preference, len(entries))
	for _, e := range entries {
		byRestaurant[e.RestaurantID] = e.Preference
	}

	var ids []int64
	if s.History != nil {
		ids, err = s.History.RestaurantIDs(ctx, user.ID)
		if err != nil {
			return nil, err
		}
	}
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	for _, e := range entries {
		if !seen[e.RestaurantID] {
			seen[e.RestaurantID] = true
			ids = append(ids, e.RestaurantID)
		}
	}

	rows, err := s.Restaurants.ByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]RestaurantPreference, 0, len(rows))
	for _, r := range rows {
		pref, ok := byRestaurant[r.ID]
		if !ok {
			pref = Neutral
		}
		out = append(out, RestaurantPreference{ID: r.ID, Name: r.Name, Address: r.Location, Preference: pref})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// Split returns the restaurant ids a user liked and disliked.
func (s *Service) Split(ctx context.Context, userID int64) (liked, disliked []int64, err error) {
	entries, err := s.Repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	for _, e := range entries {
		switch e.Preference {
		case Like:
			liked = append(liked, e.RestaurantID)
		case Dislike:
			disliked = append(disliked, e.RestaurantID)
		}
	}
	return liked, disliked, nil
}
